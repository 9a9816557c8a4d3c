// Package htmlform turns fields.Fragment slices into HTML and decodes HTTP
// submissions back into engine environments. It is one of the swappable
// front ends the core is agnostic to; the only contract it relies on is
// that digestive.FieldID's string encoding round-trips.
package htmlform

import (
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	digestive "github.com/axman6/digestive-functors"
	"github.com/axman6/digestive-functors/fields"
)

// RenderOpt hooks CSS classes into the generated markup. The zero value
// renders bare elements.
type RenderOpt struct {
	InputClass string
	LabelClass string
	ErrorClass string
}

// sanitizer strips all markup from submitted values before they are
// reflected back into attributes.
var sanitizer = bluemonday.StrictPolicy()

// Render produces an HTML fragment per field, concatenated in composition
// order. Submitted values are sanitized and escaped before reflection.
func Render(fragments []fields.Fragment, opt RenderOpt) string {
	var b strings.Builder
	for _, f := range fragments {
		renderFragment(&b, f, opt)
	}
	return b.String()
}

func renderFragment(b *strings.Builder, f fields.Fragment, opt RenderOpt) {
	switch f.Kind {
	case fields.KindLabel:
		b.WriteString("<label")
		writeAttr(b, "class", opt.LabelClass)
		b.WriteString(">")
		b.WriteString(html.EscapeString(f.Text))
		b.WriteString("</label>")
	case fields.KindText:
		name := f.ID.String()
		b.WriteString(`<input type="text"`)
		writeAttr(b, "id", name)
		writeAttr(b, "name", name)
		writeAttr(b, "value", sanitizeValue(f.Value))
		writeAttr(b, "class", opt.InputClass)
		b.WriteString(" />")
	case fields.KindCheckbox:
		name := f.ID.String()
		b.WriteString(`<input type="checkbox"`)
		writeAttr(b, "id", name)
		writeAttr(b, "name", name)
		writeAttr(b, "class", opt.InputClass)
		if f.Checked {
			b.WriteString(" checked")
		}
		b.WriteString(" />")
	}
	for _, msg := range f.Errors {
		b.WriteString("<span")
		writeAttr(b, "class", errorClass(opt))
		b.WriteString(">")
		b.WriteString(html.EscapeString(msg))
		b.WriteString("</span>")
	}
}

func errorClass(opt RenderOpt) string {
	if opt.ErrorClass != "" {
		return opt.ErrorClass
	}
	return "digestive-error"
}

// sanitizeValue strips markup from a submitted value and unescapes the
// entity encoding bluemonday applies, leaving plain text for writeAttr to
// escape exactly once.
func sanitizeValue(v string) string {
	return html.UnescapeString(sanitizer.Sanitize(v))
}

func writeAttr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}

// EnvFromValues decodes url.Values keyed by canonical field names. Keys
// that are not field names (submit buttons, tokens) are ignored; for
// repeated keys the first value wins.
func EnvFromValues(values url.Values) digestive.Environment[string] {
	pairs := make(map[digestive.FieldID]string, len(values))
	for name, vs := range values {
		id, err := digestive.ParseFieldID(name)
		if err != nil || len(vs) == 0 {
			continue
		}
		pairs[id] = vs[0]
	}
	return digestive.EnvFromMapping(pairs)
}

// EnvFromRequest builds an environment from a submitted request, merging
// POST form data over query parameters the way net/http populates r.Form.
func EnvFromRequest(r *http.Request) (digestive.Environment[string], error) {
	if err := r.ParseForm(); err != nil {
		return digestive.Environment[string]{}, err
	}
	return EnvFromValues(r.Form), nil
}
