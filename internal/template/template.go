// Package template replaces {{ path }} placeholders with values looked up in an
// attribute map. Paths use gjson dot syntax, so "groundPosition.1" addresses the
// second element of the groundPosition sequence.
package template

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var placeholder = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// Engine is the default placeholder substitution engine. The zero value is
// ready to use and safe for concurrent use.
type Engine struct{}

// Substitute replaces every placeholder in tmpl. Placeholders whose path does
// not resolve are replaced by the empty string, so none survive.
func (Engine) Substitute(tmpl string, attrs map[string]any) string {
	if !strings.Contains(tmpl, "{{") {
		return tmpl
	}
	doc, err := json.Marshal(jsonSafe(attrs))
	if err != nil {
		// jsonSafe leaves only JSON encodable values behind.
		doc = []byte("{}")
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		path := strings.TrimSpace(m[2 : len(m)-2])
		if path == "" {
			return ""
		}
		return render(gjson.GetBytes(doc, path))
	})
}

// render formats a value the way a browser stringifies it: sequences are comma
// joined and missing values are empty.
func render(r gjson.Result) string {
	switch {
	case !r.Exists():
		return ""
	case r.IsArray():
		items := r.Array()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = render(item)
		}
		return strings.Join(parts, ",")
	case r.IsObject():
		return r.Raw
	}
	switch r.Type {
	case gjson.Null:
		return ""
	case gjson.Number:
		return r.Raw
	default:
		return r.String()
	}
}

// jsonSafe replaces non-finite numbers, which JSON cannot carry, by their
// textual form.
func jsonSafe(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = jsonSafe(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = jsonSafe(e)
		}
		return out
	case []float64:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = jsonSafe(e)
		}
		return out
	case float64:
		return finiteOrString(t)
	case *float64:
		if t == nil {
			return nil
		}
		return finiteOrString(*t)
	default:
		return v
	}
}

func finiteOrString(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return json.Number("0")
	}
	// Plain notation in the range a browser prints that way, exponent otherwise.
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return json.Number(trimExponent(strconv.FormatFloat(f, 'e', -1, 64)))
}

// trimExponent drops the leading zero Go pads single digit exponents with,
// "1e-07" becomes "1e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+3 >= len(s) || s[i+2] != '0' {
		return s
	}
	return s[:i+2] + s[i+3:]
}
