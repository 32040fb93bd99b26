package encoder

import (
	"encoding/json"
	"io"
)

// NewJSONEncoder returns an encoder for the JSON artifacts written next
// to created templates: two-space indented and without HTML escaping so
// URLs and non-ASCII field labels survive verbatim.
func NewJSONEncoder(w io.Writer) *json.Encoder {
	e := json.NewEncoder(w)
	e.SetEscapeHTML(false)
	e.SetIndent("", "  ")
	return e
}
