package cli

import (
	"encoding/json"
	"io"
)

// writeJSON encodes the value as indented JSON. URLs are written verbatim.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
