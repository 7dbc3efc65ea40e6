package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Pretty renders a value as indented JSON, or with %v if it cannot be encoded.
func Pretty(obj interface{}) string {
	indentSize := "  "
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indentSize)
	if err := enc.Encode(&obj); err != nil {
		return fmt.Sprint(obj)
	}
	return string(buf.String())
}
