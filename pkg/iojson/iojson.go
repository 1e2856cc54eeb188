// Package iojson writes command output as indented JSON for --format json.
package iojson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Error is the document written in place of a result when a command fails.
type Error struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// encode renders v with two-space indentation and a trailing newline. HTML
// escaping is off so markdown bodies keep their <, > and & characters.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteWith writes v to w. When v cannot be encoded an Error document
// describing the failure goes to ew instead and w is left untouched.
func WriteWith(w, ew io.Writer, v any) error {
	data, err := encode(v)
	if err != nil {
		return WriteError(ew, fmt.Errorf("encode output: %w", err), nil)
	}
	_, err = w.Write(data)
	return err
}

// WriteError writes err, and optional per-field details, as an Error
// document.
func WriteError(w io.Writer, err error, fields map[string]string) error {
	data, encErr := encode(Error{Error: err.Error(), Fields: fields})
	if encErr != nil {
		// Error holds only strings; this cannot fail in practice.
		return encErr
	}
	_, werr := w.Write(data)
	return werr
}
