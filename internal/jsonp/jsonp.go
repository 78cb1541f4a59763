// Package jsonp unwraps JSONP responses ("callback({...});") into JSON.
package jsonp

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FormatError indicates a response without a callback envelope.
type FormatError struct {
	Snippet string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("response is not valid JSONP: %q", e.Snippet)
}

// Unwrap returns the text between the first "(" and the last ")".
func Unwrap(raw []byte) ([]byte, error) {
	start := bytes.IndexByte(raw, '(')
	end := bytes.LastIndexByte(raw, ')')
	if start == -1 || end == -1 || end < start {
		return nil, &FormatError{Snippet: snippet(raw)}
	}
	return raw[start+1 : end], nil
}

// Decode unwraps raw and decodes the payload into v.
func Decode(raw []byte, v interface{}) error {
	payload, err := Unwrap(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decoding JSONP payload: %w", err)
	}
	return nil
}

func snippet(raw []byte) string {
	const limit = 64
	if len(raw) > limit {
		return string(raw[:limit]) + "..."
	}
	return string(raw)
}
