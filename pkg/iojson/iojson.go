// Package iojson reads and writes JSON for the command line.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteWith writes obj as indented JSON to w. A marshalling failure is
// reported as a JSON error object on ew.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return writeMarshalError(ew, err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLines writes each element of items as one compact JSON line.
func WriteLines[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for i := range items {
		if err := enc.Encode(items[i]); err != nil {
			return fmt.Errorf("encode line %d: %w", i, err)
		}
	}
	return nil
}

func writeMarshalError(ew io.Writer, marshalErr error) error {
	// json.Marshal on a string cannot fail.
	msg, _ := json.Marshal("error marshaling JSON output")
	detail, _ := json.Marshal(marshalErr.Error())
	_, err := fmt.Fprintf(ew, `{"message":%s,"data":{"json_error":%s}}`+"\n", msg, detail)
	return err
}
