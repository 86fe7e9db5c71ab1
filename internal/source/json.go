package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/janekbaraniewski/timeplot/internal/core"
)

var errNotArray = errors.New("expected a JSON array of objects")

// ReadJSON reads an array of flat objects. Object keys keep their order in
// the document so the first object defines the column order.
func ReadJSON(r io.Reader) ([]core.RawRow, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, errNotArray
	}

	var rows []core.RawRow
	for dec.More() {
		row, err := readObject(dec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows), err)
		}
		rows = append(rows, row)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return rows, nil
}

func readObject(dec *json.Decoder) (core.RawRow, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotArray
	}
	var row core.RawRow
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", keyTok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		row = append(row, core.Cell{Column: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return row, nil
}
