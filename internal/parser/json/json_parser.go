// Package json decodes transaction documents into flat blocks.
//
// A document is a single JSON object whose named field holds the list of
// record objects:
//
//	{ "records": [ {...}, {...} ] }
//
// A top-level array of objects is accepted as the record list directly.
// Nested objects expand into dotted column names ("estate.map.lat");
// arrays and scalars are leaf cells. Columns appear in first-seen document
// order, so repeated runs over the same input produce the same table.
//
// Decoding goes through the token API rather than map[string]any because
// Go maps do not preserve key order and the output column order must.
package json

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"dataprep/internal/table"
)

// object is a decoded JSON object with its key order retained. Values are
// string, json.Number, bool, nil, []any or *object.
type object struct {
	keys []string
	vals map[string]any
}

// MarshalJSON writes the fields in their original order, so an object
// kept whole inside an array cell serializes the way it was read.
func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Flatten reads one document from r and returns a block holding every
// record under recordsField. Records missing a column hold nil there;
// columns introduced by later records are back-filled with nil for
// earlier rows. Numbers arrive as json.Number so their source spelling
// survives until a later stage decides their type.
func Flatten(ctx context.Context, r io.Reader, recordsField string) (*table.Block, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	root, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after document")
	}

	var recs []any
	switch v := root.(type) {
	case *object:
		raw, ok := v.vals[recordsField]
		if !ok {
			return nil, fmt.Errorf("document has no %q field", recordsField)
		}
		arr, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("document field %q is not an array (got %s)", recordsField, typeName(raw))
		}
		recs = arr
	case []any:
		recs = v
	default:
		return nil, fmt.Errorf("unsupported top-level JSON type %s (want object or array)", typeName(root))
	}

	f := &flattener{index: make(map[string]int)}
	for i, rec := range recs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		obj, ok := rec.(*object)
		if !ok {
			return nil, fmt.Errorf("record %d is not an object (got %s)", i, typeName(rec))
		}
		f.addRecord(obj)
	}
	return f.block(), nil
}

// flattener accumulates rows while the column registry grows. Rows are
// only as wide as the registry was when they were added; block() pads
// them to the final width.
type flattener struct {
	cols  []string
	index map[string]int
	rows  [][]any
}

func (f *flattener) addRecord(obj *object) {
	row := make([]any, len(f.cols))
	f.walk(obj, "", &row)
	f.rows = append(f.rows, row)
}

func (f *flattener) walk(obj *object, prefix string, row *[]any) {
	for _, k := range obj.keys {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		v := obj.vals[k]
		if child, ok := v.(*object); ok {
			f.walk(child, name, row)
			continue
		}
		ix, ok := f.index[name]
		if !ok {
			ix = len(f.cols)
			f.cols = append(f.cols, name)
			f.index[name] = ix
		}
		for len(*row) <= ix {
			*row = append(*row, nil)
		}
		(*row)[ix] = v
	}
}

func (f *flattener) block() *table.Block {
	width := len(f.cols)
	for i, row := range f.rows {
		for len(row) < width {
			row = append(row, nil)
		}
		f.rows[i] = row
	}
	return &table.Block{Columns: f.cols, Rows: f.rows}
}

// decodeValue reads the next complete JSON value from dec, preserving
// object key order.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (any, error) {
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil // string, json.Number, bool or nil
	}
	switch d {
	case '{':
		obj := &object{vals: make(map[string]any)}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, want string", keyTok)
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			// Duplicate keys keep their first position and last value,
			// matching plain map decoding.
			if _, dup := obj.vals[key]; !dup {
				obj.keys = append(obj.keys, key)
			}
			obj.vals[key] = v
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil { // consume ']'
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", d.String())
}

// typeName names a decoded value the way a reader of the input file would.
func typeName(v any) string {
	switch v.(type) {
	case *object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
