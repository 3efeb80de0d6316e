package script

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Marshaler is implemented by types that describe their script form as a tree
// of maps, slices, scalars and Callback values.
type Marshaler interface {
	MarshalScript() (any, error)
}

// Marshal encodes v as a JavaScript object literal. Map keys are sorted so
// identical inputs always produce identical output. Strings are escaped the
// same way encoding/json escapes them (including <, > and &), which keeps the
// result safe to place inside a <script> element. Callback values are written
// as-is.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalString is Marshal returning a string.
func MarshalString(v any) (string, error) {
	out, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

const maxDepth = 64

func encode(buf *bytes.Buffer, v any, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("script: value nested deeper than %d levels", maxDepth)
	}

	switch value := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case Callback:
		if value.Empty() {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(strings.TrimSpace(string(value)))
		return nil
	case Marshaler:
		inner, err := value.MarshalScript()
		if err != nil {
			return err
		}
		return encode(buf, inner, depth+1)
	case json.RawMessage:
		if len(value) == 0 {
			buf.WriteString("null")
			return nil
		}
		buf.Write(value)
		return nil
	case map[string]any:
		return encodeObject(buf, len(value), sortedKeys(value), func(key string) any { return value[key] }, depth)
	case []any:
		return encodeArray(buf, len(value), func(i int) any { return value[i] }, depth)
	case string, bool, float64, float32, int, int64, int32, uint, uint64, uint32:
		return encodeScalar(buf, value)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			buf.WriteString("null")
			return nil
		}
		return encode(buf, rv.Elem().Interface(), depth+1)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return encodeScalar(buf, v)
		}
		if rv.IsNil() {
			buf.WriteString("null")
			return nil
		}
		keys := make([]string, 0, rv.Len())
		lookup := make(map[string]reflect.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			keys = append(keys, key)
			lookup[key] = iter.Value()
		}
		sort.Strings(keys)
		return encodeObject(buf, len(keys), keys, func(key string) any { return lookup[key].Interface() }, depth)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return encodeScalar(buf, v)
		}
		if rv.IsNil() {
			buf.WriteString("null")
			return nil
		}
		return encodeArray(buf, rv.Len(), func(i int) any { return rv.Index(i).Interface() }, depth)
	case reflect.Array:
		return encodeArray(buf, rv.Len(), func(i int) any { return rv.Index(i).Interface() }, depth)
	}

	return encodeScalar(buf, v)
}

func encodeObject(buf *bytes.Buffer, size int, keys []string, get func(string) any, depth int) error {
	buf.WriteByte('{')
	for i := 0; i < size; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeScalar(buf, keys[i]); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := encode(buf, get(keys[i]), depth+1); err != nil {
			return fmt.Errorf("script: key %q: %w", keys[i], err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *bytes.Buffer, size int, get func(int) any, depth int) error {
	buf.WriteByte('[')
	for i := 0; i < size; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encode(buf, get(i), depth+1); err != nil {
			return fmt.Errorf("script: index %d: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeScalar(buf *bytes.Buffer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("script: encode %T: %w", v, err)
	}
	buf.Write(raw)
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
