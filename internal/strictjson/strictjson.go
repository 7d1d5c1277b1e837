package strictjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNull is returned when the document is a JSON null.
	ErrNull = errors.New("null value")
	// ErrMissingField is returned when an object lacks a field of the target struct.
	ErrMissingField = errors.New("missing field")
)

// RequireFields reports an error unless data is a JSON object containing the
// JSON name of every exported field of the struct type of v.
// Fields tagged `json:"-"` are ignored.
func RequireFields(data []byte, v any) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if fields == nil {
		return ErrNull
	}

	for _, name := range FieldNames(v) {
		if _, ok := fields[name]; !ok {
			return fmt.Errorf("%w %q", ErrMissingField, name)
		}
	}

	return nil
}

// FieldNames returns the JSON names of the exported fields of the struct type of v.
func FieldNames(v any) []string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	names := make([]string, 0, t.NumField())

	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

		switch name {
		case "-":
			continue
		case "":
			name = field.Name
		}

		names = append(names, name)
	}

	return names
}
