package clinic

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	numericType = reflect.TypeOf(Numeric(""))
	idPtrType   = reflect.TypeOf((*int64)(nil))
)

// Assign sets the field of rec whose JSON name is field from raw form input.
// rec must be a pointer to a record struct. Identifier and foreign-key fields
// accept a decimal integer; an empty value clears them.
func Assign(rec any, field, raw string) error {
	v := reflect.ValueOf(rec)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("assign: %T is not a pointer to a record", rec)
	}
	s := v.Elem()
	idx, ok := fieldIndex(s.Type(), field)
	if !ok {
		return fmt.Errorf("assign: %s has no field %q", s.Type().Name(), field)
	}
	f := s.Field(idx)

	switch {
	case f.Type() == idPtrType:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			f.Set(reflect.Zero(idPtrType))
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("assign %s: %q is not an identifier", field, raw)
		}
		f.Set(reflect.ValueOf(ID(n)))
	case f.Type() == numericType, f.Kind() == reflect.String:
		f.SetString(raw)
	default:
		return fmt.Errorf("assign %s: unsupported field type %s", field, f.Type())
	}
	return nil
}

// Fields lists the JSON names of the editable fields of rec, in declaration
// order. Display-only fields tagged omitempty are left out.
func Fields(rec any) []string {
	t := reflect.TypeOf(rec)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var names []string
	for i := 0; i < t.NumField(); i++ {
		name, opts, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" || strings.Contains(opts, "omitempty") {
			continue
		}
		names = append(names, name)
	}
	return names
}

// HasField reports whether rec carries a field with the given JSON name.
func HasField(rec any, field string) bool {
	t := reflect.TypeOf(rec)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	_, ok := fieldIndex(t, field)
	return ok
}

func fieldIndex(t reflect.Type, field string) (int, bool) {
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == field {
			return i, true
		}
	}
	return 0, false
}

// Reference returns the identifier stored in rec's field with the given JSON
// name, or nil when the field is unset or is not an identifier.
func Reference(rec any, field string) *int64 {
	v := reflect.ValueOf(rec)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	idx, ok := fieldIndex(v.Type(), field)
	if !ok || v.Field(idx).Type() != idPtrType || v.Field(idx).IsNil() {
		return nil
	}
	id := *(v.Field(idx).Interface().(*int64))
	return &id
}

// Clone returns a copy of rec whose identifier and foreign-key fields point at
// fresh values, so writes through the copy never reach rec.
func Clone[R Record](rec R) R {
	v := reflect.ValueOf(&rec).Elem()
	if v.Kind() != reflect.Struct {
		return rec
	}
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Type() != idPtrType || f.IsNil() || !f.CanSet() {
			continue
		}
		f.Set(reflect.ValueOf(ID(f.Elem().Int())))
	}
	return rec
}
