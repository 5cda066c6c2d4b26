package router

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/google/uuid"
)

var uuidType = reflect.TypeOf(uuid.UUID{})

// DecodeParams populates the `param`-tagged fields of the struct target
// points to from params. Missing parameters leave fields untouched.
//
//	var p struct {
//	    UserID  int64     `param:"userID"`
//	    ImageID uuid.UUID `param:"imageID"`
//	}
//	err := router.DecodeParams(req.Params, &p)
func DecodeParams(params map[string]string, target any) error {
	if target == nil {
		return nil
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("target must be a pointer, got %s", v.Kind())
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to struct, got pointer to %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("param")
		if name == "" {
			continue
		}

		value, ok := params[name]
		if !ok {
			continue
		}

		fieldValue := v.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		if err := setField(fieldValue, value); err != nil {
			return fmt.Errorf("decoding param %q: %w", name, err)
		}
	}

	return nil
}

// setField sets a field value from a path segment.
func setField(field reflect.Value, value string) error {
	if field.Type() == uuidType {
		id, err := uuid.Parse(value)
		if err != nil {
			return fmt.Errorf("invalid UUID: %s", value)
		}
		field.Set(reflect.ValueOf(id))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer: %s", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer: %s", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float: %s", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s", value)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type: %s", field.Kind())
	}

	return nil
}
