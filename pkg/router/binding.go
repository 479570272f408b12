package router

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// bindQuery fills obj from query parameters, matching fields by their json
// tag so GET requests bind against the same names as POST bodies.
func bindQuery(values url.Values, obj any) error {
	target := reflect.ValueOf(obj).Elem()
	targetType := target.Type()

	for i := 0; i < targetType.NumField(); i++ {
		field := targetType.Field(i)
		if !field.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			name = field.Name
		}

		if !values.Has(name) {
			continue
		}

		if err := setQueryField(target.Field(i), values, name); err != nil {
			return fmt.Errorf("invalid value of %s: %w", name, err)
		}
	}

	return nil
}

func setQueryField(field reflect.Value, values url.Values, name string) error {
	value := values.Get(name)

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		field.Set(reflect.ValueOf(values[name]))

	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}

	return nil
}
