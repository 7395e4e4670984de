package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// processStructFields overrides every field tagged `env:"NAME"` whose variable
// is set, descending into nested sections. All bad values are reported together.
func processStructFields(s interface{}) error {
	val := reflect.Indirect(reflect.ValueOf(s))
	if val.Kind() != reflect.Struct {
		return nil
	}

	var errs error
	for _, sf := range reflect.VisibleFields(val.Type()) {
		field := val.FieldByIndex(sf.Index)
		if sf.Type.Kind() == reflect.Struct {
			errs = errors.Join(errs, processStructFields(field.Addr().Interface()))
			continue
		}

		name, ok := sf.Tag.Lookup("env")
		if !ok || name == "" {
			continue
		}
		raw, set := os.LookupEnv(name)
		if !set {
			continue
		}
		if err := setFieldFromEnv(field, raw); err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errs
}

// setFieldFromEnv parses raw into field according to its kind
func setFieldFromEnv(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return errors.New("field cannot be set")
	}

	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q", raw)
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}
