package values

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// SetFromString parses token into val based on its Kind. It covers the
// primitive kinds, named types over them, and time.Duration as a special
// case of int64.
func SetFromString(val reflect.Value, token string) error {
	switch val.Kind() {
	case reflect.String:
		val.SetString(token)
	case reflect.Bool:
		parsed, err := strconv.ParseBool(token)
		if err != nil {
			return err
		}
		val.SetBool(parsed)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if val.Type() == durationType {
			dur, err := time.ParseDuration(token)
			if err != nil {
				return err
			}
			val.SetInt(int64(dur))

			return nil
		}

		num, err := strconv.ParseInt(token, 10, val.Type().Bits())
		if err != nil {
			return err
		}
		val.SetInt(num)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		num, err := strconv.ParseUint(token, 10, val.Type().Bits())
		if err != nil {
			return err
		}
		val.SetUint(num)
	case reflect.Float32, reflect.Float64:
		num, err := strconv.ParseFloat(token, val.Type().Bits())
		if err != nil {
			return err
		}
		val.SetFloat(num)
	default:
		return fmt.Errorf("unsupported type for conversion: %s", val.Type())
	}

	return nil
}

func convertibleKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}

	return false
}
