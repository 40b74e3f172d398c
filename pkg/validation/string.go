package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// TrimValue trims v when it is a string and returns any other value unchanged.
func TrimValue(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

// IsNonEmpty reports whether the string form of v is non-blank.
// nil and nil pointers are empty.
func IsNonEmpty(v any) bool {
	if isNil(v) {
		return false
	}
	return strings.TrimSpace(Stringify(v)) != ""
}

// IsMinLength reports whether the trimmed string form of v has at least min characters.
func IsMinLength(v any, min int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(Stringify(v))) >= min
}

// IsMaxLength reports whether the trimmed string form of v has at most max characters.
func IsMaxLength(v any, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(Stringify(v))) <= max
}

// Stringify renders v the way call sites compare it: strings as-is, numbers
// in their shortest decimal form, nil as the empty string.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case []byte:
		return string(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(t).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(t).Uint(), 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ""
		}
		return Stringify(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
