package validation

import "sort"

// Enum maps a stringified code to its label, e.g. {"0": "female", "1": "male"}.
type Enum map[string]string

// InMapKeys reports whether the string form of value is a key of enum.
// nil values are never members.
func InMapKeys(enum Enum, value any) bool {
	if isNil(value) {
		return false
	}
	_, ok := enum[Stringify(value)]
	return ok
}

// Label returns the label for value, or the empty string when it is not a member.
func (e Enum) Label(value any) string {
	if isNil(value) {
		return ""
	}
	return e[Stringify(value)]
}

// Keys returns the enum keys in sorted order.
func (e Enum) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
