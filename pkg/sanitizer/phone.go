package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const (
	defaultRegion      = "CN"
	chinaCountryCode   = 86
	nationalNumberSize = 11
)

// NormalizePhone turns "+86 138-0013-8000", "0086 13800138000" and similar
// into "13800138000". Numbers from other countries, and anything that does
// not parse, come back trimmed but otherwise unchanged.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, defaultRegion)
	if err != nil || parsed.GetCountryCode() != chinaCountryCode {
		return phone
	}
	national := phonenumbers.GetNationalSignificantNumber(parsed)
	if len(national) != nationalNumberSize {
		return phone
	}
	return national
}
