package sanitizer

import (
	"strings"

	"staybook/pkg/validation"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone formats a valid number as E.164. Anything else comes back
// trimmed so the validator can reject it.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range validation.DefaultPhoneRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsValidNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return phone
}
