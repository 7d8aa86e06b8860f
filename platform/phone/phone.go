// Package phone provides phone number utilities on top of libphonenumber metadata.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// UnknownRegion is the library's placeholder for "no region".
const UnknownRegion = "ZZ"

// MaskPlaceholder replaces every digit of a formatted example number.
const MaskPlaceholder = '0'

var (
	ErrEmptyNumber       = errors.New("empty phone number")
	ErrInvalidNumber     = errors.New("invalid phone number")
	ErrUnsupportedRegion = errors.New("unsupported region")
)

// Details is a parsed, validated number in every layout callers ask for.
type Details struct {
	Type           string
	E164           string
	International  string
	National       string
	CountryCode    string
	NationalNumber string
}

// NormalizeRegion upper-cases and trims a region hint.
func NormalizeRegion(region string) string {
	return strings.ToUpper(strings.TrimSpace(region))
}

// IsSupportedRegion reports whether the library carries metadata for region.
func IsSupportedRegion(region string) bool {
	return phonenumbers.GetSupportedRegions()[NormalizeRegion(region)]
}

// SupportedRegions returns every region code the library knows, sorted.
func SupportedRegions() []string {
	set := phonenumbers.GetSupportedRegions()
	regions := make([]string, 0, len(set))
	for region := range set {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}

// Parse parses raw against an optional region hint and requires the result to be valid.
// Without a hint the number has to carry its own +country code.
func Parse(raw, region string) (Details, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Details{}, ErrEmptyNumber
	}

	number, err := phonenumbers.Parse(trimmed, NormalizeRegion(region))
	if err != nil {
		return Details{}, errors.Join(ErrInvalidNumber, err)
	}
	if !phonenumbers.IsValidNumber(number) {
		return Details{}, ErrInvalidNumber
	}

	return Details{
		Type:           TypeName(phonenumbers.GetNumberType(number)),
		E164:           phonenumbers.Format(number, phonenumbers.E164),
		International:  phonenumbers.Format(number, phonenumbers.INTERNATIONAL),
		National:       phonenumbers.Format(number, phonenumbers.NATIONAL),
		CountryCode:    strconv.Itoa(int(number.GetCountryCode())),
		NationalNumber: strconv.FormatUint(number.GetNationalNumber(), 10),
	}, nil
}

// TypeName maps the library's number type onto the names callers switch on.
func TypeName(t phonenumbers.PhoneNumberType) string {
	switch t {
	case phonenumbers.FIXED_LINE:
		return "fixedLine"
	case phonenumbers.MOBILE:
		return "mobile"
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return "fixedOrMobile"
	case phonenumbers.TOLL_FREE:
		return "tollFree"
	case phonenumbers.PREMIUM_RATE:
		return "premiumRate"
	case phonenumbers.SHARED_COST:
		return "sharedCost"
	case phonenumbers.VOIP:
		return "voip"
	case phonenumbers.PERSONAL_NUMBER:
		return "personalNumber"
	case phonenumbers.PAGER:
		return "pager"
	case phonenumbers.UAN:
		return "uan"
	case phonenumbers.VOICEMAIL:
		return "voicemail"
	case phonenumbers.UNKNOWN:
		return "unknown"
	default:
		return "notParsed"
	}
}

// Mask replaces every ASCII digit in formatted with MaskPlaceholder.
func Mask(formatted string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return MaskPlaceholder
		}
		return r
	}, formatted)
}
