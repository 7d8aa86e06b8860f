package phone

import (
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// maxCallingCodeDigits is the longest ITU country calling code.
const maxCallingCodeDigits = 3

// nonGeoRegion is the region code of non-geographic calling codes such as +800.
const nonGeoRegion = "001"

// exampleTypes are the example numbers partial input is completed from, in order.
var exampleTypes = []phonenumbers.PhoneNumberType{phonenumbers.MOBILE, phonenumbers.FIXED_LINE}

// AsYouTypeFormatter lays out a number one character at a time.
//
// Partial input is completed with the tail of the region's mobile or
// fixed-line example number, whichever yields a plausible number,
// formatted the way the user started typing it (national prefix only when
// typed, international layout after a leading '+'), then cut after the last
// typed digit. The digits of every output equal the digits typed so far.
// Once a character other than a digit or a leading '+' arrives the
// formatter stops formatting and echoes the raw input.
//
// A formatter is not safe for concurrent use.
type AsYouTypeFormatter struct {
	region       string
	accrued      []rune
	digits       []byte
	leadingPlus  bool
	ableToFormat bool
	current      string
}

// NewAsYouTypeFormatter returns a formatter for region. An empty region (or
// "ZZ") only formats numbers entered with a leading '+'.
func NewAsYouTypeFormatter(region string) (*AsYouTypeFormatter, error) {
	region = NormalizeRegion(region)
	if region == UnknownRegion {
		region = ""
	}
	if region != "" && !IsSupportedRegion(region) {
		return nil, ErrUnsupportedRegion
	}

	f := &AsYouTypeFormatter{region: region}
	f.Clear()
	return f, nil
}

// Clear resets the formatter so it can take a new number.
func (f *AsYouTypeFormatter) Clear() {
	f.accrued = f.accrued[:0]
	f.digits = f.digits[:0]
	f.leadingPlus = false
	f.ableToFormat = true
	f.current = ""
}

// Current returns the last output.
func (f *AsYouTypeFormatter) Current() string {
	return f.current
}

// InputDigit feeds the next character and returns the formatted result so far.
func (f *AsYouTypeFormatter) InputDigit(r rune) string {
	f.accrued = append(f.accrued, r)

	if f.ableToFormat {
		switch {
		case r == '+' && len(f.accrued) == 1:
			f.leadingPlus = true
		default:
			digit := phonenumbers.NormalizeDigitsOnly(string(r))
			if len(digit) != 1 {
				f.ableToFormat = false
			} else {
				f.digits = append(f.digits, digit[0])
			}
		}
	}

	if !f.ableToFormat {
		f.current = string(f.accrued)
		return f.current
	}

	f.current = f.layout()
	return f.current
}

func (f *AsYouTypeFormatter) layout() string {
	typed := string(f.digits)
	if typed == "" {
		return string(f.accrued)
	}
	if f.leadingPlus {
		return f.layoutInternational(typed)
	}
	if f.region == "" {
		return string(f.accrued)
	}

	candidate := pickCandidate(typed, nationalTemplates(f.region, typed), "", f.region)
	return f.project(candidate, f.region, len(typed))
}

func (f *AsYouTypeFormatter) layoutInternational(typed string) string {
	callingCode, ok := detectCallingCode(typed)
	if !ok {
		return string(f.accrued)
	}

	prefix := strconv.Itoa(callingCode)
	var templates []string
	for _, nsn := range callingCodeExamples(callingCode) {
		templates = append(templates, prefix+nsn)
	}
	candidate := pickCandidate(typed, templates, "+", UnknownRegion)

	// Regions sharing a calling code each keep their own layout.
	region := phonenumbers.GetRegionCodeForCountryCode(callingCode)
	if number, err := phonenumbers.Parse(candidate, UnknownRegion); err == nil {
		if r := phonenumbers.GetRegionCodeForNumber(number); r != "" && r != UnknownRegion {
			region = r
		}
	}
	return f.project(candidate, region, len(typed))
}

// project formats candidate as typed and keeps everything up to the
// typedDigits-th digit. A cut that leaves a group open falls back to the raw
// input unless the group closes right after the cut.
func (f *AsYouTypeFormatter) project(candidate, region string, typedDigits int) string {
	number, err := phonenumbers.ParseAndKeepRawInput(candidate, region)
	if err != nil {
		return string(f.accrued)
	}

	formatted := phonenumbers.FormatInOriginalFormat(number, region)
	if phonenumbers.NormalizeDigitsOnly(formatted) != phonenumbers.NormalizeDigitsOnly(candidate) {
		formatted = candidate
	}

	cut := truncateAfterDigits(formatted, typedDigits)
	if strings.Count(cut, "(") > strings.Count(cut, ")") {
		if !strings.HasPrefix(formatted[len(cut):], ")") {
			return string(f.accrued)
		}
		cut += ")"
	}
	return cut
}

// FormatAsYouType feeds input through a fresh formatter and returns the final output.
func FormatAsYouType(input, region string) (string, error) {
	f, err := NewAsYouTypeFormatter(region)
	if err != nil {
		return "", err
	}

	formatted := ""
	for _, r := range input {
		formatted = f.InputDigit(r)
	}
	return formatted, nil
}

// detectCallingCode finds the calling code at the start of digits. Calling
// codes are prefix-free so the first hit is the only one.
func detectCallingCode(digits string) (int, bool) {
	for n := 1; n <= maxCallingCodeDigits && n <= len(digits); n++ {
		code, err := strconv.Atoi(digits[:n])
		if err != nil {
			return 0, false
		}
		if phonenumbers.GetRegionCodeForCountryCode(code) != UnknownRegion {
			return code, true
		}
	}
	return 0, false
}

// nationalTemplates returns the example numbers of region as national dial
// strings, with the national prefix only when the user started with it.
func nationalTemplates(region, typed string) []string {
	examples := exampleNationalNumbers(region)
	prefix := phonenumbers.GetNddPrefixForRegion(region, true)
	if prefix == "" || !strings.HasPrefix(typed, prefix) {
		return examples
	}

	templates := make([]string, 0, len(examples))
	for _, nsn := range examples {
		templates = append(templates, prefix+nsn)
	}
	return templates
}

// exampleNationalNumbers lists the mobile and fixed-line example numbers of region.
func exampleNationalNumbers(region string) []string {
	var examples []string
	for _, t := range exampleTypes {
		if example := phonenumbers.GetExampleNumberForType(region, t); example != nil {
			examples = append(examples, phonenumbers.GetNationalSignificantNumber(example))
		}
	}
	return examples
}

// callingCodeExamples lists the example numbers of every region behind
// callingCode, main region first.
func callingCodeExamples(callingCode int) []string {
	var examples []string
	for _, region := range phonenumbers.GetRegionCodesForCountryCode(callingCode) {
		if region == nonGeoRegion {
			if example := phonenumbers.GetExampleNumberForNonGeoEntity(callingCode); example != nil {
				examples = append(examples, phonenumbers.GetNationalSignificantNumber(example))
			}
			continue
		}
		examples = append(examples, exampleNationalNumbers(region)...)
	}
	return examples
}

// pickCandidate completes typed from templates. The typed digits win when they
// already form a valid number. After that the first valid completion wins, then
// the first possible one, then the first of any.
func pickCandidate(typed string, templates []string, plus, region string) string {
	if acceptable(plus+typed, region, phonenumbers.IsValidNumber) {
		return plus + typed
	}

	completions := make([]string, 0, len(templates))
	for _, template := range templates {
		if len(template) > len(typed) {
			completions = append(completions, plus+completeDigits(typed, template))
		}
	}
	if len(completions) == 0 {
		return plus + typed
	}

	for _, check := range []func(*phonenumbers.PhoneNumber) bool{phonenumbers.IsValidNumber, phonenumbers.IsPossibleNumber} {
		for _, candidate := range completions {
			if acceptable(candidate, region, check) {
				return candidate
			}
		}
	}
	return completions[0]
}

func acceptable(candidate, region string, check func(*phonenumbers.PhoneNumber) bool) bool {
	number, err := phonenumbers.Parse(candidate, region)
	return err == nil && check(number)
}

func completeDigits(typed, template string) string {
	if len(typed) >= len(template) {
		return typed
	}
	return typed + template[len(typed):]
}

func truncateAfterDigits(s string, digits int) string {
	seen := 0
	for i, r := range s {
		if r >= '0' && r <= '9' {
			seen++
			if seen == digits {
				return s[:i+1]
			}
		}
	}
	return s
}
