package phone

import (
	"strconv"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// RegionInfo describes one supported region. The JSON keys are the wire keys
// mobile and web clients read.
type RegionInfo struct {
	PhoneCode                           string `json:"phoneCode"`
	PhoneMask                           string `json:"phoneMask"`
	PhoneMaskMobileInternational        string `json:"phoneMaskMobileInternational"`
	PhoneMaskMobileNational             string `json:"phoneMaskMobileNational"`
	PhoneMaskFixedLineInternational     string `json:"phoneMaskFixedLineInternational"`
	PhoneMaskFixedLineNational          string `json:"phoneMaskFixedLineNational"`
	ExampleNumberMobileNational         string `json:"exampleNumberMobileNational"`
	ExampleNumberMobileInternational    string `json:"exampleNumberMobileInternational"`
	ExampleNumberFixedLineNational      string `json:"exampleNumberFixedLineNational"`
	ExampleNumberFixedLineInternational string `json:"exampleNumberFixedLineInternational"`
	CountryName                         string `json:"countryName"`
}

// CountryNamer resolves display names for region codes.
type CountryNamer struct {
	namer display.Namer
}

// NewCountryNamer returns a namer for the BCP 47 language tag lang, falling
// back to English when the tag is malformed or has no display data.
func NewCountryNamer(lang string) CountryNamer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	namer := display.Regions(tag)
	if namer == nil {
		namer = display.Regions(language.English)
	}
	return CountryNamer{namer: namer}
}

// Name returns the display name for region, or the code itself when unknown.
func (n CountryNamer) Name(region string) string {
	if n.namer == nil {
		return region
	}
	r, err := language.ParseRegion(region)
	if err != nil {
		return region
	}
	if name := n.namer.Name(r); name != "" {
		return name
	}
	return region
}

// BuildRegionInfo derives the catalog record for region from its example numbers.
// Types without an example leave their fields empty.
func BuildRegionInfo(region string, names CountryNamer) RegionInfo {
	region = NormalizeRegion(region)
	phoneCode := strconv.Itoa(phonenumbers.GetCountryCodeForRegion(region))

	info := RegionInfo{
		PhoneCode:   phoneCode,
		CountryName: names.Name(region),
	}

	if example := phonenumbers.GetExampleNumber(region); example != nil {
		info.PhoneMask = Mask("+" + phoneCode + " " + phonenumbers.Format(example, phonenumbers.NATIONAL))
	}

	if mobile := phonenumbers.GetExampleNumberForType(region, phonenumbers.MOBILE); mobile != nil {
		info.ExampleNumberMobileNational = phonenumbers.Format(mobile, phonenumbers.NATIONAL)
		info.ExampleNumberMobileInternational = phonenumbers.Format(mobile, phonenumbers.INTERNATIONAL)
		info.PhoneMaskMobileNational = Mask(info.ExampleNumberMobileNational)
		info.PhoneMaskMobileInternational = Mask(info.ExampleNumberMobileInternational)
	}

	if fixed := phonenumbers.GetExampleNumberForType(region, phonenumbers.FIXED_LINE); fixed != nil {
		info.ExampleNumberFixedLineNational = phonenumbers.Format(fixed, phonenumbers.NATIONAL)
		info.ExampleNumberFixedLineInternational = phonenumbers.Format(fixed, phonenumbers.INTERNATIONAL)
		info.PhoneMaskFixedLineNational = Mask(info.ExampleNumberFixedLineNational)
		info.PhoneMaskFixedLineInternational = Mask(info.ExampleNumberFixedLineInternational)
	}

	return info
}
