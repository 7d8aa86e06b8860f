package transport

// Parse

type ParseRequest struct {
	Phone  string `json:"phone" validate:"required"`
	Region string `json:"region,omitempty"`
}

type ParseResponse struct {
	Type           string `json:"type"`
	E164           string `json:"e164"`
	International  string `json:"international"`
	National       string `json:"national"`
	CountryCode    string `json:"country_code"`
	NationalNumber string `json:"national_number"`
}

// Format

// FormatRequest takes a pointer so an absent phone can be told apart from an empty one.
type FormatRequest struct {
	Phone  *string `json:"phone" validate:"required"`
	Region string  `json:"region,omitempty"`
}

type FormatResponse struct {
	Formatted string `json:"formatted"`
}
