package service

import (
	"context"
	"errors"

	"phonebridge/internal/numbers/transport"
	"phonebridge/platform/apperr"
	"phonebridge/platform/config"
	"phonebridge/platform/logger"
	"phonebridge/platform/phone"
	"phonebridge/platform/validator"
)

const fieldPhone = "phone"

// Service parses and formats phone numbers.
type Service struct {
	val           *validator.Validator
	defaultRegion string
	log           *logger.Logger
}

// New creates a numbers service. The configured default region applies when a
// request carries no region of its own.
func New(cfg config.PhoneConfig, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{
		val:           val,
		defaultRegion: phone.NormalizeRegion(cfg.GetDefaultRegion()),
		log:           log,
	}
}

// Parse validates the number and returns it in every layout.
func (s *Service) Parse(ctx context.Context, req transport.ParseRequest) (transport.ParseResponse, error) {
	if err := s.val.Struct(req); err != nil {
		return transport.ParseResponse{}, invalidRequest(err)
	}

	details, err := phone.Parse(req.Phone, s.region(req.Region))
	if errors.Is(err, phone.ErrEmptyNumber) {
		return transport.ParseResponse{}, apperr.InvalidParameter(fieldPhone)
	}
	if err != nil {
		s.log.WithContext(ctx).Debug("number rejected", "region", req.Region, "error", err)
		return transport.ParseResponse{}, apperr.InvalidNumber(req.Phone, err)
	}

	return transport.ParseResponse{
		Type:           details.Type,
		E164:           details.E164,
		International:  details.International,
		National:       details.National,
		CountryCode:    details.CountryCode,
		NationalNumber: details.NationalNumber,
	}, nil
}

// Format lays out partial input the way a phone keypad would while typing.
// An empty phone formats to an empty string.
func (s *Service) Format(ctx context.Context, req transport.FormatRequest) (transport.FormatResponse, error) {
	if err := s.val.Struct(req); err != nil {
		return transport.FormatResponse{}, invalidRequest(err)
	}

	formatted, err := phone.FormatAsYouType(*req.Phone, s.region(req.Region))
	if err != nil {
		s.log.WithContext(ctx).Debug("format rejected", "region", req.Region, "error", err)
		return transport.FormatResponse{}, apperr.InvalidNumber(*req.Phone, err)
	}
	return transport.FormatResponse{Formatted: formatted}, nil
}

func (s *Service) region(requested string) string {
	if region := phone.NormalizeRegion(requested); region != "" {
		return region
	}
	return s.defaultRegion
}

func invalidRequest(err error) error {
	field, ok := validator.FirstInvalidField(err)
	if !ok {
		field = fieldPhone
	}
	return apperr.InvalidParameter(field)
}
