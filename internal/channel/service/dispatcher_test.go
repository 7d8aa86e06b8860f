package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	numbersservice "phonebridge/internal/numbers/service"
	numberstransport "phonebridge/internal/numbers/transport"
	"phonebridge/internal/regions/repository"
	"phonebridge/platform/apperr"
	"phonebridge/platform/logger"
	"phonebridge/platform/phone"
	"phonebridge/platform/validator"

	"github.com/nyaruka/phonenumbers"
)

type testPhoneConfig struct{}

func (testPhoneConfig) GetDefaultRegion() string { return "" }

type fakeRegions struct {
	catalog repository.Catalog
	err     error
	block   chan struct{}
}

func (f *fakeRegions) List(ctx context.Context) (repository.Catalog, error) {
	if f.block != nil {
		<-f.block
	}
	return f.catalog, f.err
}

func newTestDispatcher(regions Regions) *Dispatcher {
	numbers := numbersservice.New(testPhoneConfig{}, validator.New(), logger.Discard())
	return New(numbers, regions, logger.Discard())
}

func TestMethodsSorted(t *testing.T) {
	d := newTestDispatcher(&fakeRegions{})

	want := []string{MethodFormat, MethodGetAllSupportedRegions, MethodParse}
	if got := d.Methods(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCallUnknownMethod(t *testing.T) {
	d := newTestDispatcher(&fakeRegions{})

	_, err := d.Call(context.Background(), "getCountries", nil)
	if !apperr.Is(err, apperr.KindNotImplemented) {
		t.Fatalf("expected NotImplemented, got %v", err)
	}
}

func TestCallParse(t *testing.T) {
	d := newTestDispatcher(&fakeRegions{})

	result, err := d.Call(context.Background(), MethodParse, map[string]interface{}{
		ArgPhone:  "020 7946 0018",
		ArgRegion: "gb",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fields, ok := result.(map[string]string)
	if !ok {
		t.Fatalf("expected map[string]string, got %T", result)
	}
	if fields["e164"] != "+442079460018" || fields["type"] != "fixedLine" || fields["country_code"] != "44" {
		t.Fatalf("unexpected result: %v", fields)
	}
	if len(fields) != 6 {
		t.Fatalf("expected 6 keys, got %d", len(fields))
	}
}

func TestCallParseErrors(t *testing.T) {
	d := newTestDispatcher(&fakeRegions{})

	cases := []struct {
		name string
		args map[string]interface{}
		code string
	}{
		{"missing phone", nil, apperr.CodeInvalidParameters},
		{"null phone", map[string]interface{}{ArgPhone: nil}, apperr.CodeInvalidParameters},
		{"numeric phone", map[string]interface{}{ArgPhone: 6502530000.0}, apperr.CodeInvalidParameters},
		{"numeric region", map[string]interface{}{ArgPhone: "+16502530000", ArgRegion: 1.0}, apperr.CodeInvalidParameters},
		{"invalid number", map[string]interface{}{ArgPhone: "+1 555"}, apperr.CodeInvalidNumber},
	}

	for _, tc := range cases {
		_, err := d.Call(context.Background(), MethodParse, tc.args)
		var domainErr *apperr.Error
		if !errors.As(err, &domainErr) {
			t.Fatalf("%s: expected *apperr.Error, got %v", tc.name, err)
		}
		if domainErr.Code() != tc.code {
			t.Fatalf("%s: expected code %s, got %s", tc.name, tc.code, domainErr.Code())
		}
	}
}

func TestCallFormatAcceptsLegacyKey(t *testing.T) {
	d := newTestDispatcher(&fakeRegions{})

	for _, key := range []string{ArgPhone, ArgLegacyString} {
		result, err := d.Call(context.Background(), MethodFormat, map[string]interface{}{key: "+442012345678"})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", key, err)
		}
		fields, _ := result.(map[string]string)
		if fields["formatted"] != "+44 20 1234 5678" {
			t.Fatalf("%s: unexpected result %v", key, result)
		}
	}

	_, err := d.Call(context.Background(), MethodFormat, map[string]interface{}{ArgRegion: "US"})
	if !apperr.Is(err, apperr.KindInvalidParameters) {
		t.Fatalf("expected InvalidParameters without input, got %v", err)
	}
}

func TestCallFormatPartialInput(t *testing.T) {
	d := newTestDispatcher(&fakeRegions{})

	result, err := d.Call(context.Background(), MethodFormat, map[string]interface{}{ArgPhone: "650253", ArgRegion: "US"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields, _ := result.(map[string]string)
	if phonenumbers.NormalizeDigitsOnly(fields["formatted"]) != "650253" {
		t.Fatalf("expected typed digits preserved, got %v", result)
	}
}

func TestCallRegions(t *testing.T) {
	catalog := repository.Catalog{"NL": phone.RegionInfo{PhoneCode: "31"}}
	d := newTestDispatcher(&fakeRegions{catalog: catalog})

	result, err := d.Call(context.Background(), MethodGetAllSupportedRegions, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := result.(repository.Catalog)
	if !ok || got["NL"].PhoneCode != "31" {
		t.Fatalf("unexpected result %v", result)
	}
}

func TestCallRegionsFailure(t *testing.T) {
	d := newTestDispatcher(&fakeRegions{err: errors.New("boom")})

	_, err := d.Call(context.Background(), MethodGetAllSupportedRegions, nil)
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected Internal, got %v", err)
	}
}

func TestCallRegionsCanceled(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	d := newTestDispatcher(&fakeRegions{block: block})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := d.Call(ctx, MethodGetAllSupportedRegions, nil)
	if !apperr.Is(err, apperr.KindCanceled) {
		t.Fatalf("expected Canceled, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected wrapped deadline error, got %v", err)
	}
}

type failingNumbers struct{}

func (failingNumbers) Parse(context.Context, numberstransport.ParseRequest) (numberstransport.ParseResponse, error) {
	return numberstransport.ParseResponse{}, errors.New("metadata unavailable")
}

func (failingNumbers) Format(context.Context, numberstransport.FormatRequest) (numberstransport.FormatResponse, error) {
	return numberstransport.FormatResponse{}, errors.New("metadata unavailable")
}

func TestCallWrapsPlainErrorsAsInternal(t *testing.T) {
	d := New(failingNumbers{}, &fakeRegions{}, logger.Discard())

	_, err := d.Call(context.Background(), MethodParse, map[string]interface{}{ArgPhone: "+16502530000"})
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected Internal, got %v", err)
	}
	if err.Error() != "parse: call failed" {
		t.Fatalf("expected method-tagged message, got %q", err.Error())
	}
}
