package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"phonebridge/platform/apperr"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DEFAULT_REGION", "")
	t.Setenv("CATALOG_OVERRIDES_FILE", "")
	defaultRegion, countryLang, overridesFile, verbose = "", "", "", false

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "parse", "0612345678", "--region", "nl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result map[string]string
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if result["e164"] != "+31612345678" || result["type"] != "mobile" {
		t.Fatalf("unexpected result: %v", result)
	}
}

func TestParseCommandUsesDefaultRegionFlag(t *testing.T) {
	out, err := run(t, "--default-region", "us", "parse", "650 253 0000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var result map[string]string
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if result["e164"] != "+16502530000" {
		t.Fatalf("unexpected result: %v", result)
	}
}

func TestParseCommandInvalid(t *testing.T) {
	_, err := run(t, "parse", "12")
	if !apperr.Is(err, apperr.KindInvalidNumber) {
		t.Fatalf("expected InvalidNumber, got %v", err)
	}
}

func TestFormatCommandSteps(t *testing.T) {
	out, err := run(t, "format", "+1650", "--steps")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var outputs []string
	if err := json.Unmarshal([]byte(out), &outputs); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(outputs) != 5 || outputs[0] != "+" {
		t.Fatalf("unexpected steps: %v", outputs)
	}
}

func TestRegionsCommandSubset(t *testing.T) {
	out, err := run(t, "--lang", "de", "regions", "de", "FR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var catalog map[string]map[string]string
	if err := json.Unmarshal([]byte(out), &catalog); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(catalog))
	}
	if catalog["DE"]["countryName"] != "Deutschland" || catalog["FR"]["phoneCode"] != "33" {
		t.Fatalf("unexpected catalog: %v", catalog)
	}

	if _, err := run(t, "regions", "QQ"); !apperr.Is(err, apperr.KindInvalidParameters) {
		t.Fatalf("expected InvalidParameters for unknown region, got %v", err)
	}
}

func TestCallCommand(t *testing.T) {
	out, err := run(t, "call", "format", `{"string":"+442012345678"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var result map[string]string
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if result["formatted"] != "+44 20 1234 5678" {
		t.Fatalf("unexpected result %v", result)
	}

	if _, err := run(t, "call", "dial"); !apperr.Is(err, apperr.KindNotImplemented) {
		t.Fatalf("expected NotImplemented, got %v", err)
	}
	if _, err := run(t, "call", "parse", "[1]"); !apperr.Is(err, apperr.KindInvalidParameters) {
		t.Fatalf("expected InvalidParameters for non-object args, got %v", err)
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, apperr.InvalidParameter("phone"))

	var body map[string]string
	if err := json.Unmarshal(buf.Bytes(), &body); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if body["code"] != apperr.CodeInvalidParameters || body["message"] != "Invalid 'phone' parameter." {
		t.Fatalf("unexpected error body: %v", body)
	}
}
