package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodesAndStatuses(t *testing.T) {
	cases := []struct {
		err    *Error
		code   string
		status int
	}{
		{InvalidParameter("phone"), CodeInvalidParameters, http.StatusBadRequest},
		{InvalidNumber("123", nil), CodeInvalidNumber, http.StatusUnprocessableEntity},
		{NotImplemented("bogus"), CodeNotImplemented, http.StatusNotImplemented},
		{Unauthorized("missing token"), CodeUnauthorized, http.StatusUnauthorized},
		{Canceled(errors.New("deadline")), CodeCanceled, http.StatusRequestTimeout},
		{Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := tc.err.Code(); got != tc.code {
			t.Fatalf("%q: expected code %s, got %s", tc.err.Message, tc.code, got)
		}
		if got := tc.err.HTTPStatus(); got != tc.status {
			t.Fatalf("%q: expected status %d, got %d", tc.err.Message, tc.status, got)
		}
	}
}

func TestMessagesMatchChannelContract(t *testing.T) {
	if got := InvalidParameter("phone").Message; got != "Invalid 'phone' parameter." {
		t.Fatalf("unexpected message %q", got)
	}
	if got := InvalidNumber("+1", nil).Message; got != "Number +1 is invalid" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestGetKindFollowsWrapping(t *testing.T) {
	cause := errors.New("parse failed")
	err := fmt.Errorf("numbers: %w", InvalidNumber("x", cause).WithOp("parse"))

	if !Is(err, KindInvalidNumber) {
		t.Fatalf("expected wrapped kind to be found")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if GetKind(cause) != KindUnknown {
		t.Fatalf("expected unknown kind for plain errors")
	}
}
