package models

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	full := PaymentDetailInput{CardOwnerName: "A", CardNumber: "4111111111111111", ExpirationDate: "12/29", SecurityCode: "123"}
	if err := full.Validate(); err != nil {
		t.Fatalf("Validate full input: %v", err)
	}

	// no format checks: anything non-blank is accepted
	odd := PaymentDetailInput{CardOwnerName: "x", CardNumber: "not a number", ExpirationDate: "someday", SecurityCode: "?"}
	if err := odd.Validate(); err != nil {
		t.Fatalf("Validate free-form input: %v", err)
	}

	cases := []struct {
		field string
		in    PaymentDetailInput
	}{
		{"cardOwnerName", PaymentDetailInput{CardNumber: "1", ExpirationDate: "1", SecurityCode: "1"}},
		{"cardNumber", PaymentDetailInput{CardOwnerName: "1", CardNumber: "  ", ExpirationDate: "1", SecurityCode: "1"}},
		{"expirationDate", PaymentDetailInput{CardOwnerName: "1", CardNumber: "1", SecurityCode: "1"}},
		{"securityCode", PaymentDetailInput{CardOwnerName: "1", CardNumber: "1", ExpirationDate: "1", SecurityCode: "\t"}},
	}
	for _, c := range cases {
		err := c.in.Validate()
		if !errors.Is(err, ErrMissingField) {
			t.Fatalf("Validate(%+v) err=%v want ErrMissingField", c.in, err)
		}
		if !strings.HasPrefix(err.Error(), c.field) {
			t.Fatalf("Validate error %q does not name %s", err, c.field)
		}
	}
}

func TestInputRoundTrip(t *testing.T) {
	in := PaymentDetailInput{CardOwnerName: "A", CardNumber: "1", ExpirationDate: "2", SecurityCode: "3"}
	rec := in.WithID(5)
	if rec.ID != 5 || rec.Input() != in {
		t.Fatalf("WithID/Input mismatch: %+v", rec)
	}
	if in.IsZero() || !(PaymentDetailInput{}).IsZero() {
		t.Fatalf("IsZero wrong")
	}
}
