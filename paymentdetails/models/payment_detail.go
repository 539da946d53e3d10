package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField is returned when a required payment detail field is empty.
var ErrMissingField = errors.New("missing required field")

// PaymentDetail is a single stored payment method.
type PaymentDetail struct {
	ID             int64  `json:"paymentDetailId"`
	CardOwnerName  string `json:"cardOwnerName"`
	CardNumber     string `json:"cardNumber"`
	ExpirationDate string `json:"expirationDate"`
	SecurityCode   string `json:"securityCode"`
}

// PaymentDetailInput holds the editable fields of a payment detail.
type PaymentDetailInput struct {
	CardOwnerName  string `json:"cardOwnerName"`
	CardNumber     string `json:"cardNumber"`
	ExpirationDate string `json:"expirationDate"`
	SecurityCode   string `json:"securityCode"`
}

// Input returns the editable fields of the record.
func (p PaymentDetail) Input() PaymentDetailInput {
	return PaymentDetailInput{
		CardOwnerName:  p.CardOwnerName,
		CardNumber:     p.CardNumber,
		ExpirationDate: p.ExpirationDate,
		SecurityCode:   p.SecurityCode,
	}
}

// WithID builds a full record from the input.
func (in PaymentDetailInput) WithID(id int64) PaymentDetail {
	return PaymentDetail{
		ID:             id,
		CardOwnerName:  in.CardOwnerName,
		CardNumber:     in.CardNumber,
		ExpirationDate: in.ExpirationDate,
		SecurityCode:   in.SecurityCode,
	}
}

// Validate checks that every field is present. Formats are not checked.
func (in PaymentDetailInput) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"cardOwnerName", in.CardOwnerName},
		{"cardNumber", in.CardNumber},
		{"expirationDate", in.ExpirationDate},
		{"securityCode", in.SecurityCode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s: %w", f.name, ErrMissingField)
		}
	}
	return nil
}

// IsZero reports whether all fields are empty.
func (in PaymentDetailInput) IsZero() bool {
	return in == PaymentDetailInput{}
}
