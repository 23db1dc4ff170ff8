package payments

import (
	"time"

	"github.com/mpago/go-mpago/mercadopago"
)

// parseISODate accepts the timestamp formats MercadoPago documents:
// RFC 3339 with or without fractional seconds.
func parseISODate(s string) error {
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return nil
	}
	_, err := time.Parse("2006-01-02T15:04:05.000-07:00", s)
	return err
}

func (o CreateOptions) validate() error {
	if o.TransactionAmount.IsZero() {
		return &mercadopago.ValidationError{Field: "transaction_amount", Reason: "required"}
	}
	if o.TransactionAmount.Negative() {
		return &mercadopago.ValidationError{Field: "transaction_amount", Reason: "must be positive"}
	}
	if o.TransactionAmount.Scale() > o.Currency.MaxScale() {
		return &mercadopago.ValidationError{Field: "transaction_amount", Reason: "too many decimal places for currency"}
	}
	if o.Payer.Email == "" {
		return &mercadopago.ValidationError{Field: "payer.email", Reason: "required"}
	}
	if !knownMethods[o.PaymentMethodID] {
		return &mercadopago.ValidationError{Field: "payment_method_id", Reason: "unknown payment method"}
	}
	if o.Installments < 1 {
		return &mercadopago.ValidationError{Field: "installments", Reason: "must be at least 1"}
	}
	if o.PaymentMethodID.IsCard() && o.Token == "" {
		return &mercadopago.ValidationError{Field: "token", Reason: "required for card payments"}
	}
	if !o.PaymentMethodID.IsCard() && o.Token != "" {
		return &mercadopago.ValidationError{Field: "token", Reason: "only valid for card payments"}
	}
	if o.DateOfExpiration != "" {
		if err := parseISODate(o.DateOfExpiration); err != nil {
			return &mercadopago.ValidationError{Field: "date_of_expiration", Reason: "not a valid ISO-8601 timestamp"}
		}
	}
	if o.CouponAmount != nil && o.CouponAmount.Negative() {
		return &mercadopago.ValidationError{Field: "coupon_amount", Reason: "must not be negative"}
	}
	if o.ApplicationFee != nil && o.ApplicationFee.Negative() {
		return &mercadopago.ValidationError{Field: "application_fee", Reason: "must not be negative"}
	}
	return nil
}

func (o UpdateOptions) validate() error {
	if o.Status != "" && !knownStatuses[o.Status] {
		return &mercadopago.ValidationError{Field: "status", Reason: "unknown status"}
	}
	if o.TransactionAmount != nil {
		if o.TransactionAmount.Negative() || o.TransactionAmount.IsZero() {
			return &mercadopago.ValidationError{Field: "transaction_amount", Reason: "must be positive"}
		}
	}
	if o.DateOfExpiration != "" {
		if err := parseISODate(o.DateOfExpiration); err != nil {
			return &mercadopago.ValidationError{Field: "date_of_expiration", Reason: "not a valid ISO-8601 timestamp"}
		}
	}
	return nil
}

func (o SearchOptions) validate() error {
	if o.Sort != "" && !knownSearchSorts[o.Sort] {
		return &mercadopago.ValidationError{Field: "sort", Reason: "unknown sort field"}
	}
	if o.Criteria != "" && o.Criteria != CriteriaAscending && o.Criteria != CriteriaDescending {
		return &mercadopago.ValidationError{Field: "criteria", Reason: "must be asc or desc"}
	}
	if o.Range != "" && !knownSearchRanges[o.Range] {
		return &mercadopago.ValidationError{Field: "range", Reason: "unknown range field"}
	}
	if o.Limit < 0 {
		return &mercadopago.ValidationError{Field: "limit", Reason: "must not be negative"}
	}
	if o.Offset < 0 {
		return &mercadopago.ValidationError{Field: "offset", Reason: "must not be negative"}
	}
	if err := validateSearchDate("begin_date", o.BeginDate); err != nil {
		return err
	}
	return validateSearchDate("end_date", o.EndDate)
}

// validateSearchDate accepts absolute ISO-8601 timestamps and the
// relative forms the search endpoint supports ("NOW-3MONTHS").
func validateSearchDate(field, s string) error {
	if s == "" || isRelativeDate(s) {
		return nil
	}
	if err := parseISODate(s); err != nil {
		return &mercadopago.ValidationError{Field: field, Reason: "not a valid ISO-8601 timestamp or NOW-relative date"}
	}
	return nil
}

func isRelativeDate(s string) bool {
	return s == "NOW" || (len(s) > 4 && s[:4] == "NOW-")
}
