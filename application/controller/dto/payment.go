package dto

import "github.com/shopspring/decimal"

type InitiatePaymentDTO struct {
	Email           string          `json:"email" validate:"required,email"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency" validate:"omitempty,alpha,len=3"`
	ApplicationID   *string         `json:"applicationId"`
	CertificationID *string         `json:"certificationId"`
	ProgramName     string          `json:"programName"`
	FirstName       string          `json:"firstName" validate:"omitempty,name_spacial_char"`
	LastName        string          `json:"lastName" validate:"omitempty,name_spacial_char"`
	PhoneNumber     string          `json:"phoneNumber" validate:"omitempty,phone"`
	CountryCode     string          `json:"countryCode" validate:"omitempty,alpha,len=2"`
}

// VerifyPaymentDTO binds the query string of a verify or IPN call. The
// order-tracking provider sends OrderTrackingId; the bank-redirect
// provider sends reference (or trxref).
type VerifyPaymentDTO struct {
	Reference              string `form:"reference"`
	TrxRef                 string `form:"trxref"`
	OrderTrackingID        string `form:"OrderTrackingId"`
	OrderMerchantReference string `form:"OrderMerchantReference"`
	OrderNotificationType  string `form:"OrderNotificationType"`
}
