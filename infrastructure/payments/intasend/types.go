package intasend_payment_processor

import "github.com/shopspring/decimal"

// CheckoutRequest is the card/mobile-money checkout. Amount is in the
// provider's native decimal unit.
type CheckoutRequest struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Amount      decimal.Decimal
	Currency    string
	APIRef      string
}

type CheckoutResult struct {
	URL       string
	InvoiceID string
	APIRef    string
	Status    string
	Raw       map[string]any
}

type checkoutPayload struct {
	PublicKey   string  `json:"public_key,omitempty"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	APIRef      string  `json:"api_ref"`
	RedirectURL string  `json:"redirect_url,omitempty"`
}

type checkoutResponse struct {
	ID     string  `json:"id"`
	URL    *string `json:"url"`
	APIRef string  `json:"api_ref"`
	Paid   bool    `json:"paid"`
}

type errorResponse struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (e errorResponse) message() string {
	if len(e.Errors) != 0 && e.Errors[0].Detail != "" {
		return e.Errors[0].Detail
	}
	return e.Detail
}
