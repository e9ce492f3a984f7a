package paystack_payment_processor

import "time"

// InitializeRequest carries the amount already converted to minor units.
type InitializeRequest struct {
	Email       string
	AmountMinor int64
	Currency    string
	Reference   string
	Metadata    map[string]any
}

type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type TransactionStatus struct {
	Reference   string
	Status      string
	AmountMinor int64
	Currency    string
	PaidAt      *time.Time
	Raw         map[string]any
}

type initializePayload struct {
	Email       string         `json:"email"`
	Amount      int64          `json:"amount"`
	Currency    string         `json:"currency"`
	Reference   string         `json:"reference"`
	CallbackURL string         `json:"callback_url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type PaystackInitializeResponse struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    PaystackInitializeData `json:"data"`
}

type PaystackInitializeData struct {
	AuthURL    *string `json:"authorization_url"`
	AccessCode string  `json:"access_code"`
	Reference  string  `json:"reference"`
}

type PaystackTransactionVerificationResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    TransactionData `json:"data"`
}

type TransactionData struct {
	ID              int64          `json:"id"`
	Status          string         `json:"status"`
	Reference       string         `json:"reference"`
	Amount          int64          `json:"amount"`
	GatewayResponse string         `json:"gateway_response"`
	PaidAt          *time.Time     `json:"paid_at"`
	Channel         string         `json:"channel"`
	Currency        string         `json:"currency"`
	Metadata        map[string]any `json:"metadata"`
	Customer        Customer       `json:"customer"`
}

type Customer struct {
	ID           int64   `json:"id"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        string  `json:"email"`
	CustomerCode string  `json:"customer_code"`
	Phone        *string `json:"phone"`
}

// WebhookEvent is the envelope Paystack posts to the webhook endpoint.
type WebhookEvent struct {
	Event string          `json:"event"`
	Data  TransactionData `json:"data"`
}
