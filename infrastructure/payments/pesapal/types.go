package pesapal_payment_processor

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IPNCache remembers registered notification ids across requests. The
// redis repository satisfies it.
type IPNCache interface {
	FindOne(ctx context.Context, key string) *string
	CreateEntry(ctx context.Context, key string, payload interface{}, ttl time.Duration) bool
	DeleteOne(ctx context.Context, key string) bool
}

type OrderRequest struct {
	MerchantReference string
	Amount            decimal.Decimal
	Currency          string
	Description       string
	Email             string
	PhoneNumber       string
	CountryCode       string
	FirstName         string
	LastName          string
}

type OrderResult struct {
	OrderTrackingID   string
	MerchantReference string
	RedirectURL       string
	IPNID             string
}

type TransactionStatus struct {
	OrderTrackingID   string
	MerchantReference string
	Status            string
	StatusCode        int
	Amount            decimal.Decimal
	Currency          string
	PaymentMethod     string
	ConfirmationCode  string
	Raw               map[string]any
}

type pesapalError struct {
	ErrorType string `json:"error_type"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

type tokenResponse struct {
	Token      string        `json:"token"`
	ExpiryDate string        `json:"expiryDate"`
	Error      *pesapalError `json:"error"`
	Status     string        `json:"status"`
	Message    string        `json:"message"`
}

type registerIPNPayload struct {
	URL                 string `json:"url"`
	IPNNotificationType string `json:"ipn_notification_type"`
}

type registerIPNResponse struct {
	URL    string        `json:"url"`
	IPNID  string        `json:"ipn_id"`
	Error  *pesapalError `json:"error"`
	Status string        `json:"status"`
}

type billingAddress struct {
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number"`
	CountryCode  string `json:"country_code"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

type submitOrderPayload struct {
	ID             string         `json:"id"`
	Currency       string         `json:"currency"`
	Amount         float64        `json:"amount"`
	Description    string         `json:"description"`
	CallbackURL    string         `json:"callback_url"`
	NotificationID string         `json:"notification_id"`
	BillingAddress billingAddress `json:"billing_address"`
}

type submitOrderResponse struct {
	OrderTrackingID   string        `json:"order_tracking_id"`
	MerchantReference string        `json:"merchant_reference"`
	RedirectURL       string        `json:"redirect_url"`
	Error             *pesapalError `json:"error"`
	Status            string        `json:"status"`
}

type transactionStatusResponse struct {
	PaymentMethod            string        `json:"payment_method"`
	Amount                   float64       `json:"amount"`
	ConfirmationCode         string        `json:"confirmation_code"`
	PaymentStatusDescription string        `json:"payment_status_description"`
	StatusCode               int           `json:"status_code"`
	MerchantReference        string        `json:"merchant_reference"`
	Currency                 string        `json:"currency"`
	Error                    *pesapalError `json:"error"`
	Status                   string        `json:"status"`
}

func (e *pesapalError) present() bool {
	return e != nil && (e.Code != "" || e.Message != "")
}

// rejectsNotificationID is true when an order was refused because of the
// notification id it carried.
func (e *pesapalError) rejectsNotificationID() bool {
	if !e.present() {
		return false
	}
	text := strings.ToLower(e.Code + " " + e.Message)
	return strings.Contains(text, "notification") || strings.Contains(text, "ipn")
}

func (e *pesapalError) String() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}
