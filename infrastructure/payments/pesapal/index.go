package pesapal_payment_processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"certschool.io/application/utils"
	"certschool.io/infrastructure/env"
	"certschool.io/infrastructure/logger"
	"certschool.io/infrastructure/network"
	payment_types "certschool.io/infrastructure/payments/types"
	"github.com/shopspring/decimal"
)

const providerName = "pesapal"

const (
	StatusCompleted = "COMPLETED"
	StatusPending   = "PENDING"

	ReferencePrefix = "ORD"

	ipnCachePrefix = "pesapal-ipn-"
	ipnCacheTTL    = 30 * 24 * time.Hour
)

// PesapalPaymentProcessor runs the token, IPN registration and order
// submission handshake. Tokens are requested fresh for every operation.
type PesapalPaymentProcessor struct {
	Network        *network.NetworkController
	ConsumerKey    string
	ConsumerSecret string
	IPNURL         string
	FallbackIPNID  string
	CallbackURL    string
	Cache          IPNCache
}

func NewPesapalPaymentProcessor(cfg *env.Config, cache IPNCache) *PesapalPaymentProcessor {
	return &PesapalPaymentProcessor{
		Network:        network.NewNetworkController(providerName, cfg.PesapalBaseURL, cfg.ProviderTimeout, cfg.ProviderRetries),
		ConsumerKey:    cfg.PesapalConsumerKey,
		ConsumerSecret: cfg.PesapalConsumerSecret,
		IPNURL:         cfg.PesapalIPNURL,
		FallbackIPNID:  cfg.PesapalIPNID,
		CallbackURL:    cfg.PesapalCallbackURL,
		Cache:          cache,
	}
}

func (pesapal *PesapalPaymentProcessor) RequestToken(ctx context.Context) (string, error) {
	response, statusCode, err := pesapal.Network.Post(ctx, "/api/Auth/RequestToken", nil, map[string]string{
		"consumer_key":    pesapal.ConsumerKey,
		"consumer_secret": pesapal.ConsumerSecret,
	})
	if response == nil || statusCode == nil || err != nil {
		return "", payment_types.UnavailableError(providerName, "failed to request token", err)
	}
	var payload tokenResponse
	if err = json.Unmarshal(*response, &payload); err != nil {
		return "", payment_types.AuthError(providerName, "unreadable token response", err)
	}
	if *statusCode != 200 || payload.Error.present() || payload.Token == "" {
		msg := payload.Error.String()
		if msg == "" {
			msg = "consumer credentials rejected"
		}
		logger.Error("pesapal token request rejected", logger.LoggerOptions{
			Key:  "message",
			Data: msg,
		})
		return "", payment_types.AuthError(providerName, msg, nil)
	}
	return payload.Token, nil
}

// RegisterIPN registers the notification url and returns its id. An explicit
// provider error fails; a successful call with an empty id falls back to
// the configured id.
func (pesapal *PesapalPaymentProcessor) RegisterIPN(ctx context.Context, token string, ipnURL string) (string, error) {
	if pesapal.Cache != nil {
		if cached := pesapal.Cache.FindOne(ctx, ipnCachePrefix+ipnURL); cached != nil && *cached != "" {
			return *cached, nil
		}
	}
	response, statusCode, err := pesapal.Network.Post(ctx, "/api/URLSetup/RegisterIPN", pesapal.headers(token), registerIPNPayload{
		URL:                 ipnURL,
		IPNNotificationType: "GET",
	})
	if response == nil || statusCode == nil || err != nil {
		return "", payment_types.IPNRegistrationFailed(providerName, "ipn registration request failed", err)
	}
	var payload registerIPNResponse
	if err = json.Unmarshal(*response, &payload); err != nil {
		return "", payment_types.IPNRegistrationFailed(providerName, "unreadable ipn registration response", err)
	}
	if *statusCode != 200 || payload.Error.present() {
		msg := payload.Error.String()
		if msg == "" {
			msg = fmt.Sprintf("ipn registration returned %d", *statusCode)
		}
		return "", payment_types.IPNRegistrationFailed(providerName, msg, nil)
	}
	if payload.IPNID == "" {
		if pesapal.FallbackIPNID == "" {
			logger.Error("pesapal returned an empty ipn id and no PESAPAL_IPN_ID is configured", logger.LoggerOptions{
				Key:  "url",
				Data: ipnURL,
			})
			return "", payment_types.IPNRegistrationFailed(providerName, "no usable ipn id", nil)
		}
		logger.Warning("pesapal returned an empty ipn id. using configured id", logger.LoggerOptions{
			Key:  "url",
			Data: ipnURL,
		})
		return pesapal.FallbackIPNID, nil
	}
	if pesapal.Cache != nil {
		pesapal.Cache.CreateEntry(ctx, ipnCachePrefix+ipnURL, payload.IPNID, ipnCacheTTL)
	}
	return payload.IPNID, nil
}

func (pesapal *PesapalPaymentProcessor) SubmitOrder(ctx context.Context, token string, ipnID string, req OrderRequest) (*OrderResult, error) {
	response, statusCode, err := pesapal.Network.Post(ctx, "/api/Transactions/SubmitOrderRequest", pesapal.headers(token), submitOrderPayload{
		ID:             req.MerchantReference,
		Currency:       req.Currency,
		Amount:         req.Amount.InexactFloat64(),
		Description:    req.Description,
		CallbackURL:    pesapal.CallbackURL,
		NotificationID: ipnID,
		BillingAddress: billingAddress{
			EmailAddress: req.Email,
			PhoneNumber:  req.PhoneNumber,
			CountryCode:  req.CountryCode,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
		},
	})
	if response == nil || statusCode == nil || err != nil {
		return nil, payment_types.UnavailableError(providerName, "order submission failed", err)
	}
	var payload submitOrderResponse
	if err = json.Unmarshal(*response, &payload); err != nil {
		return nil, payment_types.InitiationFailed(providerName, "unreadable order response")
	}
	if *statusCode == 401 {
		return nil, payment_types.AuthError(providerName, "token rejected", nil)
	}
	if *statusCode != 200 || payload.Error.present() || payload.RedirectURL == "" {
		msg := payload.Error.String()
		if msg == "" {
			msg = "order submission rejected"
		}
		logger.Error("pesapal rejected order", logger.LoggerOptions{
			Key:  "merchantReference",
			Data: req.MerchantReference,
		}, logger.LoggerOptions{
			Key:  "message",
			Data: msg,
		})
		if pesapal.Cache != nil && payload.Error.rejectsNotificationID() {
			// the next order registers the url again
			pesapal.Cache.DeleteOne(ctx, ipnCachePrefix+pesapal.IPNURL)
		}
		return nil, payment_types.InitiationFailed(providerName, msg)
	}
	merchantReference := payload.MerchantReference
	if merchantReference == "" {
		merchantReference = req.MerchantReference
	}
	return &OrderResult{
		OrderTrackingID:   payload.OrderTrackingID,
		MerchantReference: merchantReference,
		RedirectURL:       payload.RedirectURL,
		IPNID:             ipnID,
	}, nil
}

// Initiate runs token -> IPN registration -> order submission.
func (pesapal *PesapalPaymentProcessor) Initiate(ctx context.Context, req OrderRequest) (*OrderResult, error) {
	if req.MerchantReference == "" {
		req.MerchantReference = utils.GenerateReference(ReferencePrefix, 6, utils.Now())
	}
	token, err := pesapal.RequestToken(ctx)
	if err != nil {
		return nil, err
	}
	ipnID, err := pesapal.RegisterIPN(ctx, token, pesapal.IPNURL)
	if err != nil {
		logger.Error("pesapal ipn registration failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return pesapal.SubmitOrder(ctx, token, ipnID, req)
}

// FetchStatus requests a new token and reads the authoritative status of an
// order.
func (pesapal *PesapalPaymentProcessor) FetchStatus(ctx context.Context, orderTrackingID string) (*TransactionStatus, error) {
	if orderTrackingID == "" {
		return nil, payment_types.ValidationError(providerName, "order tracking id is required")
	}
	token, err := pesapal.RequestToken(ctx)
	if err != nil {
		return nil, err
	}
	response, statusCode, err := pesapal.Network.Get(ctx, "/api/Transactions/GetTransactionStatus", pesapal.headers(token), map[string]string{
		"orderTrackingId": orderTrackingID,
	})
	if response == nil || statusCode == nil || err != nil {
		return nil, payment_types.UnavailableError(providerName, "failed to fetch transaction status", err)
	}
	var payload transactionStatusResponse
	if err = json.Unmarshal(*response, &payload); err != nil {
		return nil, payment_types.UnavailableError(providerName, "unreadable transaction status", err)
	}
	if *statusCode == 401 {
		return nil, payment_types.AuthError(providerName, "token rejected", nil)
	}
	if *statusCode != 200 || payload.Error.present() {
		msg := payload.Error.String()
		if msg == "" {
			msg = "transaction status unavailable"
		}
		return nil, payment_types.ValidationError(providerName, msg)
	}
	raw := map[string]any{}
	_ = json.Unmarshal(*response, &raw)
	return &TransactionStatus{
		OrderTrackingID:   orderTrackingID,
		MerchantReference: payload.MerchantReference,
		Status:            payload.PaymentStatusDescription,
		StatusCode:        payload.StatusCode,
		Amount:            decimal.NewFromFloat(payload.Amount),
		Currency:          payload.Currency,
		PaymentMethod:     payload.PaymentMethod,
		ConfirmationCode:  payload.ConfirmationCode,
		Raw:               raw,
	}, nil
}

func (pesapal *PesapalPaymentProcessor) headers(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
