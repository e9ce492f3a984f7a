package intasend_payment_processor

import (
	"context"
	"encoding/json"
	"fmt"

	"certschool.io/application/utils"
	"certschool.io/infrastructure/env"
	"certschool.io/infrastructure/logger"
	"certschool.io/infrastructure/network"
	payment_types "certschool.io/infrastructure/payments/types"
)

const providerName = "intasend"

const InitialStatus = "PENDING"

// IntasendPaymentProcessor talks to the card/mobile-money checkout API. It
// holds no per-call state.
type IntasendPaymentProcessor struct {
	Network     *network.NetworkController
	SecretKey   string
	PublicKey   string
	RedirectURL string
}

func NewIntasendPaymentProcessor(cfg *env.Config) *IntasendPaymentProcessor {
	return &IntasendPaymentProcessor{
		Network:     network.NewNetworkController(providerName, cfg.IntasendBaseURL, cfg.ProviderTimeout, cfg.ProviderRetries),
		SecretKey:   cfg.IntasendSecretKey,
		PublicKey:   cfg.IntasendPublicKey,
		RedirectURL: cfg.IntasendRedirectURL,
	}
}

func (intasend *IntasendPaymentProcessor) Initiate(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if req.APIRef == "" {
		req.APIRef = fmt.Sprintf("INV-%s", utils.GenerateUULDString())
	}
	response, statusCode, err := intasend.Network.Post(ctx, "/api/v1/checkout/", map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", intasend.SecretKey),
	}, checkoutPayload{
		PublicKey:   intasend.PublicKey,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Amount:      req.Amount.InexactFloat64(),
		Currency:    req.Currency,
		APIRef:      req.APIRef,
		RedirectURL: intasend.RedirectURL,
	})
	if response == nil || statusCode == nil {
		return nil, payment_types.UnavailableError(providerName, "checkout request failed", err)
	}
	if *statusCode == 401 || *statusCode == 403 {
		return nil, payment_types.AuthError(providerName, providerMessage(*response, "invalid credentials"), err)
	}
	if err != nil {
		return nil, payment_types.UnavailableError(providerName, "checkout request failed", err)
	}
	if *statusCode != 200 && *statusCode != 201 {
		msg := providerMessage(*response, "failed to create checkout")
		logger.Error("intasend rejected checkout", logger.LoggerOptions{
			Key:  "statusCode",
			Data: *statusCode,
		}, logger.LoggerOptions{
			Key:  "message",
			Data: msg,
		})
		return nil, payment_types.InitiationFailed(providerName, msg)
	}

	var checkout checkoutResponse
	if err = json.Unmarshal(*response, &checkout); err != nil {
		logger.Error("an error occured while trying to unmarshal intasend checkout response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, payment_types.InitiationFailed(providerName, "unreadable checkout response")
	}
	if checkout.URL == nil || *checkout.URL == "" || checkout.ID == "" {
		return nil, payment_types.InitiationFailed(providerName, providerMessage(*response, "checkout response missing url"))
	}
	raw := map[string]any{}
	_ = json.Unmarshal(*response, &raw)
	apiRef := checkout.APIRef
	if apiRef == "" {
		apiRef = req.APIRef
	}
	return &CheckoutResult{
		URL:       *checkout.URL,
		InvoiceID: checkout.ID,
		APIRef:    apiRef,
		Status:    InitialStatus,
		Raw:       raw,
	}, nil
}

func providerMessage(body []byte, fallback string) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err != nil {
		return fallback
	}
	if msg := e.message(); msg != "" {
		return msg
	}
	return fallback
}
