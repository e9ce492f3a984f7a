package controller

import (
	"errors"
	"net/http"
	"strings"

	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/controller/dto"
	"certschool.io/application/interfaces"
	payment_usecases "certschool.io/application/usecases/payment"
	"certschool.io/entities"
	"certschool.io/infrastructure/logger"
	payment_types "certschool.io/infrastructure/payments/types"
	server_response "certschool.io/infrastructure/serverResponse"
	"certschool.io/infrastructure/validator"
)

func InitiateCardPayment(ctx *interfaces.ApplicationContext[dto.InitiatePaymentDTO]) {
	result, ok := initiatePayment(ctx, entities.CardProvider)
	if !ok {
		return
	}
	server_response.Responder.RespondWithData(ctx.Ctx, http.StatusOK, map[string]any{
		"authorization_url": result.RedirectURL,
		"invoice_id":        result.ProviderReference,
	})
}

func InitiatePaystackPayment(ctx *interfaces.ApplicationContext[dto.InitiatePaymentDTO]) {
	result, ok := initiatePayment(ctx, entities.BankRedirectProvider)
	if !ok {
		return
	}
	server_response.Responder.RespondWithData(ctx.Ctx, http.StatusOK, map[string]any{
		"authorization_url": result.RedirectURL,
		"reference":         result.ProviderReference,
	})
}

func InitiateOrderTrackingPayment(ctx *interfaces.ApplicationContext[dto.InitiatePaymentDTO]) {
	result, ok := initiatePayment(ctx, entities.OrderTrackingProvider)
	if !ok {
		return
	}
	server_response.Responder.RespondWithData(ctx.Ctx, http.StatusOK, map[string]any{
		"authorization_url":  result.RedirectURL,
		"order_tracking_id":  result.ProviderReference,
		"merchant_reference": result.MerchantReference,
	})
}

func initiatePayment(ctx *interfaces.ApplicationContext[dto.InitiatePaymentDTO], provider entities.PaymentProvider) (*payment_usecases.InitiatePaymentResult, bool) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return nil, false
	}
	result, err := Services.Orchestrator.InitiatePayment(ctx.Ctx, provider, payment_usecases.InitiatePaymentRequest{
		Email:           ctx.Body.Email,
		Phone:           ctx.Body.PhoneNumber,
		Amount:          ctx.Body.Amount,
		Currency:        ctx.Body.Currency,
		ApplicationID:   ctx.Body.ApplicationID,
		CertificationID: ctx.Body.CertificationID,
		ProgramName:     ctx.Body.ProgramName,
		FirstName:       ctx.Body.FirstName,
		LastName:        ctx.Body.LastName,
		CountryCode:     ctx.Body.CountryCode,
	})
	if err != nil {
		apperrors.HandleError(ctx.Ctx, err)
		return nil, false
	}
	return result, true
}

// VerifyPayment reconciles the reference the payer was redirected back
// with. OrderTrackingId selects the order-tracking provider; reference or
// trxref selects the bank-redirect provider.
func VerifyPayment(ctx *interfaces.ApplicationContext[dto.VerifyPaymentDTO]) {
	provider, reference := verifyTarget(ctx.Body)
	if reference == "" {
		apperrors.ValidationFailedError(ctx.Ctx, &[]error{errors.New("reference or OrderTrackingId is required")})
		return
	}
	reconciled, err := Services.Reconciler.Reconcile(ctx.Ctx, provider, reference)
	if err != nil {
		if stillProcessing(err) {
			logger.Warning("reconciliation deferred during verify", logger.LoggerOptions{
				Key:  "reference",
				Data: reference,
			}, logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			server_response.Responder.RespondWithData(ctx.Ctx, http.StatusOK, map[string]any{
				"status": "processing",
			})
			return
		}
		apperrors.HandleError(ctx.Ctx, err)
		return
	}
	server_response.Responder.RespondWithData(ctx.Ctx, http.StatusOK, verifiedPayment(reconciled))
}

// VerifyOrderTrackingPayment only accepts the order-tracking query shape.
func VerifyOrderTrackingPayment(ctx *interfaces.ApplicationContext[dto.VerifyPaymentDTO]) {
	ctx.Body.Reference = ""
	ctx.Body.TrxRef = ""
	VerifyPayment(ctx)
}

// stillProcessing is true for failures that a later reconciliation can
// recover from. Explicit provider rejections are surfaced as errors.
func stillProcessing(err error) bool {
	var persistenceErr *apperrors.PersistenceError
	return payment_types.IsRetryable(err) || errors.As(err, &persistenceErr)
}

func verifyTarget(body *dto.VerifyPaymentDTO) (entities.PaymentProvider, string) {
	if id := strings.TrimSpace(body.OrderTrackingID); id != "" {
		return entities.OrderTrackingProvider, id
	}
	if ref := strings.TrimSpace(body.Reference); ref != "" {
		return entities.BankRedirectProvider, ref
	}
	return entities.BankRedirectProvider, strings.TrimSpace(body.TrxRef)
}

func verifiedPayment(reconciled *payment_usecases.ReconciledPayment) map[string]any {
	payment := reconciled.Payment
	return map[string]any{
		"status":                  payment.Status,
		"provider":                payment.Provider,
		"reference":               payment.Reference,
		"merchant_reference":      payment.MerchantReference,
		"amount":                  payment.Amount,
		"currency":                payment.Currency,
		"completed":               reconciled.Completed,
		"applicationTransitioned": reconciled.ApplicationTransitioned,
		"metadata":                payment.Metadata,
	}
}
