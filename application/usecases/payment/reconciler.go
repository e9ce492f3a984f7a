package payment_usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/utils"
	"certschool.io/entities"
	"certschool.io/infrastructure/logger"
	"certschool.io/infrastructure/metrics"
	paystack_payment_processor "certschool.io/infrastructure/payments/paystack"
	pesapal_payment_processor "certschool.io/infrastructure/payments/pesapal"
)

// payableStatuses are the application statuses a completed payment may move
// on to payment_received.
var payableStatuses = []entities.ApplicationStatus{
	entities.ApplicationPending,
	entities.ApplicationApproved,
}

// Reconciler applies the provider's authoritative view of a payment to the
// local records. It is safe to call repeatedly for the same reference.
type Reconciler struct {
	BankRedirect    BankRedirectGateway
	OrderTracking   OrderTrackingGateway
	Payments        PaymentStore
	Applications    ApplicationStore
	Notifier        CompletionNotifier
	ProviderTimeout time.Duration
}

func IsCompletedStatus(provider entities.PaymentProvider, status string) bool {
	switch provider {
	case entities.BankRedirectProvider:
		return status == paystack_payment_processor.StatusSuccess
	case entities.OrderTrackingProvider:
		return strings.EqualFold(status, pesapal_payment_processor.StatusCompleted)
	}
	return false
}

func (r *Reconciler) Reconcile(ctx context.Context, provider entities.PaymentProvider, reference string) (*ReconciledPayment, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, apperrors.MissingFields("reference")
	}
	if !provider.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Errorf("unsupported payment provider %q", provider))
	}
	if provider == entities.CardProvider {
		return nil, apperrors.ErrReconciliationUnsupported
	}

	start := time.Now()
	authoritative, err := r.fetch(ctx, provider, reference)
	metrics.ProviderLatency.WithLabelValues(string(provider), "fetch_status").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PaymentReconciliations.WithLabelValues(string(provider), metrics.OutcomeFailure).Inc()
		return nil, err
	}

	previous, err := r.Payments.FindByReference(ctx, provider, reference)
	if err != nil {
		metrics.PaymentReconciliations.WithLabelValues(string(provider), metrics.OutcomeFailure).Inc()
		return nil, &apperrors.PersistenceError{Op: "find payment", Reference: reference, Amount: authoritative.Amount, Err: err}
	}
	payment, err := r.Payments.UpsertByReference(ctx, authoritative)
	if err != nil {
		metrics.PaymentReconciliations.WithLabelValues(string(provider), metrics.OutcomeFailure).Inc()
		logger.Error("failed to upsert reconciled payment", logger.LoggerOptions{
			Key:  "provider",
			Data: provider,
		}, logger.LoggerOptions{
			Key:  "reference",
			Data: reference,
		}, logger.LoggerOptions{
			Key:  "amount",
			Data: authoritative.Amount,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, &apperrors.PersistenceError{Op: "upsert payment", Reference: reference, Amount: authoritative.Amount, Err: err}
	}

	result := &ReconciledPayment{
		Payment:   payment,
		Completed: IsCompletedStatus(provider, payment.Status),
	}
	if result.Completed && payment.ApplicationID != nil && *payment.ApplicationID != "" {
		transitioned, err := r.Applications.TransitionStatus(ctx, *payment.ApplicationID, payableStatuses, entities.ApplicationPaymentReceived)
		if err != nil {
			metrics.PaymentReconciliations.WithLabelValues(string(provider), metrics.OutcomeFailure).Inc()
			return nil, &apperrors.PersistenceError{Op: "mark application paid", Reference: reference, Amount: payment.Amount, Err: err}
		}
		result.ApplicationTransitioned = transitioned
		if !transitioned {
			logger.Info("application not moved to payment_received", logger.LoggerOptions{
				Key:  "applicationID",
				Data: *payment.ApplicationID,
			}, logger.LoggerOptions{
				Key:  "reference",
				Data: reference,
			})
		}
	}
	if result.Completed && r.Notifier != nil && (previous == nil || !IsCompletedStatus(provider, previous.Status)) {
		r.Notifier.PaymentCompleted(ctx, *payment)
	}
	metrics.PaymentReconciliations.WithLabelValues(string(provider), metrics.OutcomeSuccess).Inc()
	return result, nil
}

// fetch asks the provider for the current state and returns it as the
// payment document to upsert.
func (r *Reconciler) fetch(ctx context.Context, provider entities.PaymentProvider, reference string) (entities.Payment, error) {
	if r.ProviderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.ProviderTimeout)
		defer cancel()
	}
	switch provider {
	case entities.BankRedirectProvider:
		status, err := r.BankRedirect.FetchStatus(ctx, reference)
		if err != nil {
			return entities.Payment{}, err
		}
		payment := entities.Payment{
			Provider:  provider,
			Reference: reference,
			Amount:    utils.FromMinorUnits(status.AmountMinor).InexactFloat64(),
			Currency:  status.Currency,
			Status:    status.Status,
			Metadata:  status.Raw,
		}
		if meta, ok := status.Raw["metadata"].(map[string]any); ok {
			payment.ApplicationID = stringFrom(meta, "applicationId")
			payment.CertificationID = stringFrom(meta, "certificationId")
		}
		if customer, ok := status.Raw["customer"].(map[string]any); ok {
			if email, ok := customer["email"].(string); ok {
				payment.Email = email
			}
		}
		return payment, nil
	case entities.OrderTrackingProvider:
		status, err := r.OrderTracking.FetchStatus(ctx, reference)
		if err != nil {
			return entities.Payment{}, err
		}
		payment := entities.Payment{
			Provider:  provider,
			Reference: reference,
			Amount:    utils.RoundMoney(status.Amount).InexactFloat64(),
			Currency:  status.Currency,
			Status:    status.Status,
			Metadata:  status.Raw,
		}
		if status.MerchantReference != "" {
			payment.MerchantReference = utils.GetStringPointer(status.MerchantReference)
		}
		return payment, nil
	}
	return entities.Payment{}, apperrors.ErrReconciliationUnsupported
}

func stringFrom(m map[string]any, key string) *string {
	if v, ok := m[key].(string); ok && v != "" {
		return &v
	}
	return nil
}
