package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"certschool.io/infrastructure/logger"
	payment_types "certschool.io/infrastructure/payments/types"
	server_response "certschool.io/infrastructure/serverResponse"
)

const genericFailureMessage = "Something went wrong on our end. Please try again later."

func NotFoundError(ctx interface{}, message string) {
	server_response.Responder.RespondWithError(ctx, http.StatusNotFound, "NotFound", message, nil)
}

func ValidationFailedError(ctx interface{}, errMessages *[]error) {
	server_response.Responder.RespondWithError(ctx, http.StatusUnprocessableEntity, "ValidationError", "Payload validation failed", *errMessages)
}

func EntityAlreadyExistsError(ctx interface{}, errName string, message string) {
	server_response.Responder.RespondWithError(ctx, http.StatusConflict, errName, message, nil)
}

func AuthenticationError(ctx interface{}, message string) {
	server_response.Responder.RespondWithError(ctx, http.StatusUnauthorized, "Unauthenticated", message, nil)
}

func ForbiddenError(ctx interface{}, errName string, message string) {
	server_response.Responder.RespondWithError(ctx, http.StatusForbidden, errName, message, nil)
}

func ExternalDependencyError(ctx interface{}, serviceName string, err error) {
	logger.Error(fmt.Sprintf("error with %s", serviceName), logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.RespondWithError(ctx, http.StatusServiceUnavailable, "ProviderUnavailable",
		"The payment service is temporarily unavailable. Please try again shortly.", nil)
}

func ErrorProcessingPayload(ctx interface{}) {
	server_response.Responder.RespondWithError(ctx, http.StatusBadRequest, "ValidationError", "Abnormal payload passed", nil)
}

func FatalServerError(ctx interface{}, err error) {
	logger.Error("fatal server error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.RespondWithError(ctx, http.StatusInternalServerError, "InternalError", genericFailureMessage, nil)
}

func ClientError(ctx interface{}, errName string, msg string, errs []error) {
	server_response.Responder.RespondWithError(ctx, http.StatusBadRequest, errName, msg, errs)
}

// HandleError maps a use case error onto its HTTP response.
func HandleError(ctx interface{}, err error) {
	var validationErr *ValidationError
	var providerErr *payment_types.ProviderError
	var persistenceErr *PersistenceError
	switch {
	case errors.As(err, &validationErr):
		ValidationFailedError(ctx, &validationErr.Errs)
	case errors.Is(err, ErrUnauthenticated):
		AuthenticationError(ctx, err.Error())
	case errors.Is(err, ErrForbidden):
		ForbiddenError(ctx, "Forbidden", err.Error())
	case errors.Is(err, ErrActiveEnrollmentExists):
		EntityAlreadyExistsError(ctx, "ActiveEnrollmentExists", err.Error())
	case errors.Is(err, ErrAlreadyEnrolledInTarget):
		EntityAlreadyExistsError(ctx, "AlreadyEnrolledInTarget", err.Error())
	case errors.Is(err, ErrNoApprovedApplication):
		ForbiddenError(ctx, "NoApprovedApplication", err.Error())
	case errors.Is(err, ErrInvalidStatusTransition):
		EntityAlreadyExistsError(ctx, "InvalidStatusTransition", err.Error())
	case errors.Is(err, ErrNotFound):
		NotFoundError(ctx, err.Error())
	case errors.Is(err, ErrReconciliationUnsupported):
		ClientError(ctx, "ReconciliationUnsupported", err.Error(), nil)
	case errors.As(err, &providerErr):
		handleProviderError(ctx, providerErr)
	case errors.As(err, &persistenceErr):
		FatalServerError(ctx, err)
	default:
		FatalServerError(ctx, err)
	}
}

func handleProviderError(ctx interface{}, err *payment_types.ProviderError) {
	switch err.Kind {
	case payment_types.ValidationErrorKind:
		server_response.Responder.RespondWithError(ctx, http.StatusBadRequest, "ProviderValidationError", err.Message, nil)
	case payment_types.InitiationFailedKind:
		server_response.Responder.RespondWithError(ctx, http.StatusBadGateway, "PaymentInitiationFailed", err.Message, nil)
	case payment_types.IPNRegistrationErrorKind:
		server_response.Responder.RespondWithError(ctx, http.StatusBadGateway, "IPNRegistrationFailed", err.Message, nil)
	default:
		ExternalDependencyError(ctx, err.Provider, err)
	}
}
