package enrollment_usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/repository"
	"certschool.io/entities"
	"certschool.io/infrastructure/logger"
	"certschool.io/infrastructure/metrics"
)

type EnrollmentStore interface {
	CountActive(ctx context.Context, userID string) (int64, error)
	FindForCertification(ctx context.Context, userID string, certificationID string) (*entities.UserEnrollment, error)
	Insert(ctx context.Context, enrollment entities.UserEnrollment) (*entities.UserEnrollment, error)
}

type ApprovedApplicationFinder interface {
	FindApproved(ctx context.Context, userID string, certificationID string) (*entities.Application, error)
}

// AdmissionController creates enrollments. A learner holds at most one
// active enrollment and needs an approved application for the target.
type AdmissionController struct {
	Enrollments  EnrollmentStore
	Applications ApprovedApplicationFinder
	Now          func() time.Time
}

// Enroll runs the admission checks in order, stopping at the first failure.
// The unique index on active enrollments catches the concurrent case the
// reads cannot.
func (a *AdmissionController) Enroll(ctx context.Context, learnerID string, certificationID string) (*entities.UserEnrollment, error) {
	enrollment, err := a.enroll(ctx, learnerID, certificationID)
	if err != nil {
		metrics.EnrollmentAttempts.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}
	metrics.EnrollmentAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return enrollment, nil
}

func (a *AdmissionController) enroll(ctx context.Context, learnerID string, certificationID string) (*entities.UserEnrollment, error) {
	if strings.TrimSpace(learnerID) == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if strings.TrimSpace(certificationID) == "" {
		return nil, apperrors.MissingFields("certificationId")
	}

	active, err := a.Enrollments.CountActive(ctx, learnerID)
	if err != nil {
		return nil, apperrors.Persistence("count active enrollments", err)
	}
	if active != 0 {
		return nil, apperrors.ErrActiveEnrollmentExists
	}

	application, err := a.Applications.FindApproved(ctx, learnerID, certificationID)
	if err != nil {
		return nil, apperrors.Persistence("find approved application", err)
	}
	if application == nil {
		return nil, apperrors.ErrNoApprovedApplication
	}

	existing, err := a.Enrollments.FindForCertification(ctx, learnerID, certificationID)
	if err != nil {
		return nil, apperrors.Persistence("find enrollment", err)
	}
	if existing != nil {
		return nil, apperrors.ErrAlreadyEnrolledInTarget
	}

	now := a.now()
	created, err := a.Enrollments.Insert(ctx, entities.UserEnrollment{
		UserID:          learnerID,
		CertificationID: certificationID,
		Status:          entities.EnrollmentActive,
		Progress:        0,
		PaymentStatus:   entities.EnrollmentPaymentPending,
		StartedAt:       &now,
	})
	switch {
	case errors.Is(err, repository.ErrActiveEnrollmentConflict):
		logger.Warning("concurrent enrollment rejected by active enrollment index", logger.LoggerOptions{
			Key:  "userID",
			Data: learnerID,
		})
		return nil, apperrors.ErrActiveEnrollmentExists
	case errors.Is(err, repository.ErrEnrollmentPairConflict):
		return nil, apperrors.ErrAlreadyEnrolledInTarget
	case err != nil:
		logger.Error("failed to create enrollment", logger.LoggerOptions{
			Key:  "userID",
			Data: learnerID,
		}, logger.LoggerOptions{
			Key:  "certificationID",
			Data: certificationID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, apperrors.Persistence("insert enrollment", err)
	}
	return created, nil
}

func (a *AdmissionController) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func outcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrActiveEnrollmentExists):
		return "active_enrollment_exists"
	case errors.Is(err, apperrors.ErrNoApprovedApplication):
		return "no_approved_application"
	case errors.Is(err, apperrors.ErrAlreadyEnrolledInTarget):
		return "already_enrolled"
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return "unauthenticated"
	}
	return metrics.OutcomeFailure
}
