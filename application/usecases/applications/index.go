package application_usecases

import (
	"context"
	"fmt"
	"strings"

	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/utils"
	"certschool.io/entities"
	"certschool.io/infrastructure/logger"
)

type ApplicationStore interface {
	CreateOne(ctx context.Context, payload entities.Application) (*entities.Application, error)
	FindByID(ctx context.Context, id string) (*entities.Application, error)
	TransitionStatus(ctx context.Context, id string, from []entities.ApplicationStatus, next entities.ApplicationStatus) (bool, error)
}

type CertificationFinder interface {
	FindByID(ctx context.Context, id string) (*entities.Certification, error)
	FindByTitle(ctx context.Context, title string) (*entities.Certification, error)
}

type EnrollmentPaymentStore interface {
	FindByID(ctx context.Context, id string) (*entities.UserEnrollment, error)
	SetPaymentStatus(ctx context.Context, id string, status entities.EnrollmentPaymentStatus) (bool, error)
}

type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type CreateApplicationInput struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           *string
	ProgramName     string
	ProgramCategory *string
	CertificationID *string
}

type ApplicationService struct {
	Applications   ApplicationStore
	Certifications CertificationFinder
	Enrollments    EnrollmentPaymentStore
	Admins         AdminChecker
}

// CreateApplication records a new pending application. When no
// certification id is given it is looked up from the program name.
func (s *ApplicationService) CreateApplication(ctx context.Context, learnerID string, input CreateApplicationInput) (*entities.Application, error) {
	if strings.TrimSpace(learnerID) == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if input.CertificationID != nil && *input.CertificationID != "" {
		certification, err := s.Certifications.FindByID(ctx, *input.CertificationID)
		if err != nil {
			return nil, apperrors.Persistence("find certification", err)
		}
		if certification == nil {
			return nil, apperrors.NewValidationError(fmt.Errorf("certification %s does not exist", *input.CertificationID))
		}
		if input.ProgramName == "" {
			input.ProgramName = certification.Title
		}
	} else if input.ProgramName != "" {
		certification, err := s.Certifications.FindByTitle(ctx, input.ProgramName)
		if err != nil {
			return nil, apperrors.Persistence("find certification", err)
		}
		if certification != nil {
			input.CertificationID = utils.GetStringPointer(certification.ID)
		}
	}
	if input.ProgramName == "" {
		return nil, apperrors.MissingFields("programName")
	}

	application, err := s.Applications.CreateOne(ctx, entities.Application{
		UserID:          learnerID,
		FirstName:       strings.TrimSpace(input.FirstName),
		LastName:        strings.TrimSpace(input.LastName),
		Email:           strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:           input.Phone,
		ProgramName:     input.ProgramName,
		ProgramCategory: input.ProgramCategory,
		CertificationID: input.CertificationID,
		Status:          entities.ApplicationPending,
	})
	if err != nil {
		logger.Error("an error occured while creating application", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: learnerID,
		})
		return nil, apperrors.Persistence("create application", err)
	}
	return application, nil
}

// UpdateStatus moves an application along the transition table. The write
// is conditional on the status read, so a concurrent change makes it fail
// with ErrInvalidStatusTransition instead of overwriting.
func (s *ApplicationService) UpdateStatus(ctx context.Context, adminID string, id string, next entities.ApplicationStatus) (*entities.Application, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	application, err := s.Applications.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Persistence("find application", err)
	}
	if application == nil {
		return nil, apperrors.ErrNotFound
	}
	if !application.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidStatusTransition, application.Status, next)
	}
	changed, err := s.Applications.TransitionStatus(ctx, id, []entities.ApplicationStatus{application.Status}, next)
	if err != nil {
		return nil, apperrors.Persistence("update application status", err)
	}
	if !changed {
		return nil, fmt.Errorf("%w: application changed concurrently", apperrors.ErrInvalidStatusTransition)
	}
	logger.Info("application status updated", logger.LoggerOptions{
		Key:  "applicationID",
		Data: id,
	}, logger.LoggerOptions{
		Key:  "status",
		Data: next,
	}, logger.LoggerOptions{
		Key:  "adminID",
		Data: adminID,
	})
	application.Status = next
	return application, nil
}

// SetEnrollmentPaymentStatus is the administrative path for
// UserEnrollment.paymentStatus. Reconciled payments do not touch it.
func (s *ApplicationService) SetEnrollmentPaymentStatus(ctx context.Context, adminID string, enrollmentID string, status entities.EnrollmentPaymentStatus) (*entities.UserEnrollment, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if status != entities.EnrollmentPaymentPending && status != entities.EnrollmentPaymentPaid {
		return nil, apperrors.NewValidationError(fmt.Errorf("paymentStatus must be one of [pending paid]"))
	}
	found, err := s.Enrollments.SetPaymentStatus(ctx, enrollmentID, status)
	if err != nil {
		return nil, apperrors.Persistence("update enrollment payment status", err)
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}
	enrollment, err := s.Enrollments.FindByID(ctx, enrollmentID)
	if err != nil {
		return nil, apperrors.Persistence("find enrollment", err)
	}
	if enrollment == nil {
		return nil, apperrors.ErrNotFound
	}
	return enrollment, nil
}

func (s *ApplicationService) requireAdmin(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperrors.ErrUnauthenticated
	}
	isAdmin, err := s.Admins.IsAdmin(ctx, userID)
	if err != nil {
		return apperrors.Persistence("check admin", err)
	}
	if !isAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}
