package entities

import (
	"time"

	"certschool.io/application/utils"
)

type ApplicationStatus string

const (
	ApplicationPending         ApplicationStatus = "pending"
	ApplicationApproved        ApplicationStatus = "approved"
	ApplicationRejected        ApplicationStatus = "rejected"
	ApplicationPaymentReceived ApplicationStatus = "payment_received"
)

// applicationTransitions lists the statuses each status may move to.
// rejected and payment_received are terminal.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:  {ApplicationApproved, ApplicationRejected, ApplicationPaymentReceived},
	ApplicationApproved: {ApplicationPaymentReceived},
}

func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationRejected || s == ApplicationPaymentReceived
}

func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s.IsTerminal() {
		return false
	}
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Application is one admission request made through the intake form.
type Application struct {
	UserID          string            `bson:"userID" json:"userID"`
	FirstName       string            `bson:"firstName" json:"firstName"`
	LastName        string            `bson:"lastName" json:"lastName"`
	Email           string            `bson:"email" json:"email"`
	Phone           *string           `bson:"phone" json:"phone"`
	ProgramName     string            `bson:"programName" json:"programName"`
	ProgramCategory *string           `bson:"programCategory" json:"programCategory"`
	CertificationID *string           `bson:"certificationID" json:"certificationID"`
	Status          ApplicationStatus `bson:"status" json:"status"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model Application) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateUULDString()
		}
	}
	if model.Status == "" {
		model.Status = ApplicationPending
	}
	model.UpdatedAt = now
	return &model
}
