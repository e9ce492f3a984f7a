package entities

import (
	"time"

	"certschool.io/application/utils"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

type EnrollmentPaymentStatus string

const (
	EnrollmentPaymentPending EnrollmentPaymentStatus = "pending"
	EnrollmentPaymentPaid    EnrollmentPaymentStatus = "paid"
)

// UserEnrollment links a learner to a certification. A learner holds at
// most one enrollment with status active.
type UserEnrollment struct {
	UserID          string                  `bson:"userID" json:"userID"`
	CertificationID string                  `bson:"certificationID" json:"certificationID"`
	Status          EnrollmentStatus        `bson:"status" json:"status"`
	Progress        float64                 `bson:"progress" json:"progress"`
	PaymentStatus   EnrollmentPaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	StartedAt       *time.Time              `bson:"startedAt" json:"startedAt"`
	DueDate         *time.Time              `bson:"dueDate" json:"dueDate"`
	CompletedAt     *time.Time              `bson:"completedAt" json:"completedAt"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model UserEnrollment) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateUULDString()
		}
	}
	if model.PaymentStatus == "" {
		model.PaymentStatus = EnrollmentPaymentPending
	}
	model.UpdatedAt = now
	return &model
}
