package dto

type EnrollDTO struct {
	CertificationID string `json:"certificationId" validate:"required"`
}

type CreateApplicationDTO struct {
	FirstName       string  `json:"firstName" validate:"required,name_spacial_char"`
	LastName        string  `json:"lastName" validate:"required,name_spacial_char"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           *string `json:"phone" validate:"omitempty,phone"`
	ProgramName     string  `json:"programName"`
	ProgramCategory *string `json:"programCategory"`
	CertificationID *string `json:"certificationId"`
}

type UpdateApplicationStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected payment_received"`
}

type UpdateEnrollmentPaymentStatusDTO struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=pending paid"`
}
