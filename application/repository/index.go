package repository

import (
	"errors"
	"time"
)

var (
	// ErrActiveEnrollmentConflict is returned when the storage layer rejects
	// a second active enrollment for the same learner.
	ErrActiveEnrollmentConflict = errors.New("learner already has an active enrollment")
	// ErrEnrollmentPairConflict is returned when the learner is already
	// enrolled in the certification.
	ErrEnrollmentPairConflict = errors.New("learner already enrolled in certification")
	// ErrPaymentExists is returned when a payment with the same provider
	// reference is already stored.
	ErrPaymentExists = errors.New("payment reference already recorded")
)

// Timeout bounds every data store call made through the repositories below.
// It is set once at start-up.
var Timeout = 15 * time.Second
