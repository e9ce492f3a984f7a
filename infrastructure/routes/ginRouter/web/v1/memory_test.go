package routev1

import (
	"context"
	"sync"

	"certschool.io/application/repository"
	"certschool.io/entities"
	mq_types "certschool.io/infrastructure/message_queue/types"
)

type memoryStore struct {
	mu             sync.Mutex
	payments       map[string]entities.Payment
	applications   map[string]entities.Application
	enrollments    map[string]entities.UserEnrollment
	certifications map[string]entities.Certification
	admins         map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		payments:       map[string]entities.Payment{},
		applications:   map[string]entities.Application{},
		enrollments:    map[string]entities.UserEnrollment{},
		certifications: map[string]entities.Certification{},
		admins:         map[string]bool{},
	}
}

type paymentStore struct{ *memoryStore }

func (s paymentStore) Insert(ctx context.Context, payment entities.Payment) (*entities.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := string(payment.Provider) + ":" + payment.Reference
	if _, ok := s.payments[key]; ok {
		return nil, repository.ErrPaymentExists
	}
	row := *payment.ParseModel().(*entities.Payment)
	s.payments[key] = row
	return &row, nil
}

func (s paymentStore) FindByReference(ctx context.Context, provider entities.PaymentProvider, reference string) (*entities.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.payments[string(provider)+":"+reference]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s paymentStore) UpsertByReference(ctx context.Context, payment entities.Payment) (*entities.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := string(payment.Provider) + ":" + payment.Reference
	row, ok := s.payments[key]
	if !ok {
		row = *payment.ParseModel().(*entities.Payment)
	} else {
		row.Status = payment.Status
		row.Amount = payment.Amount
		row.Currency = payment.Currency
		row.Metadata = payment.Metadata
	}
	s.payments[key] = row
	return &row, nil
}

type applicationStore struct{ *memoryStore }

func (s applicationStore) CreateOne(ctx context.Context, payload entities.Application) (*entities.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *payload.ParseModel().(*entities.Application)
	s.applications[row.ID] = row
	return &row, nil
}

func (s applicationStore) FindByID(ctx context.Context, id string) (*entities.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.applications[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s applicationStore) FindApproved(ctx context.Context, userID string, certificationID string) (*entities.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.applications {
		if row.UserID == userID && row.CertificationID != nil && *row.CertificationID == certificationID && row.Status == entities.ApplicationApproved {
			return &row, nil
		}
	}
	return nil, nil
}

func (s applicationStore) TransitionStatus(ctx context.Context, id string, from []entities.ApplicationStatus, next entities.ApplicationStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.applications[id]
	if !ok {
		return false, nil
	}
	for _, status := range from {
		if row.Status == status {
			row.Status = next
			s.applications[id] = row
			return true, nil
		}
	}
	return false, nil
}

type enrollmentStore struct{ *memoryStore }

func (s enrollmentStore) CountActive(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, row := range s.enrollments {
		if row.UserID == userID && row.Status == entities.EnrollmentActive {
			count++
		}
	}
	return count, nil
}

func (s enrollmentStore) FindForCertification(ctx context.Context, userID string, certificationID string) (*entities.UserEnrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.enrollments {
		if row.UserID == userID && row.CertificationID == certificationID {
			return &row, nil
		}
	}
	return nil, nil
}

func (s enrollmentStore) Insert(ctx context.Context, enrollment entities.UserEnrollment) (*entities.UserEnrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *enrollment.ParseModel().(*entities.UserEnrollment)
	s.enrollments[row.ID] = row
	return &row, nil
}

func (s enrollmentStore) FindByUser(ctx context.Context, userID string) ([]entities.UserEnrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := []entities.UserEnrollment{}
	for _, row := range s.enrollments {
		if row.UserID == userID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s enrollmentStore) FindByID(ctx context.Context, id string) (*entities.UserEnrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.enrollments[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s enrollmentStore) SetPaymentStatus(ctx context.Context, id string, status entities.EnrollmentPaymentStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.enrollments[id]
	if !ok {
		return false, nil
	}
	row.PaymentStatus = status
	s.enrollments[id] = row
	return true, nil
}

type certificationStore struct{ *memoryStore }

func (s certificationStore) FindByIDs(ctx context.Context, ids []string) ([]entities.Certification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := []entities.Certification{}
	for _, id := range ids {
		if row, ok := s.certifications[id]; ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s certificationStore) FindByID(ctx context.Context, id string) (*entities.Certification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.certifications[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s certificationStore) FindByTitle(ctx context.Context, title string) (*entities.Certification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.certifications {
		if row.Title == title {
			return &row, nil
		}
	}
	return nil, nil
}

type adminStore struct{ *memoryStore }

func (s adminStore) IsAdmin(ctx context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admins[userID], nil
}

type recordingQueue struct {
	mu    sync.Mutex
	tasks []mq_types.QueueTask
}

func (q *recordingQueue) Start()    {}
func (q *recordingQueue) Shutdown() {}

func (q *recordingQueue) Enqueue(task mq_types.QueueTask) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *recordingQueue) named(name mq_types.Queues) []mq_types.QueueTask {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := []mq_types.QueueTask{}
	for _, task := range q.tasks {
		if task.Name == name {
			out = append(out, task)
		}
	}
	return out
}
