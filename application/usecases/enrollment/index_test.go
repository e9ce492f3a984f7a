package enrollment_usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/repository"
	"certschool.io/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryEnrollments enforces the same unique constraints as the
// user_enrollments indexes.
type memoryEnrollments struct {
	mu        sync.Mutex
	rows      []entities.UserEnrollment
	readDelay time.Duration
	calls     []string
}

func (m *memoryEnrollments) CountActive(ctx context.Context, userID string) (int64, error) {
	m.record("countActive")
	time.Sleep(m.readDelay)
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, row := range m.rows {
		if row.UserID == userID && row.Status == entities.EnrollmentActive {
			n++
		}
	}
	return n, nil
}

func (m *memoryEnrollments) FindForCertification(ctx context.Context, userID string, certificationID string) (*entities.UserEnrollment, error) {
	m.record("findForCertification")
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.UserID == userID && row.CertificationID == certificationID {
			r := row
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memoryEnrollments) Insert(ctx context.Context, enrollment entities.UserEnrollment) (*entities.UserEnrollment, error) {
	m.record("insert")
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.UserID == enrollment.UserID && row.Status == entities.EnrollmentActive && enrollment.Status == entities.EnrollmentActive {
			return nil, repository.ErrActiveEnrollmentConflict
		}
		if row.UserID == enrollment.UserID && row.CertificationID == enrollment.CertificationID {
			return nil, repository.ErrEnrollmentPairConflict
		}
	}
	created := *enrollment.ParseModel().(*entities.UserEnrollment)
	m.rows = append(m.rows, created)
	return &created, nil
}

func (m *memoryEnrollments) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *memoryEnrollments) activeCount(userID string) int {
	n, _ := m.CountActive(context.Background(), userID)
	return int(n)
}

type memoryApplications struct {
	mu       sync.Mutex
	approved map[string]bool
	calls    int
}

func (m *memoryApplications) FindApproved(ctx context.Context, userID string, certificationID string) (*entities.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if !m.approved[userID+"/"+certificationID] {
		return nil, nil
	}
	return &entities.Application{ID: "app-" + certificationID, UserID: userID, Status: entities.ApplicationApproved}, nil
}

func newController(enrollments *memoryEnrollments, approved ...string) (*AdmissionController, *memoryApplications) {
	apps := &memoryApplications{approved: map[string]bool{}}
	for _, key := range approved {
		apps.approved[key] = true
	}
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &AdmissionController{
		Enrollments:  enrollments,
		Applications: apps,
		Now:          func() time.Time { return fixed },
	}, apps
}

func TestEnrollHappyPath(t *testing.T) {
	store := &memoryEnrollments{}
	controller, _ := newController(store, "U1/C1")

	enrollment, err := controller.Enroll(context.Background(), "U1", "C1")
	require.NoError(t, err)
	assert.Equal(t, entities.EnrollmentActive, enrollment.Status)
	assert.Equal(t, float64(0), enrollment.Progress)
	assert.Equal(t, entities.EnrollmentPaymentPending, enrollment.PaymentStatus)
	require.NotNil(t, enrollment.StartedAt)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), *enrollment.StartedAt)
	assert.NotEmpty(t, enrollment.ID)
}

func TestEnrollUnauthenticated(t *testing.T) {
	store := &memoryEnrollments{}
	controller, _ := newController(store, "U1/C1")

	_, err := controller.Enroll(context.Background(), "", "C1")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.Empty(t, store.calls)
}

func TestEnrollBlockedByActiveEnrollmentElsewhere(t *testing.T) {
	store := &memoryEnrollments{}
	controller, apps := newController(store, "U1/C1", "U1/C2")
	_, err := controller.Enroll(context.Background(), "U1", "C1")
	require.NoError(t, err)
	apps.calls = 0

	_, err = controller.Enroll(context.Background(), "U1", "C2")
	assert.ErrorIs(t, err, apperrors.ErrActiveEnrollmentExists)
	assert.Equal(t, 0, apps.calls, "approved application lookup runs after the active check")
}

func TestEnrollRequiresApprovedApplication(t *testing.T) {
	pairs := []struct{ learner, certification string }{
		{"U1", "C1"}, {"U2", "C1"}, {"U1", "C9"},
	}
	for _, pair := range pairs {
		t.Run(fmt.Sprintf("%s-%s", pair.learner, pair.certification), func(t *testing.T) {
			store := &memoryEnrollments{}
			controller, _ := newController(store, "U3/C1")

			_, err := controller.Enroll(context.Background(), pair.learner, pair.certification)
			assert.ErrorIs(t, err, apperrors.ErrNoApprovedApplication)
			assert.NotContains(t, store.calls, "insert")
		})
	}
}

func TestEnrollAlreadyEnrolledInTarget(t *testing.T) {
	store := &memoryEnrollments{rows: []entities.UserEnrollment{{
		ID: "E1", UserID: "U1", CertificationID: "C1", Status: entities.EnrollmentCompleted,
	}}}
	controller, _ := newController(store, "U1/C1")

	_, err := controller.Enroll(context.Background(), "U1", "C1")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolledInTarget)
}

func TestEnrollAfterCompletingPreviousCourse(t *testing.T) {
	store := &memoryEnrollments{rows: []entities.UserEnrollment{{
		ID: "E1", UserID: "U1", CertificationID: "C1", Status: entities.EnrollmentCompleted,
	}}}
	controller, _ := newController(store, "U1/C2")

	enrollment, err := controller.Enroll(context.Background(), "U1", "C2")
	require.NoError(t, err)
	assert.Equal(t, "C2", enrollment.CertificationID)
}

func TestEnrollConcurrentRequestsAdmitOne(t *testing.T) {
	for round := 0; round < 20; round++ {
		store := &memoryEnrollments{readDelay: time.Millisecond}
		controller, _ := newController(store, "U1/C1", "U1/C2")

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, cert := range []string{"C1", "C2"} {
			wg.Add(1)
			go func(i int, cert string) {
				defer wg.Done()
				_, errs[i] = controller.Enroll(context.Background(), "U1", cert)
			}(i, cert)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.True(t, errors.Is(err, apperrors.ErrActiveEnrollmentExists), "unexpected error %v", err)
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, store.activeCount("U1"))
	}
}

type failingStore struct{ memoryEnrollments }

func (f *failingStore) Insert(ctx context.Context, enrollment entities.UserEnrollment) (*entities.UserEnrollment, error) {
	return nil, errors.New("write concern timeout")
}

func TestEnrollPersistenceError(t *testing.T) {
	controller, _ := newController(&memoryEnrollments{}, "U1/C1")
	controller.Enrollments = &failingStore{}

	_, err := controller.Enroll(context.Background(), "U1", "C1")
	var persistenceErr *apperrors.PersistenceError
	assert.True(t, errors.As(err, &persistenceErr))
}
