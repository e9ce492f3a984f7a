package repository

import (
	"context"
	"sync"

	"certschool.io/entities"
	"certschool.io/infrastructure/database/connection/datastore"
	"certschool.io/infrastructure/database/repository/mongo"
)

var userEnrollmentOnce = sync.Once{}

var userEnrollmentRepository UserEnrollmentRepository

type UserEnrollmentRepository struct {
	*mongo.MongoRepository[entities.UserEnrollment]
}

func UserEnrollmentRepo() *UserEnrollmentRepository {
	userEnrollmentOnce.Do(func() {
		userEnrollmentRepository = UserEnrollmentRepository{&mongo.MongoRepository[entities.UserEnrollment]{Model: datastore.UserEnrollmentModel, Timeout: Timeout}}
	})
	return &userEnrollmentRepository
}

func (repo *UserEnrollmentRepository) CountActive(ctx context.Context, userID string) (int64, error) {
	return repo.CountDocs(ctx, map[string]interface{}{
		"userID": userID,
		"status": entities.EnrollmentActive,
	})
}

func (repo *UserEnrollmentRepository) FindForCertification(ctx context.Context, userID string, certificationID string) (*entities.UserEnrollment, error) {
	return repo.FindOneByFilter(ctx, map[string]interface{}{
		"userID":          userID,
		"certificationID": certificationID,
	})
}

func (repo *UserEnrollmentRepository) FindByUser(ctx context.Context, userID string) ([]entities.UserEnrollment, error) {
	var sort interface{} = map[string]any{"createdAt": -1}
	enrollments, err := repo.FindMany(ctx, map[string]interface{}{"userID": userID}, mongo.FindOptions{Sort: &sort})
	if err != nil {
		return nil, err
	}
	return *enrollments, nil
}

// Insert creates the enrollment, translating unique index violations into
// ErrActiveEnrollmentConflict or ErrEnrollmentPairConflict.
func (repo *UserEnrollmentRepository) Insert(ctx context.Context, enrollment entities.UserEnrollment) (*entities.UserEnrollment, error) {
	created, err := repo.CreateOne(ctx, enrollment)
	if err != nil {
		if mongo.IsDuplicateKeyOn(err, datastore.ActiveEnrollmentIndex) {
			return nil, ErrActiveEnrollmentConflict
		}
		if mongo.IsDuplicateKeyOn(err, datastore.LearnerCertificationIndex) {
			return nil, ErrEnrollmentPairConflict
		}
		return nil, err
	}
	return created, nil
}

func (repo *UserEnrollmentRepository) SetPaymentStatus(ctx context.Context, id string, status entities.EnrollmentPaymentStatus) (bool, error) {
	matched, err := repo.UpdatePartialByID(ctx, id, map[string]any{"paymentStatus": status})
	if err != nil {
		return false, err
	}
	return matched == 1, nil
}
