package repository

import (
	"context"
	"sync"

	"certschool.io/entities"
	"certschool.io/infrastructure/database/connection/datastore"
	"certschool.io/infrastructure/database/repository/mongo"
)

var applicationOnce = sync.Once{}

var applicationRepository ApplicationRepository

type ApplicationRepository struct {
	*mongo.MongoRepository[entities.Application]
}

func ApplicationRepo() *ApplicationRepository {
	applicationOnce.Do(func() {
		applicationRepository = ApplicationRepository{&mongo.MongoRepository[entities.Application]{Model: datastore.ApplicationModel, Timeout: Timeout}}
	})
	return &applicationRepository
}

func (repo *ApplicationRepository) FindApproved(ctx context.Context, userID string, certificationID string) (*entities.Application, error) {
	return repo.FindOneByFilter(ctx, map[string]interface{}{
		"userID":          userID,
		"certificationID": certificationID,
		"status":          entities.ApplicationApproved,
	})
}

// TransitionStatus moves the application to next only if its current status
// is one of from. It reports whether a document was changed.
func (repo *ApplicationRepository) TransitionStatus(ctx context.Context, id string, from []entities.ApplicationStatus, next entities.ApplicationStatus) (bool, error) {
	matched, err := repo.UpdatePartialByFilter(ctx, map[string]interface{}{
		"_id":    id,
		"status": map[string]any{"$in": from},
	}, map[string]any{
		"status": next,
	})
	if err != nil {
		return false, err
	}
	return matched == 1, nil
}
