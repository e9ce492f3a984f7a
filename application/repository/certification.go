package repository

import (
	"context"
	"sync"

	"certschool.io/entities"
	"certschool.io/infrastructure/database/connection/datastore"
	"certschool.io/infrastructure/database/repository/mongo"
)

var certificationOnce = sync.Once{}

var certificationRepository CertificationRepository

type CertificationRepository struct {
	*mongo.MongoRepository[entities.Certification]
}

func CertificationRepo() *CertificationRepository {
	certificationOnce.Do(func() {
		certificationRepository = CertificationRepository{&mongo.MongoRepository[entities.Certification]{Model: datastore.CertificationModel, Timeout: Timeout}}
	})
	return &certificationRepository
}

func (repo *CertificationRepository) FindByIDs(ctx context.Context, ids []string) ([]entities.Certification, error) {
	if len(ids) == 0 {
		return []entities.Certification{}, nil
	}
	certifications, err := repo.FindMany(ctx, map[string]interface{}{
		"_id": map[string]any{"$in": ids},
	})
	if err != nil {
		return nil, err
	}
	return *certifications, nil
}

func (repo *CertificationRepository) FindByTitle(ctx context.Context, title string) (*entities.Certification, error) {
	return repo.FindOneByFilter(ctx, map[string]interface{}{"title": title})
}
