package service

import (
	"context"
	"fmt"

	"go-catalog-ws/internal/model"
	"go-catalog-ws/internal/repository"
	"go-catalog-ws/pkg/apperr"
	"go-catalog-ws/pkg/validator"

	"github.com/google/uuid"
)

type StoreService interface {
	UpsertStore(ctx context.Context, caller model.Caller, store *model.Store) (*model.Store, error)
	GetStoreByURL(ctx context.Context, url string) (*model.Store, error)
}

type storeService struct {
	storeRepo repository.StoreRepository
}

func NewStoreService(repo repository.StoreRepository) StoreService {
	return &storeService{storeRepo: repo}
}

// UpsertStore registers or updates a seller-owned store. Ownership is fixed
// to the caller; a seller cannot write another seller's store.
func (s *storeService) UpsertStore(ctx context.Context, caller model.Caller, store *model.Store) (*model.Store, error) {
	if err := requireRole(caller, model.RoleSeller); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.Validation("please provide store data")
	}
	if errs := validator.ValidateStruct(store); len(errs) > 0 {
		return nil, apperr.Validation(fmt.Sprintf("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag))
	}

	existing, err := s.storeRepo.FindDuplicate(ctx, store.Name, store.URL, store.ID)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	if existing != nil {
		if existing.Name == store.Name {
			return nil, apperr.Duplicate("store with the same name")
		}
		return nil, apperr.Duplicate("store with the same url")
	}

	store.OwnerUserID = caller.ID

	if store.ID != uuid.Nil {
		current, err := s.storeRepo.FindByID(ctx, store.ID)
		if err == nil {
			if current.OwnerUserID != caller.ID {
				return nil, apperr.Unauthorized("store belongs to another seller")
			}
			current.Name = store.Name
			current.Description = store.Description
			current.URL = store.URL
			current.Logo = store.Logo
			current.Cover = store.Cover
			if err := s.storeRepo.Save(ctx, current); err != nil {
				return nil, apperr.Classify(err)
			}
			return current, nil
		}
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, apperr.Classify(err)
	}
	return store, nil
}

func (s *storeService) GetStoreByURL(ctx context.Context, url string) (*model.Store, error) {
	if url == "" {
		return nil, apperr.Validation("please provide a valid store url")
	}
	store, err := s.storeRepo.FindByURL(ctx, url)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return store, nil
}
