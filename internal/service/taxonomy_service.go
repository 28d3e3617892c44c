package service

import (
	"context"
	"fmt"

	"go-catalog-ws/internal/model"
	"go-catalog-ws/internal/repository"
	"go-catalog-ws/internal/ws"
	"go-catalog-ws/pkg/apperr"
	"go-catalog-ws/pkg/validator"

	"github.com/google/uuid"
)

type TaxonomyService interface {
	UpsertCategory(ctx context.Context, caller model.Caller, category *model.Category) (*model.Category, error)
	GetAllCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)
	GetSubCategoriesForCategory(ctx context.Context, categoryID uuid.UUID) ([]model.SubCategory, error)
	DeleteCategory(ctx context.Context, caller model.Caller, id uuid.UUID) error

	UpsertSubCategory(ctx context.Context, caller model.Caller, sub *model.SubCategory) (*model.SubCategory, error)
	GetAllSubCategories(ctx context.Context) ([]model.SubCategory, error)
	DeleteSubCategory(ctx context.Context, caller model.Caller, id uuid.UUID) error
}

type taxonomyService struct {
	categoryRepo repository.CategoryRepository
	subRepo      repository.SubCategoryRepository
	wsHub        *ws.Hub
}

func NewTaxonomyService(cRepo repository.CategoryRepository, sRepo repository.SubCategoryRepository, hub *ws.Hub) TaxonomyService {
	return &taxonomyService{
		categoryRepo: cRepo,
		subRepo:      sRepo,
		wsHub:        hub,
	}
}

func (s *taxonomyService) publish(event string, data interface{}) {
	if s.wsHub == nil {
		return
	}
	go s.wsHub.Publish(event, data)
}

func (s *taxonomyService) UpsertCategory(ctx context.Context, caller model.Caller, category *model.Category) (*model.Category, error) {
	if err := requireRole(caller, model.RoleAdmin); err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.Validation("please provide category data")
	}
	if errs := validator.ValidateStruct(category); len(errs) > 0 {
		return nil, apperr.Validation(fmt.Sprintf("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag))
	}

	// Reject when another category (different id) already owns the name or url
	existing, err := s.categoryRepo.FindDuplicate(ctx, category.Name, category.URL, category.ID)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	if existing != nil {
		if existing.Name == category.Name {
			return nil, apperr.Duplicate("category with the same name")
		}
		return nil, apperr.Duplicate("category with the same url")
	}

	if category.ID != uuid.Nil {
		current, err := s.categoryRepo.FindByID(ctx, category.ID)
		if err == nil {
			current.Name = category.Name
			current.Image = category.Image
			current.URL = category.URL
			current.Featured = category.Featured
			if err := s.categoryRepo.Save(ctx, current); err != nil {
				return nil, apperr.Classify(err)
			}
			s.publish("category_upserted", current)
			return current, nil
		}
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, apperr.Classify(err)
	}
	s.publish("category_upserted", category)
	return category, nil
}

func (s *taxonomyService) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

func (s *taxonomyService) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	if id == uuid.Nil {
		return nil, apperr.Validation("please provide category id")
	}
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return category, nil
}

func (s *taxonomyService) GetSubCategoriesForCategory(ctx context.Context, categoryID uuid.UUID) ([]model.SubCategory, error) {
	if categoryID == uuid.Nil {
		return nil, apperr.Validation("please provide category id")
	}
	return s.subRepo.FindByCategory(ctx, categoryID)
}

func (s *taxonomyService) DeleteCategory(ctx context.Context, caller model.Caller, id uuid.UUID) error {
	if err := requireRole(caller, model.RoleAdmin); err != nil {
		return err
	}
	if id == uuid.Nil {
		return apperr.Validation("please provide category id")
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return apperr.Classify(err)
	}
	s.publish("category_deleted", map[string]interface{}{"id": id})
	return nil
}

func (s *taxonomyService) UpsertSubCategory(ctx context.Context, caller model.Caller, sub *model.SubCategory) (*model.SubCategory, error) {
	if err := requireRole(caller, model.RoleAdmin); err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperr.Validation("please provide subcategory data")
	}
	if errs := validator.ValidateStruct(sub); len(errs) > 0 {
		return nil, apperr.Validation(fmt.Sprintf("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag))
	}

	// Parent category must exist
	if _, err := s.categoryRepo.FindByID(ctx, sub.CategoryID); err != nil {
		return nil, apperr.NotFound("parent category")
	}

	existing, err := s.subRepo.FindDuplicate(ctx, sub.Name, sub.URL, sub.ID)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	if existing != nil {
		if existing.Name == sub.Name {
			return nil, apperr.Duplicate("subcategory with the same name")
		}
		return nil, apperr.Duplicate("subcategory with the same url")
	}

	if sub.ID != uuid.Nil {
		current, err := s.subRepo.FindByID(ctx, sub.ID)
		if err == nil {
			current.Name = sub.Name
			current.Image = sub.Image
			current.URL = sub.URL
			current.Featured = sub.Featured
			current.CategoryID = sub.CategoryID
			if err := s.subRepo.Save(ctx, current); err != nil {
				return nil, apperr.Classify(err)
			}
			s.publish("subcategory_upserted", current)
			return current, nil
		}
	}

	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, apperr.Classify(err)
	}
	s.publish("subcategory_upserted", sub)
	return sub, nil
}

func (s *taxonomyService) GetAllSubCategories(ctx context.Context) ([]model.SubCategory, error) {
	return s.subRepo.FindAll(ctx)
}

func (s *taxonomyService) DeleteSubCategory(ctx context.Context, caller model.Caller, id uuid.UUID) error {
	if err := requireRole(caller, model.RoleAdmin); err != nil {
		return err
	}
	if id == uuid.Nil {
		return apperr.Validation("please provide subcategory id")
	}
	if err := s.subRepo.Delete(ctx, id); err != nil {
		return apperr.Classify(err)
	}
	s.publish("subcategory_deleted", map[string]interface{}{"id": id})
	return nil
}
