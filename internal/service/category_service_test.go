package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"cityguide/internal/errors"
	"cityguide/internal/model"
)

func newCategoryService(categoryRepo *MockCategoryRepository, cityRepo *MockCityRepository, attractionRepo *MockAttractionRepository, reviewRepo *MockReviewRepository) CategoryService {
	return NewCategoryService(categoryRepo, cityRepo, attractionRepo, reviewRepo, NewEntityLocker(), nil)
}

func TestCreateCategory_Success(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	cityRepo := new(MockCityRepository)
	svc := newCategoryService(categoryRepo, cityRepo, new(MockAttractionRepository), new(MockReviewRepository))

	cityID := uuid.New()
	cityRepo.On("FindByID", mock.Anything, cityID).
		Return(&model.City{ID: cityID, Name: "Paris"}, nil)
	categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).
		Return(nil)

	category := &model.Category{Name: "Museums", Description: "Art and history", CityID: cityID}
	created, err := svc.CreateCategory(context.Background(), category)

	assert.NoError(t, err)
	assert.Equal(t, "Museums", created.Name)
	categoryRepo.AssertExpectations(t)
}

func TestCreateCategory_CityNotFound(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	cityRepo := new(MockCityRepository)
	svc := newCategoryService(categoryRepo, cityRepo, new(MockAttractionRepository), new(MockReviewRepository))

	cityID := uuid.New()
	cityRepo.On("FindByID", mock.Anything, cityID).
		Return(nil, gorm.ErrRecordNotFound)

	category := &model.Category{Name: "Museums", CityID: cityID}
	created, err := svc.CreateCategory(context.Background(), category)

	assert.ErrorIs(t, err, errors.ErrCityNotFound)
	assert.Nil(t, created)
	categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateCategory_KeepsImageWhenEmpty(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	svc := newCategoryService(categoryRepo, new(MockCityRepository), new(MockAttractionRepository), new(MockReviewRepository))

	categoryID := uuid.New()
	cityID := uuid.New()
	categoryRepo.On("FindByID", mock.Anything, categoryID).
		Return(&model.Category{ID: categoryID, Name: "Museums", Image: "museums.jpg", CityID: cityID}, nil)
	categoryRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Category")).
		Return(nil)

	updated, err := svc.UpdateCategory(context.Background(), categoryID, "Galleries", "Contemporary art", "")

	assert.NoError(t, err)
	assert.Equal(t, "Galleries", updated.Name)
	assert.Equal(t, "museums.jpg", updated.Image)
	assert.Equal(t, cityID, updated.CityID)
}

func TestDeleteCategory_CascadesReviewsAndAttractions(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	attractionRepo := new(MockAttractionRepository)
	reviewRepo := new(MockReviewRepository)
	svc := newCategoryService(categoryRepo, new(MockCityRepository), attractionRepo, reviewRepo)

	categoryID := uuid.New()
	attractionA := model.Attraction{ID: uuid.New(), CategoryID: categoryID}
	attractionB := model.Attraction{ID: uuid.New(), CategoryID: categoryID}

	categoryRepo.On("FindByID", mock.Anything, categoryID).
		Return(&model.Category{ID: categoryID}, nil)
	attractionRepo.On("ListByCategoryID", mock.Anything, categoryID).
		Return([]model.Attraction{attractionA, attractionB}, nil)
	reviewRepo.On("DeleteByAttractionID", mock.Anything, attractionA.ID).Return(nil)
	reviewRepo.On("DeleteByAttractionID", mock.Anything, attractionB.ID).Return(nil)
	attractionRepo.On("Delete", mock.Anything, attractionA.ID).Return(nil)
	attractionRepo.On("Delete", mock.Anything, attractionB.ID).Return(nil)
	categoryRepo.On("Delete", mock.Anything, categoryID).Return(nil)

	err := svc.DeleteCategory(context.Background(), categoryID)

	assert.NoError(t, err)
	categoryRepo.AssertExpectations(t)
	attractionRepo.AssertExpectations(t)
	reviewRepo.AssertExpectations(t)
}

func TestDeleteCategory_PartialCascadeKeepsCategory(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	attractionRepo := new(MockAttractionRepository)
	reviewRepo := new(MockReviewRepository)
	svc := newCategoryService(categoryRepo, new(MockCityRepository), attractionRepo, reviewRepo)

	categoryID := uuid.New()
	stuck := model.Attraction{ID: uuid.New(), CategoryID: categoryID}

	categoryRepo.On("FindByID", mock.Anything, categoryID).
		Return(&model.Category{ID: categoryID}, nil)
	attractionRepo.On("ListByCategoryID", mock.Anything, categoryID).
		Return([]model.Attraction{stuck}, nil)
	reviewRepo.On("DeleteByAttractionID", mock.Anything, stuck.ID).
		Return(assert.AnError)

	err := svc.DeleteCategory(context.Background(), categoryID)

	var partial *errors.PartialCascadeError
	assert.ErrorAs(t, err, &partial)
	assert.Contains(t, partial.Remaining["attractions"], stuck.ID.String())
	assert.Contains(t, partial.Remaining["categories"], categoryID.String())
	// The surviving attraction keeps its reviews and its category.
	attractionRepo.AssertNotCalled(t, "Delete", mock.Anything, stuck.ID)
	categoryRepo.AssertNotCalled(t, "Delete", mock.Anything, categoryID)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	svc := newCategoryService(categoryRepo, new(MockCityRepository), new(MockAttractionRepository), new(MockReviewRepository))

	categoryID := uuid.New()
	categoryRepo.On("FindByID", mock.Anything, categoryID).
		Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeleteCategory(context.Background(), categoryID)

	assert.ErrorIs(t, err, errors.ErrCategoryNotFound)
}

func TestCategoriesByCityName(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		normalized string
		wantErr    error
	}{
		{name: "lowercased and trimmed", input: "  Paris ", normalized: "paris"},
		{name: "already normalized", input: "lyon", normalized: "lyon"},
		{name: "blank", input: "   ", wantErr: errors.ErrMissingParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categoryRepo := new(MockCategoryRepository)
			svc := newCategoryService(categoryRepo, new(MockCityRepository), new(MockAttractionRepository), new(MockReviewRepository))

			if tt.wantErr == nil {
				categoryRepo.On("ListByCityName", mock.Anything, tt.normalized).
					Return([]model.Category{{Name: "Museums"}}, nil)
			}

			categories, err := svc.CategoriesByCityName(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, categories, 1)
			categoryRepo.AssertExpectations(t)
		})
	}
}
