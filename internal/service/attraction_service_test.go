package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"cityguide/internal/errors"
	"cityguide/internal/model"
)

func newAttractionService(attractionRepo *MockAttractionRepository, categoryRepo *MockCategoryRepository, cityRepo *MockCityRepository, reviewRepo *MockReviewRepository) AttractionService {
	return NewAttractionService(attractionRepo, categoryRepo, cityRepo, reviewRepo, NewEntityLocker(), nil)
}

func TestCreateAttraction_Success(t *testing.T) {
	attractionRepo := new(MockAttractionRepository)
	categoryRepo := new(MockCategoryRepository)
	cityRepo := new(MockCityRepository)
	svc := newAttractionService(attractionRepo, categoryRepo, cityRepo, new(MockReviewRepository))

	categoryID := uuid.New()
	cityID := uuid.New()
	categoryRepo.On("FindByID", mock.Anything, categoryID).
		Return(&model.Category{ID: categoryID, CityID: cityID}, nil)
	cityRepo.On("FindByID", mock.Anything, cityID).
		Return(&model.City{ID: cityID}, nil)
	attractionRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Attraction")).
		Return(nil)

	attraction := &model.Attraction{
		Name:       "Louvre",
		CategoryID: categoryID,
		CityID:     cityID,
		Latitude:   decimal.RequireFromString("48.8606111"),
		Longitude:  decimal.RequireFromString("2.3376400"),
	}
	created, err := svc.CreateAttraction(context.Background(), attraction)

	assert.NoError(t, err)
	assert.Equal(t, "Louvre", created.Name)
	attractionRepo.AssertExpectations(t)
}

func TestCreateAttraction_CategoryNotFound(t *testing.T) {
	attractionRepo := new(MockAttractionRepository)
	categoryRepo := new(MockCategoryRepository)
	svc := newAttractionService(attractionRepo, categoryRepo, new(MockCityRepository), new(MockReviewRepository))

	categoryID := uuid.New()
	categoryRepo.On("FindByID", mock.Anything, categoryID).
		Return(nil, gorm.ErrRecordNotFound)

	attraction := &model.Attraction{Name: "Louvre", CategoryID: categoryID, CityID: uuid.New()}
	created, err := svc.CreateAttraction(context.Background(), attraction)

	assert.ErrorIs(t, err, errors.ErrCategoryNotFound)
	assert.Nil(t, created)
	attractionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateAttraction_ReassignsCategory(t *testing.T) {
	attractionRepo := new(MockAttractionRepository)
	categoryRepo := new(MockCategoryRepository)
	svc := newAttractionService(attractionRepo, categoryRepo, new(MockCityRepository), new(MockReviewRepository))

	attractionID := uuid.New()
	cityID := uuid.New()
	oldCategory := uuid.New()
	newCategory := uuid.New()

	attractionRepo.On("FindByID", mock.Anything, attractionID).
		Return(&model.Attraction{ID: attractionID, Name: "Louvre", CategoryID: oldCategory, CityID: cityID}, nil)
	categoryRepo.On("FindByID", mock.Anything, newCategory).
		Return(&model.Category{ID: newCategory, CityID: cityID}, nil)
	attractionRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	attractionRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Attraction")).Return(nil)

	updated, err := svc.UpdateAttraction(context.Background(), attractionID, AttractionUpdate{
		Name:       "Louvre",
		CategoryID: newCategory,
		CityID:     cityID,
	})

	assert.NoError(t, err)
	assert.Equal(t, newCategory, updated.CategoryID)
	attractionRepo.AssertExpectations(t)
}

func TestUpdateAttraction_TargetCategoryMissing(t *testing.T) {
	attractionRepo := new(MockAttractionRepository)
	categoryRepo := new(MockCategoryRepository)
	svc := newAttractionService(attractionRepo, categoryRepo, new(MockCityRepository), new(MockReviewRepository))

	attractionID := uuid.New()
	cityID := uuid.New()
	oldCategory := uuid.New()
	newCategory := uuid.New()

	attractionRepo.On("FindByID", mock.Anything, attractionID).
		Return(&model.Attraction{ID: attractionID, CategoryID: oldCategory, CityID: cityID}, nil)
	categoryRepo.On("FindByID", mock.Anything, newCategory).
		Return(nil, gorm.ErrRecordNotFound)

	updated, err := svc.UpdateAttraction(context.Background(), attractionID, AttractionUpdate{
		CategoryID: newCategory,
		CityID:     cityID,
	})

	assert.ErrorIs(t, err, errors.ErrCategoryNotFound)
	assert.Nil(t, updated)
	attractionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeleteAttraction_MissingCategoryStillDeletes(t *testing.T) {
	attractionRepo := new(MockAttractionRepository)
	categoryRepo := new(MockCategoryRepository)
	reviewRepo := new(MockReviewRepository)
	svc := newAttractionService(attractionRepo, categoryRepo, new(MockCityRepository), reviewRepo)

	attractionID := uuid.New()
	categoryID := uuid.New()
	attractionRepo.On("FindByID", mock.Anything, attractionID).
		Return(&model.Attraction{ID: attractionID, CategoryID: categoryID}, nil)
	// Owning category already gone: logged, then delete proceeds.
	categoryRepo.On("FindByID", mock.Anything, categoryID).
		Return(nil, gorm.ErrRecordNotFound)
	reviewRepo.On("DeleteByAttractionID", mock.Anything, attractionID).Return(nil)
	attractionRepo.On("Delete", mock.Anything, attractionID).Return(nil)

	err := svc.DeleteAttraction(context.Background(), attractionID)

	assert.NoError(t, err)
	attractionRepo.AssertExpectations(t)
}

func TestDeleteAttraction_ReviewCascadeFailure(t *testing.T) {
	attractionRepo := new(MockAttractionRepository)
	categoryRepo := new(MockCategoryRepository)
	reviewRepo := new(MockReviewRepository)
	svc := newAttractionService(attractionRepo, categoryRepo, new(MockCityRepository), reviewRepo)

	attractionID := uuid.New()
	categoryID := uuid.New()
	attractionRepo.On("FindByID", mock.Anything, attractionID).
		Return(&model.Attraction{ID: attractionID, CategoryID: categoryID}, nil)
	categoryRepo.On("FindByID", mock.Anything, categoryID).
		Return(&model.Category{ID: categoryID}, nil)
	reviewRepo.On("DeleteByAttractionID", mock.Anything, attractionID).
		Return(assert.AnError)

	err := svc.DeleteAttraction(context.Background(), attractionID)

	var partial *errors.PartialCascadeError
	assert.ErrorAs(t, err, &partial)
	assert.Contains(t, partial.Remaining["attractions"], attractionID.String())
	attractionRepo.AssertNotCalled(t, "Delete", mock.Anything, attractionID)
}

func TestSearchByCityAndCategory(t *testing.T) {
	tests := []struct {
		name         string
		city         string
		category     string
		wantCity     string
		wantCategory string
		wantErr      error
	}{
		{name: "normalizes both names", city: " Paris ", category: "MUSEUMS", wantCity: "paris", wantCategory: "museums"},
		{name: "blank city", city: "  ", category: "Museums", wantErr: errors.ErrMissingParameter},
		{name: "blank category", city: "Paris", category: "", wantErr: errors.ErrMissingParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attractionRepo := new(MockAttractionRepository)
			svc := newAttractionService(attractionRepo, new(MockCategoryRepository), new(MockCityRepository), new(MockReviewRepository))

			if tt.wantErr == nil {
				attractionRepo.On("SearchByCityAndCategory", mock.Anything, tt.wantCity, tt.wantCategory).
					Return([]model.Attraction{{Name: "Louvre"}}, nil)
			}

			attractions, err := svc.SearchByCityAndCategory(context.Background(), tt.city, tt.category)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, attractions, 1)
			attractionRepo.AssertExpectations(t)
		})
	}
}

func TestSearchByCityAndCategory_NoMatchIsEmpty(t *testing.T) {
	attractionRepo := new(MockAttractionRepository)
	svc := newAttractionService(attractionRepo, new(MockCategoryRepository), new(MockCityRepository), new(MockReviewRepository))

	attractionRepo.On("SearchByCityAndCategory", mock.Anything, "atlantis", "ruins").
		Return([]model.Attraction{}, nil)

	attractions, err := svc.SearchByCityAndCategory(context.Background(), "Atlantis", "Ruins")

	assert.NoError(t, err)
	assert.Empty(t, attractions)
}

func TestFindByName(t *testing.T) {
	attractionRepo := new(MockAttractionRepository)
	svc := newAttractionService(attractionRepo, new(MockCategoryRepository), new(MockCityRepository), new(MockReviewRepository))

	attractionRepo.On("FindByName", mock.Anything, "louvre").
		Return([]model.Attraction{{Name: "Louvre"}}, nil)

	attractions, err := svc.FindByName(context.Background(), "  Louvre ")

	assert.NoError(t, err)
	assert.Len(t, attractions, 1)

	_, err = svc.FindByName(context.Background(), "   ")
	assert.ErrorIs(t, err, errors.ErrMissingParameter)
}
