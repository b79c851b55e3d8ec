package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cityguide/internal/model"
	"cityguide/internal/repository"
)

// cascadeDeleter removes an entity subtree level by level: reviews, then
// attractions, then categories. Deletes are sequential and best-effort; a
// failed step is recorded and the walk continues, so the caller can report
// exactly which descendants survived instead of aborting half way.
type cascadeDeleter struct {
	categoryRepo   repository.CategoryRepository
	attractionRepo repository.AttractionRepository
	reviewRepo     repository.ReviewRepository
}

// remainder accumulates ids of descendants that could not be removed.
type remainder struct {
	ids map[string][]string
}

func newRemainder() *remainder {
	return &remainder{ids: make(map[string][]string)}
}

func (r *remainder) add(kind string, id uuid.UUID) {
	r.ids[kind] = append(r.ids[kind], id.String())
}

func (r *remainder) empty() bool {
	return len(r.ids) == 0
}

// deleteAttractionTree removes an attraction's reviews and then the
// attraction itself. When the reviews cannot be removed the attraction is
// kept too, so no review is left pointing at a deleted parent.
func (d *cascadeDeleter) deleteAttractionTree(ctx context.Context, attraction *model.Attraction, rem *remainder) {
	if err := d.reviewRepo.DeleteByAttractionID(ctx, attraction.ID); err != nil {
		log.Warn().Err(err).
			Str("attraction_id", attraction.ID.String()).
			Msg("cascade: deleting reviews failed, keeping attraction")
		rem.add("attractions", attraction.ID)
		return
	}
	if err := d.attractionRepo.Delete(ctx, attraction.ID); err != nil {
		log.Warn().Err(err).
			Str("attraction_id", attraction.ID.String()).
			Msg("cascade: deleting attraction failed")
		rem.add("attractions", attraction.ID)
	}
}

// deleteCategoryTree removes a category's attraction subtrees and then the
// category itself. The category survives if any attraction under it does.
func (d *cascadeDeleter) deleteCategoryTree(ctx context.Context, categoryID uuid.UUID, rem *remainder) {
	attractions, err := d.attractionRepo.ListByCategoryID(ctx, categoryID)
	if err != nil {
		log.Warn().Err(err).
			Str("category_id", categoryID.String()).
			Msg("cascade: listing attractions failed, keeping category")
		rem.add("categories", categoryID)
		return
	}

	before := len(rem.ids["attractions"])
	for i := range attractions {
		d.deleteAttractionTree(ctx, &attractions[i], rem)
	}
	if len(rem.ids["attractions"]) > before {
		rem.add("categories", categoryID)
		return
	}

	if err := d.categoryRepo.Delete(ctx, categoryID); err != nil {
		log.Warn().Err(err).
			Str("category_id", categoryID.String()).
			Msg("cascade: deleting category failed")
		rem.add("categories", categoryID)
	}
}
