package core

import (
	"context"

	"github.com/addisware/addispos/internal/model"
)

// AddReview appends an entry to the feedback collection. An empty id
// and timestamp are filled in. A MANAGER review here is the board
// entry only; the HR copy on the staff record goes through
// AddManagerReview.
func (c *Core) AddReview(ctx context.Context, review model.Review) (model.Review, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if review.Rating < 1 || review.Rating > 5 {
		return model.Review{}, invalid("review", "rating must be 1-5, got %d", review.Rating)
	}
	if !model.ValidReviewKind(review.Kind) {
		return model.Review{}, invalid("review", "unknown kind %q", review.Kind)
	}

	reviews, err := readList[model.Review](ctx, c, colReviews)
	if err != nil {
		return model.Review{}, err
	}
	if review.ID == "" {
		review.ID = c.ids.NewID()
	}
	if review.At.IsZero() {
		review.At = c.now()
	}
	reviews = append(reviews, review)

	blobs := make(map[string][]byte)
	if blobs[colReviews], err = encode(colReviews, reviews); err != nil {
		return model.Review{}, err
	}
	if sq, err := c.syncBlob(ctx, ActionAddReview, review); err != nil {
		return model.Review{}, err
	} else if sq != nil {
		blobs[colSyncQueue] = sq
	}

	if err := c.store.WriteMany(ctx, blobs); err != nil {
		return model.Review{}, err
	}
	return review, nil
}

// Reviews returns the feedback collection, oldest first.
func (c *Core) Reviews(ctx context.Context) ([]model.Review, error) {
	return readList[model.Review](ctx, c, colReviews)
}
