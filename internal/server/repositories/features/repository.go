package features

import (
	"context"

	"github.com/dmitrijs2005/imagetags/internal/server/models"
)

// Repository stores feature labels attached to images.
type Repository interface {
	Create(ctx context.Context, feature *models.Feature) (*models.Feature, error)
	ListByImage(ctx context.Context, userID, imageID int64) ([]*models.Feature, error)
}
