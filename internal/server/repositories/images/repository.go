package images

import (
	"context"

	"github.com/dmitrijs2005/imagetags/internal/server/models"
)

// Repository stores image URLs. Every read and delete is scoped to the
// owning account; a row owned by someone else behaves as missing.
type Repository interface {
	Create(ctx context.Context, image *models.Image) (*models.Image, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Image, error)
	GetByID(ctx context.Context, userID, id int64) (*models.Image, error)
	FindByURL(ctx context.Context, userID int64, url string) (*models.Image, error)
	Delete(ctx context.Context, userID, id int64) error
}
