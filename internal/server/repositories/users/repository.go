package users

import (
	"context"

	"github.com/dmitrijs2005/imagetags/internal/server/models"
)

// Repository is the account store consumed by the credential issuer and the
// token guard.
type Repository interface {
	// Create inserts the account and fills in its ID. It returns
	// common.ErrUsernameTaken when the user name already exists.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	// FindByUsername returns common.ErrNotFound when no account matches.
	FindByUsername(ctx context.Context, userName string) (*models.Account, error)
}
