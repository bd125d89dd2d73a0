// Package features provides the PostgreSQL-backed feature label repository.
package features

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/imagetags/internal/dbx"
	"github.com/dmitrijs2005/imagetags/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX. Batches of
// features are written by binding it to a *sql.Tx via dbx.WithTx.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, feature *models.Feature) (*models.Feature, error) {
	query := `
		INSERT INTO features (label, language, image_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date_created
	`
	err := r.db.QueryRowContext(ctx, query,
		feature.Label, feature.Language, feature.ImageID, feature.UserID).Scan(&feature.ID, &feature.DateCreated)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return feature, nil
}

// ListByImage returns the features of imageID that belong to userID, oldest first.
func (r *PostgresRepository) ListByImage(ctx context.Context, userID, imageID int64) ([]*models.Feature, error) {
	query := `
		SELECT id, label, language, image_id, user_id, date_created FROM features
		WHERE image_id = $1 AND user_id = $2
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, imageID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select features: %w", err)
	}
	defer rows.Close()

	result := []*models.Feature{}
	for rows.Next() {
		var item models.Feature
		if err := rows.Scan(&item.ID, &item.Label, &item.Language, &item.ImageID, &item.UserID, &item.DateCreated); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
