// Package images provides the PostgreSQL-backed image URL repository.
package images

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/imagetags/internal/common"
	"github.com/dmitrijs2005/imagetags/internal/dbx"
	"github.com/dmitrijs2005/imagetags/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the image and fills in ID and DateCreated from the database.
func (r *PostgresRepository) Create(ctx context.Context, image *models.Image) (*models.Image, error) {
	query := `
		INSERT INTO images (url, user_id)
		VALUES ($1, $2)
		RETURNING id, date_created
	`
	err := r.db.QueryRowContext(ctx, query, image.URL, image.UserID).Scan(&image.ID, &image.DateCreated)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return image, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Image, error) {
	query := `
		SELECT id, url, user_id, date_created FROM images
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select images: %w", err)
	}
	defer rows.Close()

	result := []*models.Image{}
	for rows.Next() {
		var item models.Image
		if err := rows.Scan(&item.ID, &item.URL, &item.UserID, &item.DateCreated); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id int64) (*models.Image, error) {
	query := `
		SELECT id, url, user_id, date_created FROM images
		WHERE id = $1 AND user_id = $2
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}

// FindByURL returns the caller's most recent image with the given URL.
func (r *PostgresRepository) FindByURL(ctx context.Context, userID int64, url string) (*models.Image, error) {
	query := `
		SELECT id, url, user_id, date_created FROM images
		WHERE user_id = $1 AND url = $2
		ORDER BY id DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, url))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Image, error) {
	image := &models.Image{}
	if err := row.Scan(&image.ID, &image.URL, &image.UserID, &image.DateCreated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return image, nil
}

// Delete removes the image. It returns common.ErrNotFound when no row owned
// by userID matched.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
