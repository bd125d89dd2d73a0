package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/imagetags/internal/common"
	"github.com/dmitrijs2005/imagetags/internal/dbx"
	"github.com/dmitrijs2005/imagetags/internal/server/models"
	"github.com/dmitrijs2005/imagetags/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// NewImage is the payload of POST /images.
type NewImage struct {
	ImageURL string `json:"imageURL"`
}

func (r NewImage) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ImageURL, validation.Required, is.URL),
	)
}

// FeatureInput is one detected label.
type FeatureInput struct {
	Label        string `json:"label"`
	LanguageCode string `json:"languageCode"`
}

func (f FeatureInput) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Label, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.LanguageCode, validation.Length(0, 35)),
	)
}

// NewFeatures is the payload of POST /features. Every element of Features
// is validated through FeatureInput.Validate.
type NewFeatures struct {
	ImageURL string         `json:"imageURL"`
	Features []FeatureInput `json:"features"`
}

func (r NewFeatures) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ImageURL, validation.Required),
		validation.Field(&r.Features, validation.Required),
	)
}

// ImageService manages the caller's image URLs and their feature labels.
// Every method is scoped to userID.
type ImageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewImageService(db *sql.DB, m repomanager.RepositoryManager) *ImageService {
	return &ImageService{db: db, repomanager: m}
}

func invalidInput(err error) error {
	return &ValidationError{Code: ErrInvalidInput, Err: err}
}

func (s *ImageService) AddImage(ctx context.Context, userID int64, req NewImage) (*models.Image, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	image, err := s.repomanager.Images(s.db).Create(ctx, &models.Image{URL: req.ImageURL, UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("error creating image: %w", err)
	}
	return image, nil
}

func (s *ImageService) ListImages(ctx context.Context, userID int64) ([]*models.Image, error) {
	return s.repomanager.Images(s.db).ListByUser(ctx, userID)
}

// GetImage returns common.ErrImageNotFound when the image is missing or owned
// by another account.
func (s *ImageService) GetImage(ctx context.Context, userID, id int64) (*models.Image, error) {
	image, err := s.repomanager.Images(s.db).GetByID(ctx, userID, id)
	if err != nil {
		return nil, imageErr(err)
	}
	return image, nil
}

func (s *ImageService) DeleteImage(ctx context.Context, userID, id int64) error {
	return imageErr(s.repomanager.Images(s.db).Delete(ctx, userID, id))
}

// AddFeatures attaches labels to the caller's image found by URL. The labels
// are written in one transaction: either all of them are stored or none.
func (s *ImageService) AddFeatures(ctx context.Context, userID int64, req NewFeatures) ([]*models.Feature, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	image, err := s.repomanager.Images(s.db).FindByURL(ctx, userID, req.ImageURL)
	if err != nil {
		return nil, imageErr(err)
	}

	created := make([]*models.Feature, 0, len(req.Features))
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Features(tx)
		for _, f := range req.Features {
			language := f.LanguageCode
			if language == "" {
				language = models.DefaultFeatureLanguage
			}
			feature, err := repo.Create(ctx, &models.Feature{
				Label:    f.Label,
				Language: language,
				ImageID:  image.ID,
				UserID:   userID,
			})
			if err != nil {
				return err
			}
			created = append(created, feature)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error creating features: %w", err)
	}

	return created, nil
}

// ListFeatures returns the labels of one of the caller's images.
func (s *ImageService) ListFeatures(ctx context.Context, userID, imageID int64) ([]*models.Feature, error) {
	if _, err := s.GetImage(ctx, userID, imageID); err != nil {
		return nil, err
	}
	return s.repomanager.Features(s.db).ListByImage(ctx, userID, imageID)
}

func imageErr(err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrImageNotFound
	}
	return err
}
