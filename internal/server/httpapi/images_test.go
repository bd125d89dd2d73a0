package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/imagetags/internal/common"
	"github.com/dmitrijs2005/imagetags/internal/server/models"
	"github.com/dmitrijs2005/imagetags/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bearer = "Bearer token"

func TestAddImage(t *testing.T) {
	created := time.Date(2029, 1, 22, 16, 28, 32, 0, time.UTC)
	router := newTestRouter(t, Deps{
		Accounts: alwaysAuthenticated(),
		Images: &mockImages{
			addImageFunc: func(ctx context.Context, userID int64, req services.NewImage) (*models.Image, error) {
				return &models.Image{ID: 5, URL: req.ImageURL, UserID: userID, DateCreated: created}, nil
			},
		},
	})

	w := doJSON(router, http.MethodPost, "/images", map[string]string{"imageURL": "https://img.example/a.png"}, "Authorization", bearer)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":5,"url":"https://img.example/a.png","user_id":7,"date_created":"2029-01-22T16:28:32Z"}`, w.Body.String())
}

func TestAddImage_Invalid(t *testing.T) {
	router := newTestRouter(t, Deps{
		Accounts: alwaysAuthenticated(),
		Images: &mockImages{
			addImageFunc: func(ctx context.Context, userID int64, req services.NewImage) (*models.Image, error) {
				return nil, &services.ValidationError{Code: services.ErrInvalidInput, Err: errors.New("imageURL: must be a valid URL.")}
			},
		},
	})

	w := doJSON(router, http.MethodPost, "/images", map[string]string{"imageURL": "nope"}, "Authorization", bearer)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "imageURL: must be a valid URL.", errorBody(t, w))
}

func TestListImages(t *testing.T) {
	router := newTestRouter(t, Deps{
		Accounts: alwaysAuthenticated(),
		Images: &mockImages{
			listImagesFunc: func(ctx context.Context, userID int64) ([]*models.Image, error) {
				return []*models.Image{{ID: 1, URL: "a", UserID: userID}, {ID: 2, URL: "b", UserID: userID}}, nil
			},
		},
	})

	w := doJSON(router, http.MethodGet, "/images", nil, "Authorization", bearer)

	require.Equal(t, http.StatusOK, w.Code)
	var got []models.Image
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestGetImage(t *testing.T) {
	router := newTestRouter(t, Deps{
		Accounts: alwaysAuthenticated(),
		Images: &mockImages{
			getImageFunc: func(ctx context.Context, userID, id int64) (*models.Image, error) {
				if id == 3 {
					return &models.Image{ID: 3, URL: "a", UserID: userID}, nil
				}
				return nil, common.ErrImageNotFound
			},
		},
	})

	w := doJSON(router, http.MethodGet, "/images/3", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/images/4", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Image not found", errorBody(t, w))
}

func TestImageRoutes_InvalidID(t *testing.T) {
	router := newTestRouter(t, Deps{Accounts: alwaysAuthenticated(), Images: countingImages(t)})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/images/abc"},
		{http.MethodGet, "/images/0"},
		{http.MethodDelete, "/images/-1"},
		{http.MethodGet, "/features/x"},
	} {
		w := doJSON(router, tc.method, tc.path, nil, "Authorization", bearer)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		assert.Equal(t, "Invalid id", errorBody(t, w))
	}
}

func TestDeleteImage(t *testing.T) {
	var deleted int64
	router := newTestRouter(t, Deps{
		Accounts: alwaysAuthenticated(),
		Images: &mockImages{
			deleteImageFunc: func(ctx context.Context, userID, id int64) error {
				deleted = id
				return nil
			},
		},
	})

	w := doJSON(router, http.MethodDelete, "/images/9", nil, "Authorization", bearer)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"Image URL was deleted..."`, w.Body.String())
	assert.Equal(t, int64(9), deleted)
}

func TestAddFeatures(t *testing.T) {
	var got services.NewFeatures
	router := newTestRouter(t, Deps{
		Accounts: alwaysAuthenticated(),
		Images: &mockImages{
			addFeaturesFunc: func(ctx context.Context, userID int64, req services.NewFeatures) ([]*models.Feature, error) {
				got = req
				return []*models.Feature{{ID: 1}}, nil
			},
		},
	})

	w := doJSON(router, http.MethodPost, "/features", map[string]any{
		"imageURL": "https://img.example/a.png",
		"features": []map[string]string{{"label": "cat", "languageCode": "en"}},
	}, "Authorization", bearer)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Features added successfully"}`, w.Body.String())
	assert.Equal(t, services.NewFeatures{
		ImageURL: "https://img.example/a.png",
		Features: []services.FeatureInput{{Label: "cat", LanguageCode: "en"}},
	}, got)
}

func TestListFeatures(t *testing.T) {
	router := newTestRouter(t, Deps{
		Accounts: alwaysAuthenticated(),
		Images: &mockImages{
			listFeaturesFunc: func(ctx context.Context, userID, imageID int64) ([]*models.Feature, error) {
				return []*models.Feature{{ID: 1, Label: "cat", Language: "en", ImageID: imageID, UserID: userID}}, nil
			},
		},
	})

	w := doJSON(router, http.MethodGet, "/features/3", nil, "Authorization", bearer)

	require.Equal(t, http.StatusOK, w.Code)
	var got []models.Feature
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ImageID)
	assert.Equal(t, int64(7), got[0].UserID)
}
