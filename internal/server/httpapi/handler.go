// Package httpapi is the HTTP transport of the server: gin routes, the
// bearer-token guard and the JSON error contract.
package httpapi

import (
	"context"

	"github.com/dmitrijs2005/imagetags/internal/logging"
	"github.com/dmitrijs2005/imagetags/internal/server/auth"
	"github.com/dmitrijs2005/imagetags/internal/server/metrics"
	"github.com/dmitrijs2005/imagetags/internal/server/models"
	"github.com/dmitrijs2005/imagetags/internal/server/services"
)

// AccountService is implemented by *services.AccountService.
type AccountService interface {
	Register(ctx context.Context, c services.Candidate) (*models.PublicAccount, error)
	Login(ctx context.Context, userName, password string) (string, error)
	Authenticate(ctx context.Context, authorization string) (auth.Identity, error)
}

// ImageService is implemented by *services.ImageService.
type ImageService interface {
	AddImage(ctx context.Context, userID int64, req services.NewImage) (*models.Image, error)
	ListImages(ctx context.Context, userID int64) ([]*models.Image, error)
	GetImage(ctx context.Context, userID, id int64) (*models.Image, error)
	DeleteImage(ctx context.Context, userID, id int64) error
	AddFeatures(ctx context.Context, userID int64, req services.NewFeatures) ([]*models.Feature, error)
	ListFeatures(ctx context.Context, userID, imageID int64) ([]*models.Feature, error)
}

// UploadService is implemented by *services.UploadService.
type UploadService interface {
	Store(ctx context.Context, u services.Upload) (string, error)
}

// Pinger reports database reachability; *sql.DB implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler carries the collaborators of every route.
type Handler struct {
	accounts      AccountService
	images        ImageService
	uploads       UploadService
	db            Pinger
	metrics       *metrics.Metrics
	logger        logging.Logger
	maxUploadSize int64
}

type Deps struct {
	Accounts      AccountService
	Images        ImageService
	Uploads       UploadService
	DB            Pinger
	Metrics       *metrics.Metrics
	Logger        logging.Logger
	MaxUploadSize int64
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		accounts:      d.Accounts,
		images:        d.Images,
		uploads:       d.Uploads,
		db:            d.DB,
		metrics:       d.Metrics,
		logger:        d.Logger.With("module", "http"),
		maxUploadSize: d.MaxUploadSize,
	}
}
