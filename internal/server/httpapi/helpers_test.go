package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/imagetags/internal/logging"
	"github.com/dmitrijs2005/imagetags/internal/server/auth"
	"github.com/dmitrijs2005/imagetags/internal/server/metrics"
	"github.com/dmitrijs2005/imagetags/internal/server/models"
	"github.com/dmitrijs2005/imagetags/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type mockAccounts struct {
	registerFunc     func(ctx context.Context, c services.Candidate) (*models.PublicAccount, error)
	loginFunc        func(ctx context.Context, userName, password string) (string, error)
	authenticateFunc func(ctx context.Context, authorization string) (auth.Identity, error)
}

func (m *mockAccounts) Register(ctx context.Context, c services.Candidate) (*models.PublicAccount, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, c)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAccounts) Login(ctx context.Context, userName, password string) (string, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, userName, password)
	}
	return "", errors.New("not implemented")
}

func (m *mockAccounts) Authenticate(ctx context.Context, authorization string) (auth.Identity, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, authorization)
	}
	return auth.Identity{}, errors.New("not implemented")
}

// alwaysAuthenticated lets every request through as account 7.
func alwaysAuthenticated() *mockAccounts {
	return &mockAccounts{
		authenticateFunc: func(context.Context, string) (auth.Identity, error) {
			return auth.Identity{AccountID: 7, UserName: "alice"}, nil
		},
	}
}

type mockImages struct {
	addImageFunc     func(ctx context.Context, userID int64, req services.NewImage) (*models.Image, error)
	listImagesFunc   func(ctx context.Context, userID int64) ([]*models.Image, error)
	getImageFunc     func(ctx context.Context, userID, id int64) (*models.Image, error)
	deleteImageFunc  func(ctx context.Context, userID, id int64) error
	addFeaturesFunc  func(ctx context.Context, userID int64, req services.NewFeatures) ([]*models.Feature, error)
	listFeaturesFunc func(ctx context.Context, userID, imageID int64) ([]*models.Feature, error)
}

func (m *mockImages) AddImage(ctx context.Context, userID int64, req services.NewImage) (*models.Image, error) {
	if m.addImageFunc != nil {
		return m.addImageFunc(ctx, userID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockImages) ListImages(ctx context.Context, userID int64) ([]*models.Image, error) {
	if m.listImagesFunc != nil {
		return m.listImagesFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockImages) GetImage(ctx context.Context, userID, id int64) (*models.Image, error) {
	if m.getImageFunc != nil {
		return m.getImageFunc(ctx, userID, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockImages) DeleteImage(ctx context.Context, userID, id int64) error {
	if m.deleteImageFunc != nil {
		return m.deleteImageFunc(ctx, userID, id)
	}
	return errors.New("not implemented")
}

func (m *mockImages) AddFeatures(ctx context.Context, userID int64, req services.NewFeatures) ([]*models.Feature, error) {
	if m.addFeaturesFunc != nil {
		return m.addFeaturesFunc(ctx, userID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockImages) ListFeatures(ctx context.Context, userID, imageID int64) ([]*models.Feature, error) {
	if m.listFeaturesFunc != nil {
		return m.listFeaturesFunc(ctx, userID, imageID)
	}
	return nil, errors.New("not implemented")
}

type mockUploads struct {
	storeFunc func(ctx context.Context, u services.Upload) (string, error)
}

func (m *mockUploads) Store(ctx context.Context, u services.Upload) (string, error) {
	if m.storeFunc != nil {
		return m.storeFunc(ctx, u)
	}
	return "", errors.New("not implemented")
}

type mockPinger struct {
	err error
}

func (m mockPinger) PingContext(context.Context) error { return m.err }

// =============================================================================
// Test Helpers
// =============================================================================

func newTestRouter(t *testing.T, d Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if d.Accounts == nil {
		d.Accounts = &mockAccounts{}
	}
	if d.Images == nil {
		d.Images = &mockImages{}
	}
	if d.Uploads == nil {
		d.Uploads = &mockUploads{}
	}
	if d.DB == nil {
		d.DB = mockPinger{}
	}
	if d.Metrics == nil {
		reg := prometheus.NewRegistry()
		d.Metrics = metrics.NewWithRegistry(reg, reg)
	}
	if d.Logger == nil {
		d.Logger = logging.Nop{}
	}
	if d.MaxUploadSize == 0 {
		d.MaxUploadSize = 1 << 10
	}
	return NewHandler(d).NewRouter()
}

func doJSON(router http.Handler, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error response %q: %v", w.Body.String(), err)
	}
	return resp.Error
}
