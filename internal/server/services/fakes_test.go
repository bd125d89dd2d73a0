package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/imagetags/internal/common"
	"github.com/dmitrijs2005/imagetags/internal/dbx"
	"github.com/dmitrijs2005/imagetags/internal/server/models"
	"github.com/dmitrijs2005/imagetags/internal/server/repositories/features"
	"github.com/dmitrijs2005/imagetags/internal/server/repositories/images"
	"github.com/dmitrijs2005/imagetags/internal/server/repositories/users"
)

var fixedNow = time.Date(2029, 1, 22, 16, 28, 32, 0, time.UTC)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// fakeUsersRepo keeps accounts in memory and counts calls. Create enforces
// user name uniqueness the way the UNIQUE constraint does.
type fakeUsersRepo struct {
	byName    map[string]*models.Account
	nextID    int64
	writes    int
	reads     int
	findErr   error
	createErr error
}

func newFakeUsersRepo(accounts ...*models.Account) *fakeUsersRepo {
	f := &fakeUsersRepo{byName: map[string]*models.Account{}, nextID: 1}
	for _, a := range accounts {
		f.byName[a.UserName] = a
		if a.ID >= f.nextID {
			f.nextID = a.ID + 1
		}
	}
	return f
}

func (f *fakeUsersRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	f.writes++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[a.UserName]; ok {
		return nil, common.ErrUsernameTaken
	}
	a.ID = f.nextID
	f.nextID++
	f.byName[a.UserName] = a
	return a, nil
}

func (f *fakeUsersRepo) FindByUsername(ctx context.Context, userName string) (*models.Account, error) {
	f.reads++
	if f.findErr != nil {
		return nil, f.findErr
	}
	a, ok := f.byName[userName]
	if !ok {
		return nil, common.ErrNotFound
	}
	return a, nil
}

type fakeImagesRepo struct {
	items     map[int64]*models.Image
	nextID    int64
	createErr error
}

func newFakeImagesRepo(items ...*models.Image) *fakeImagesRepo {
	f := &fakeImagesRepo{items: map[int64]*models.Image{}, nextID: 1}
	for _, i := range items {
		f.items[i.ID] = i
		if i.ID >= f.nextID {
			f.nextID = i.ID + 1
		}
	}
	return f
}

func (f *fakeImagesRepo) Create(ctx context.Context, i *models.Image) (*models.Image, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	i.ID = f.nextID
	i.DateCreated = fixedNow
	f.nextID++
	f.items[i.ID] = i
	return i, nil
}

func (f *fakeImagesRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Image, error) {
	out := []*models.Image{}
	for id := int64(1); id < f.nextID; id++ {
		if i, ok := f.items[id]; ok && i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeImagesRepo) GetByID(ctx context.Context, userID, id int64) (*models.Image, error) {
	i, ok := f.items[id]
	if !ok || i.UserID != userID {
		return nil, common.ErrNotFound
	}
	return i, nil
}

func (f *fakeImagesRepo) FindByURL(ctx context.Context, userID int64, url string) (*models.Image, error) {
	for _, i := range f.items {
		if i.UserID == userID && i.URL == url {
			return i, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeImagesRepo) Delete(ctx context.Context, userID, id int64) error {
	if _, err := f.GetByID(ctx, userID, id); err != nil {
		return err
	}
	delete(f.items, id)
	return nil
}

type fakeFeaturesRepo struct {
	created []*models.Feature
	// failOn makes Create fail for this label.
	failOn string
}

func (f *fakeFeaturesRepo) Create(ctx context.Context, feat *models.Feature) (*models.Feature, error) {
	if f.failOn != "" && feat.Label == f.failOn {
		return nil, errors.New("insert failed")
	}
	feat.ID = int64(len(f.created) + 1)
	f.created = append(f.created, feat)
	return feat, nil
}

func (f *fakeFeaturesRepo) ListByImage(ctx context.Context, userID, imageID int64) ([]*models.Feature, error) {
	out := []*models.Feature{}
	for _, feat := range f.created {
		if feat.UserID == userID && feat.ImageID == imageID {
			out = append(out, feat)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	i *fakeImagesRepo
	f *fakeFeaturesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *fakeRepoManager) Images(dbx.DBTX) images.Repository            { return m.i }
func (m *fakeRepoManager) Features(dbx.DBTX) features.Repository        { return m.f }

// plainHasher makes stored hashes predictable.
type plainHasher struct {
	hashErr error
}

func (h plainHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h plainHasher) Verify(password, hash string) (bool, error) {
	if !strings.HasPrefix(hash, "hashed:") {
		return false, errors.New("malformed hash")
	}
	return hash == "hashed:"+password, nil
}
