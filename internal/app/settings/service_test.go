package settings

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type fakeRepo struct {
	row    *domain.Settings
	getErr error
	saves  int
}

func (f *fakeRepo) Get(ctx context.Context) (*domain.Settings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.row == nil {
		return nil, domain.ErrNotFound
	}
	cp := *f.row
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, s domain.Settings) error {
	f.saves++
	f.row = &s
	return nil
}

type fakeStorage struct{ names []string }

func (f *fakeStorage) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	f.names = append(f.names, name)
	return "http://files/storage/" + name, nil
}

func (f *fakeStorage) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	return nil, "", domain.ErrNotFound
}

func (f *fakeStorage) PublicURL(name string) string { return "http://files/storage/" + name }

func newService(repo *fakeRepo, store *fakeStorage) *Service {
	svc := NewService(repo, store, nil, logger.NewNop(), "node-1")
	svc.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return svc
}

func TestRefreshWithoutRow(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeStorage{})

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Nil(t, svc.Get())
}

func TestRefreshError(t *testing.T) {
	svc := newService(&fakeRepo{getErr: errors.New("db down")}, &fakeStorage{})
	assert.Error(t, svc.Refresh(context.Background()))
}

func TestUpdateWithBackground(t *testing.T) {
	repo, store := &fakeRepo{}, &fakeStorage{}
	svc := newService(repo, store)

	err := svc.Update(context.Background(), interfaces.UpdateSettingsCommand{
		BrandName:   " Burger Bros ",
		TextColor:   "#FFFFFF",
		AccentColor: "#ff5500",
		Background:  &interfaces.Upload{Filename: "wall.PNG", ContentType: "image/png", Body: strings.NewReader("png")},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"bg-1700000000123.png"}, store.names)
	got := svc.Get()
	require.NotNil(t, got)
	assert.Equal(t, "Burger Bros", got.BrandName)
	assert.Equal(t, "http://files/storage/bg-1700000000123.png", got.BackgroundImageURL)
}

func TestUpdateKeepsBackgroundAndRejectsBadColors(t *testing.T) {
	repo := &fakeRepo{row: &domain.Settings{
		BrandName: "Old", TextColor: "#000000", AccentColor: "#111111", BackgroundImageURL: "http://bg",
	}}
	svc := newService(repo, &fakeStorage{})
	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))

	require.NoError(t, svc.Update(ctx, interfaces.UpdateSettingsCommand{
		BrandName: "New", TextColor: "#ffffff", AccentColor: "#222222",
	}))
	assert.Equal(t, "http://bg", svc.Get().BackgroundImageURL)

	err := svc.Update(ctx, interfaces.UpdateSettingsCommand{BrandName: "X", TextColor: "red", AccentColor: "#222222"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, "New", svc.Get().BrandName)
}

func TestSetBackground(t *testing.T) {
	repo, store := &fakeRepo{}, &fakeStorage{}
	svc := newService(repo, store)

	url, err := svc.SetBackground(context.Background(), interfaces.Upload{Filename: "a.jpg", Body: strings.NewReader("x")})
	require.NoError(t, err)

	assert.Equal(t, "http://files/storage/bg-1700000000123.jpg", url)
	assert.Equal(t, domain.DefaultSettings().BrandName, svc.Get().BrandName)
}
