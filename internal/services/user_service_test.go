package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

type fakeStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) EnsureBucket(ctx context.Context) error { return nil }

func (s *fakeStorage) Save(ctx context.Context, path string, reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
	return "/files/" + path, nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

func (s *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[path]
	return ok, nil
}

func newUserFixture() (*UserService, *fakeUserRepo, *fakeStorage) {
	users := newFakeUserRepo()
	store := newFakeStorage()
	return NewUserService(users, store), users, store
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, users, _ := newUserFixture()
	user := users.put(&models.User{Name: "Old Name", Status: models.UserStatusActive})

	bio := "hello"
	resp, err := svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Old Name", resp.Name)
	require.NotNil(t, resp.Bio)
	assert.Equal(t, "hello", *resp.Bio)
}

func TestUploadAvatarStoresFile(t *testing.T) {
	svc, users, store := newUserFixture()
	user := users.put(&models.User{Name: "U", Status: models.UserStatusActive})

	resp, err := svc.UploadAvatar(context.Background(), user.ID, "me.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.NotNil(t, resp.Avatar)
	assert.True(t, strings.HasPrefix(*resp.Avatar, "/files/avatars/"+user.ID+"/"))
	assert.Len(t, store.files, 1)
}

func TestUploadAvatarRejectsUnknownExtension(t *testing.T) {
	svc, users, store := newUserFixture()
	user := users.put(&models.User{Name: "U", Status: models.UserStatusActive})

	_, err := svc.UploadAvatar(context.Background(), user.ID, "evil.exe", strings.NewReader("mz"))
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Empty(t, store.files)
}

func TestDeleteAccountIsTerminal(t *testing.T) {
	svc, users, _ := newUserFixture()
	user := users.put(&models.User{Name: "U", Status: models.UserStatusActive})

	require.NoError(t, svc.DeleteAccount(context.Background(), user.ID))

	stored, err := users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusDeleted, stored.Status)

	// Повторные операции отклоняются
	_, err = svc.GetProfile(context.Background(), user.ID)
	require.ErrorIs(t, err, apperrors.ErrUserNotActive)
	require.ErrorIs(t, svc.DeleteAccount(context.Background(), user.ID), apperrors.ErrUserNotActive)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.GetProfile(context.Background(), "no-such-user")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
