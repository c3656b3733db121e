package content

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/pkg/filedb"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	uploadErr error
	uploads   map[string]string // key -> content type
}

func (f *fakeS3) UploadObject(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if f.uploads == nil {
		f.uploads = map[string]string{}
	}
	f.uploads[key] = contentType
	return "https://bucket.s3.region.amazonaws.com/" + key, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, key string) error { return nil }

func newContentFixture(t *testing.T) (ContentService, *fakeS3) {
	t.Helper()
	store, err := filedb.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	s3 := &fakeS3{}
	return NewContentService(NewContentRepository(store), s3), s3
}

func TestCreateAndListContent(t *testing.T) {
	svc, _ := newContentFixture(t)
	userID := uuid.NewString()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateContentItem(context.Background(), userID, domain.ContentTypeStory,
			fmt.Sprintf("Story %d", i), "Once upon a time.")
		require.NoError(t, err)
	}

	items, count, err := svc.GetUserContent(context.Background(), userID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Len(t, items, 2)

	items, _, err = svc.GetUserContent(context.Background(), userID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestGetUserContentIsScopedToOwner(t *testing.T) {
	svc, _ := newContentFixture(t)
	owner := uuid.NewString()
	other := uuid.NewString()

	_, err := svc.CreateContentItem(context.Background(), owner, domain.ContentTypeStory, "Mine", "text")
	require.NoError(t, err)

	items, count, err := svc.GetUserContent(context.Background(), other, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, items)
}

func TestToggleFavorite(t *testing.T) {
	svc, _ := newContentFixture(t)
	userID := uuid.NewString()

	item, err := svc.CreateContentItem(context.Background(), userID, domain.ContentTypeColoring, "Dino", "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)

	toggled, err := svc.ToggleFavorite(context.Background(), item.ID, userID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	toggled, err = svc.ToggleFavorite(context.Background(), item.ID, userID)
	require.NoError(t, err)
	assert.False(t, toggled.IsFavorite)
}

func TestOwnershipEnforcement(t *testing.T) {
	svc, _ := newContentFixture(t)
	owner := uuid.NewString()
	intruder := uuid.NewString()

	item, err := svc.CreateContentItem(context.Background(), owner, domain.ContentTypeStory, "Mine", "text")
	require.NoError(t, err)

	_, err = svc.ToggleFavorite(context.Background(), item.ID, intruder)
	require.ErrorIs(t, err, domain.ErrUnauthorizedContentAccess)

	err = svc.DeleteContentItem(context.Background(), item.ID, intruder)
	require.ErrorIs(t, err, domain.ErrUnauthorizedContentAccess)

	_, err = svc.ExportContentItem(context.Background(), item.ID, intruder)
	require.ErrorIs(t, err, domain.ErrUnauthorizedContentAccess)
}

func TestDeleteContent(t *testing.T) {
	svc, _ := newContentFixture(t)
	userID := uuid.NewString()

	item, err := svc.CreateContentItem(context.Background(), userID, domain.ContentTypeStory, "Mine", "text")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteContentItem(context.Background(), item.ID, userID))

	_, _, err = svc.GetUserContent(context.Background(), userID, 1, 20)
	require.NoError(t, err)

	_, err = svc.ToggleFavorite(context.Background(), item.ID, userID)
	require.ErrorIs(t, err, domain.ErrContentNotFound)
}

func TestExportContentUploadsOnce(t *testing.T) {
	svc, s3 := newContentFixture(t)
	userID := uuid.NewString()

	item, err := svc.CreateContentItem(context.Background(), userID, domain.ContentTypeColoring, "Dino", "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)

	resp, err := svc.ExportContentItem(context.Background(), item.ID, userID)
	require.NoError(t, err)
	assert.Contains(t, resp.ExportURL, item.ID)
	require.Len(t, s3.uploads, 1)
	for key, contentType := range s3.uploads {
		assert.Contains(t, key, "exports/"+userID+"/")
		assert.Equal(t, "image/png", contentType)
	}

	// Second export reuses the cached URL without another upload
	again, err := svc.ExportContentItem(context.Background(), item.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, resp.ExportURL, again.ExportURL)
	assert.Len(t, s3.uploads, 1)
}

func TestExportRejectsNonImagePayload(t *testing.T) {
	svc, _ := newContentFixture(t)
	userID := uuid.NewString()

	item, err := svc.CreateContentItem(context.Background(), userID, domain.ContentTypeStory, "Mine", "just plain text")
	require.NoError(t, err)

	_, err = svc.ExportContentItem(context.Background(), item.ID, userID)
	require.ErrorIs(t, err, domain.ErrContentNotExportable)
}

func TestExportSurfacesUploadFailure(t *testing.T) {
	svc, s3 := newContentFixture(t)
	s3.uploadErr = errors.New("access denied")
	userID := uuid.NewString()

	item, err := svc.CreateContentItem(context.Background(), userID, domain.ContentTypeColoring, "Dino", "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)

	_, err = svc.ExportContentItem(context.Background(), item.ID, userID)
	require.Error(t, err)
}

func TestCreateContentRejectsBadUserID(t *testing.T) {
	svc, _ := newContentFixture(t)

	_, err := svc.CreateContentItem(context.Background(), "not-a-uuid", domain.ContentTypeStory, "x", "y")
	require.ErrorIs(t, err, domain.ErrParseUUID)
}
