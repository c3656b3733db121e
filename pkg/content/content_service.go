package content

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/entities"
	"Storybrush-Backend/internal/utils/storage"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	ContentService interface {
		CreateContentItem(ctx context.Context, userID, contentType, title, payload string) (*domain.ContentItem, error)
		GetUserContent(ctx context.Context, userID string, page, limit int) ([]*domain.ContentItem, int64, error)
		ToggleFavorite(ctx context.Context, id, userID string) (*domain.ContentItem, error)
		DeleteContentItem(ctx context.Context, id, userID string) error
		// ExportContentItem uploads an image payload to S3 and returns a
		// shareable URL.
		ExportContentItem(ctx context.Context, id, userID string) (*domain.ExportContentResponse, error)
	}

	contentService struct {
		contentRepository ContentRepository
		s3                storage.AwsS3
	}
)

func NewContentService(contentRepository ContentRepository, s3 storage.AwsS3) ContentService {
	return &contentService{
		contentRepository: contentRepository,
		s3:                s3,
	}
}

func (s *contentService) CreateContentItem(ctx context.Context, userID, contentType, title, payload string) (*domain.ContentItem, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	now := time.Now()
	item := &entities.ContentItem{
		ID:      uuid.New(),
		UserID:  userUUID,
		Type:    contentType,
		Title:   title,
		Payload: payload,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.contentRepository.CreateContentItem(ctx, item); err != nil {
		return nil, err
	}

	return toContentItem(item), nil
}

func (s *contentService) GetUserContent(ctx context.Context, userID string, page, limit int) ([]*domain.ContentItem, int64, error) {
	items, count, err := s.contentRepository.GetUserContent(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.ContentItem, 0, len(items))
	for _, item := range items {
		result = append(result, toContentItem(item))
	}
	return result, count, nil
}

func (s *contentService) ToggleFavorite(ctx context.Context, id, userID string) (*domain.ContentItem, error) {
	item, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	item.IsFavorite = !item.IsFavorite
	if err := s.contentRepository.UpdateContentItem(ctx, item); err != nil {
		return nil, err
	}
	return toContentItem(item), nil
}

func (s *contentService) DeleteContentItem(ctx context.Context, id, userID string) error {
	if _, err := s.ownedItem(ctx, id, userID); err != nil {
		return err
	}
	return s.contentRepository.DeleteContentItem(ctx, id)
}

func (s *contentService) ExportContentItem(ctx context.Context, id, userID string) (*domain.ExportContentResponse, error) {
	item, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if item.ExportURL != "" {
		return &domain.ExportContentResponse{ContentID: id, ExportURL: item.ExportURL}, nil
	}

	mimeType, raw, err := decodeDataURI(item.Payload)
	if err != nil {
		return nil, domain.ErrContentNotExportable
	}

	ext := "png"
	if parts := strings.Split(mimeType, "/"); len(parts) == 2 {
		ext = parts[1]
	}
	key := fmt.Sprintf("exports/%s/%s.%s", userID, item.ID.String(), ext)

	url, err := s.s3.UploadObject(ctx, key, mimeType, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	item.ExportURL = url
	if err := s.contentRepository.UpdateContentItem(ctx, item); err != nil {
		return nil, err
	}

	return &domain.ExportContentResponse{ContentID: id, ExportURL: url}, nil
}

func (s *contentService) ownedItem(ctx context.Context, id, userID string) (*entities.ContentItem, error) {
	item, err := s.contentRepository.GetContentItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedContentAccess
	}
	return item, nil
}

func decodeDataURI(payload string) (string, []byte, error) {
	if !strings.HasPrefix(payload, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	rest := strings.TrimPrefix(payload, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep == -1 {
		return "", nil, fmt.Errorf("not a base64 data URI")
	}
	mimeType := rest[:sep]
	raw, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, err
	}
	return mimeType, raw, nil
}

func toContentItem(item *entities.ContentItem) *domain.ContentItem {
	return &domain.ContentItem{
		ID:         item.ID.String(),
		Type:       item.Type,
		Title:      item.Title,
		Payload:    item.Payload,
		IsFavorite: item.IsFavorite,
		ExportURL:  item.ExportURL,
		CreatedAt:  item.CreatedAt,
	}
}
