package content

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/entities"
	"Storybrush-Backend/pkg/filedb"
	"context"
	"sort"
	"time"
)

type (
	ContentRepository interface {
		CreateContentItem(ctx context.Context, item *entities.ContentItem) error
		GetContentItemByID(ctx context.Context, id string) (*entities.ContentItem, error)
		GetUserContent(ctx context.Context, userID string, page, limit int) ([]*entities.ContentItem, int64, error)
		UpdateContentItem(ctx context.Context, item *entities.ContentItem) error
		DeleteContentItem(ctx context.Context, id string) error
	}

	contentRepository struct {
		store *filedb.Store
	}
)

func NewContentRepository(store *filedb.Store) ContentRepository {
	return &contentRepository{
		store: store,
	}
}

func (r *contentRepository) CreateContentItem(ctx context.Context, item *entities.ContentItem) error {
	return r.store.Update(func(d *filedb.Data) error {
		d.UserContent = append(d.UserContent, item)
		return nil
	})
}

func (r *contentRepository) GetContentItemByID(ctx context.Context, id string) (*entities.ContentItem, error) {
	var found *entities.ContentItem
	err := r.store.View(func(d *filedb.Data) error {
		for _, item := range d.UserContent {
			if item.ID.String() == id {
				clone := *item
				found = &clone
				return nil
			}
		}
		return domain.ErrContentNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *contentRepository) GetUserContent(ctx context.Context, userID string, page, limit int) ([]*entities.ContentItem, int64, error) {
	var items []*entities.ContentItem
	var count int64
	err := r.store.View(func(d *filedb.Data) error {
		for _, item := range d.UserContent {
			if item.UserID.String() == userID {
				clone := *item
				items = append(items, &clone)
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	count = int64(len(items))
	offset := (page - 1) * limit
	if offset >= len(items) {
		return []*entities.ContentItem{}, count, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], count, nil
}

func (r *contentRepository) UpdateContentItem(ctx context.Context, item *entities.ContentItem) error {
	return r.store.Update(func(d *filedb.Data) error {
		for i, existing := range d.UserContent {
			if existing.ID == item.ID {
				item.UpdatedAt = time.Now()
				d.UserContent[i] = item
				return nil
			}
		}
		return domain.ErrContentNotFound
	})
}

func (r *contentRepository) DeleteContentItem(ctx context.Context, id string) error {
	return r.store.Update(func(d *filedb.Data) error {
		for i, item := range d.UserContent {
			if item.ID.String() == id {
				d.UserContent = append(d.UserContent[:i], d.UserContent[i+1:]...)
				return nil
			}
		}
		return domain.ErrContentNotFound
	})
}
