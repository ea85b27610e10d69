package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type newsRepo struct{ *memStore }

func (r newsRepo) FindAll(_ context.Context, filter domain.NewsFilter) ([]domain.News, error) {
	return sortedValues(r.news, func(n domain.News) bool {
		if filter.Status != nil && n.Status != *filter.Status {
			return false
		}
		if filter.CategoryID != nil && n.CategoryID != *filter.CategoryID {
			return false
		}
		return filter.Highlighted == nil || n.Highlighted == *filter.Highlighted
	}), nil
}

func (r newsRepo) FindByID(_ context.Context, id uint) (domain.News, error) {
	return find(r.news, "news", id)
}

func (r newsRepo) Create(_ context.Context, n domain.News) (domain.News, error) {
	n.ID = r.nextID()
	r.news[n.ID] = n
	return n, nil
}

func (r newsRepo) Update(_ context.Context, n domain.News) (domain.News, error) {
	r.news[n.ID] = n
	return n, nil
}

func (r newsRepo) SetHighlighted(_ context.Context, id uint, highlighted bool) error {
	n, err := find(r.news, "news", id)
	if err != nil {
		return err
	}
	n.Highlighted = highlighted
	r.news[id] = n
	return nil
}

func (r newsRepo) IncrementViews(_ context.Context, id uint) error {
	n, err := find(r.news, "news", id)
	if err != nil {
		return err
	}
	n.ViewCount++
	r.news[id] = n
	return nil
}

func (r newsRepo) Delete(_ context.Context, id uint) error {
	delete(r.news, id)
	return nil
}

func (r newsRepo) CountImages(_ context.Context, id uint) (int64, error) {
	images := sortedValues(r.images, func(i domain.NewsImage) bool { return i.NewsID == id })
	return int64(len(images)), nil
}

func TestNewsService(t *testing.T) {
	fixed := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	fixNow(t, fixed)

	store := newMemStore()
	store.addAdmin(5)
	store.addCitizen(6)
	store.newsCats[1] = domain.NewsCategory{ID: 1, Name: "Alerts"}
	svc := NewNewsService(newsRepo{store}, catalogRepo{store}, peopleRepo{store})
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.News{Title: "Flood", Content: "...", CategoryID: 1}, 6)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	draft, err := svc.Create(ctx, domain.News{Title: "Flood", Content: "...", CategoryID: 1, Highlighted: true}, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.NewsDraft, draft.Status)
	assert.Nil(t, draft.PublishedAt)
	assert.Equal(t, uint(5), draft.AuthorID)

	highlighted, err := svc.ListHighlighted(ctx)
	require.NoError(t, err)
	assert.Empty(t, highlighted, "drafts are never listed as highlighted")

	published, err := svc.Publish(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NewsPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, fixed, *published.PublishedAt)

	highlighted, err = svc.ListHighlighted(ctx)
	require.NoError(t, err)
	assert.Len(t, highlighted, 1)

	for i := 0; i < 3; i++ {
		_, err = svc.IncrementViews(ctx, draft.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, store.news[draft.ID].ViewCount)

	unset, err := svc.SetHighlight(ctx, draft.ID, false)
	require.NoError(t, err)
	assert.False(t, unset.Highlighted)

	store.images[1] = domain.NewsImage{ID: 1, NewsID: draft.ID, URL: "https://cdn.example.org/1.jpg"}
	err = svc.Delete(ctx, draft.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func newImageService(store *memStore) *NewsImageService {
	return NewNewsImageService(store, imageRepo{store}, newsFinder{store})
}

func countPrimaryImages(store *memStore, newsID uint) int {
	n := 0
	for _, i := range store.images {
		if i.NewsID == newsID && i.IsPrimary {
			n++
		}
	}
	return n
}

func TestNewsImageService_PositionsAndPrimary(t *testing.T) {
	store := newMemStore()
	store.news[1] = domain.News{ID: 1, Title: "Flood"}
	svc := newImageService(store)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.NewsImage{NewsID: 1, URL: "a.jpg", IsPrimary: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)

	second, err := svc.Create(ctx, domain.NewsImage{NewsID: 1, URL: "b.jpg", IsPrimary: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, 1, countPrimaryImages(store, 1))

	_, err = svc.SetPrimary(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, countPrimaryImages(store, 1))
	assert.True(t, store.images[first.ID].IsPrimary)

	ordered, err := svc.Reorder(ctx, 1, map[uint]int{first.ID: 5, second.ID: 2})
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, second.ID, ordered[0].ID)

	_, err = svc.Reorder(ctx, 1, map[uint]int{first.ID: 0, 999: 1})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, 5, store.images[first.ID].Position, "failed reorder is rolled back")

	_, err = svc.Create(ctx, domain.NewsImage{NewsID: 2, URL: "c.jpg"}, nil)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
