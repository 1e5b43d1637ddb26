package mockapi

import (
	"context"
	"strings"

	"artikel/models"
	"artikel/store"
)

func (b *Backend) loadCategories() ([]models.Category, error) {
	return store.LoadCollection(b.store, store.KeyCategories, seedCategories())
}

func (b *Backend) saveCategories(categories []models.Category) error {
	return store.SaveCollection(b.store, store.KeyCategories, categories)
}

// ListCategories filters by a case-insensitive substring match on the name,
// then paginates. Total reports the filtered count.
func (b *Backend) ListCategories(ctx context.Context, q models.CategoryQuery) (*models.CategoryList, error) {
	page, limit := clampPage(q.Page, q.Limit)
	categories, err := b.loadCategories()
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(q.Search)
	filtered := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		filtered = append(filtered, c)
	}

	return &models.CategoryList{
		Categories: paginate(filtered, page, limit),
		Total:      len(filtered),
		Page:       page,
		Limit:      limit,
	}, nil
}

func (b *Backend) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	categories, err := b.loadCategories()
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, models.ErrNotFound
}

// CreateCategory appends the new record; categories list oldest-first,
// unlike articles. This asymmetry is intentional.
func (b *Backend) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	b.categoriesMu.Lock()
	defer b.categoriesMu.Unlock()

	categories, err := b.loadCategories()
	if err != nil {
		return nil, err
	}
	now := b.timestamp()
	cat := models.Category{
		ID:          nextID(categories, func(c models.Category) int { return c.ID }),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := b.saveCategories(append(categories, cat)); err != nil {
		return nil, err
	}
	return &cat, nil
}

// UpdateCategory applies a partial merge and refreshes updated_at.
func (b *Backend) UpdateCategory(ctx context.Context, id int, patch models.CategoryPatch) (*models.Category, error) {
	b.categoriesMu.Lock()
	defer b.categoriesMu.Unlock()

	categories, err := b.loadCategories()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID != id {
			continue
		}
		if patch.Name != nil {
			categories[i].Name = *patch.Name
		}
		if patch.Description != nil {
			categories[i].Description = *patch.Description
		}
		categories[i].UpdatedAt = b.timestamp()
		if err := b.saveCategories(categories); err != nil {
			return nil, err
		}
		return &categories[i], nil
	}
	return nil, models.ErrNotFound
}

func (b *Backend) DeleteCategory(ctx context.Context, id int) error {
	b.categoriesMu.Lock()
	defer b.categoriesMu.Unlock()

	categories, err := b.loadCategories()
	if err != nil {
		return err
	}
	next := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(categories) {
		return models.ErrNotFound
	}
	return b.saveCategories(next)
}
