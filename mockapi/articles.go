package mockapi

import (
	"context"
	"strings"

	"artikel/models"
	"artikel/store"
)

func (b *Backend) loadArticles() ([]models.ArticleRecord, error) {
	return store.LoadCollection(b.store, store.KeyArticles, seedArticles())
}

func (b *Backend) saveArticles(articles []models.ArticleRecord) error {
	return store.SaveCollection(b.store, store.KeyArticles, articles)
}

// ListArticles filters, then paginates. Search is a case-insensitive
// substring match against title or description; Total reports the filtered
// count so callers can compute page counts. From and SortBy are ignored.
func (b *Backend) ListArticles(ctx context.Context, q models.ArticleQuery) (*models.ArticleList, error) {
	page, limit := clampPage(q.Page, q.Limit)
	articles, err := b.loadArticles()
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(q.Search)
	filtered := make([]models.ArticleRecord, 0, len(articles))
	for _, a := range articles {
		if q.Category != "" && !strings.EqualFold(a.Category, q.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Description), search) {
			continue
		}
		filtered = append(filtered, a)
	}

	pageItems := paginate(filtered, page, limit)
	mapped := make([]models.Article, 0, len(pageItems))
	for _, a := range pageItems {
		mapped = append(mapped, a.Public())
	}
	return &models.ArticleList{Articles: mapped, Total: len(filtered), Page: page, Limit: limit}, nil
}

func (b *Backend) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	articles, err := b.loadArticles()
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		if a.ID == id {
			pub := a.Public()
			return &pub, nil
		}
	}
	return nil, models.ErrNotFound
}

// GetArticleBySlug matches by the slug derived from the current title.
func (b *Backend) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	articles, err := b.loadArticles()
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		if models.Slugify(a.Title) == slug {
			pub := a.Public()
			return &pub, nil
		}
	}
	return nil, models.ErrNotFound
}

// RecordBySlug returns the full stored record, structured content included.
// The reading views need the sections the public shape collapses away.
func (b *Backend) RecordBySlug(ctx context.Context, slug string) (*models.ArticleRecord, error) {
	articles, err := b.loadArticles()
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		if models.Slugify(a.Title) == slug {
			return &a, nil
		}
	}
	return nil, models.ErrNotFound
}

// CreateArticle prepends the new record so listings stay most-recent-first.
func (b *Backend) CreateArticle(ctx context.Context, in models.ArticleInput) (*models.Article, error) {
	b.articlesMu.Lock()
	defer b.articlesMu.Unlock()

	articles, err := b.loadArticles()
	if err != nil {
		return nil, err
	}
	date := in.PublishedAt
	if date == "" {
		date = b.dateStamp()
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	rec := models.ArticleRecord{
		ID:          nextID(articles, func(a models.ArticleRecord) int { return a.ID }),
		Title:       in.Title,
		Description: in.Description,
		Date:        date,
		Author:      in.Author,
		Category:    in.Category,
		Tags:        tags,
		HeroImage:   in.ImageURL,
	}
	if in.Content != "" {
		rec.Content = &models.ArticleContent{Introduction: in.Content, Sections: []models.ArticleSection{}}
	}
	if err := b.saveArticles(append([]models.ArticleRecord{rec}, articles...)); err != nil {
		return nil, err
	}
	pub := rec.Public()
	return &pub, nil
}

// UpdateArticle applies a shallow partial merge over the stored record.
// A content patch replaces only the introduction and keeps the previous
// sections and conclusion.
func (b *Backend) UpdateArticle(ctx context.Context, id int, patch models.ArticlePatch) (*models.Article, error) {
	b.articlesMu.Lock()
	defer b.articlesMu.Unlock()

	articles, err := b.loadArticles()
	if err != nil {
		return nil, err
	}
	for i := range articles {
		if articles[i].ID != id {
			continue
		}
		a := &articles[i]
		if patch.Title != nil {
			a.Title = *patch.Title
		}
		if patch.Description != nil {
			a.Description = *patch.Description
		}
		if patch.PublishedAt != nil {
			a.Date = *patch.PublishedAt
		}
		if patch.Author != nil {
			a.Author = *patch.Author
		}
		if patch.Category != nil {
			a.Category = *patch.Category
		}
		if patch.Tags != nil {
			a.Tags = *patch.Tags
		}
		if patch.ImageURL != nil {
			a.HeroImage = *patch.ImageURL
		}
		if patch.Content != nil {
			content := models.ArticleContent{Introduction: *patch.Content, Sections: []models.ArticleSection{}}
			if a.Content != nil {
				content.Sections = a.Content.Sections
				content.Conclusion = a.Content.Conclusion
			}
			a.Content = &content
		}
		if err := b.saveArticles(articles); err != nil {
			return nil, err
		}
		pub := a.Public()
		return &pub, nil
	}
	return nil, models.ErrNotFound
}

// DeleteArticle filters the record out of the collection.
func (b *Backend) DeleteArticle(ctx context.Context, id int) error {
	b.articlesMu.Lock()
	defer b.articlesMu.Unlock()

	articles, err := b.loadArticles()
	if err != nil {
		return err
	}
	next := make([]models.ArticleRecord, 0, len(articles))
	for _, a := range articles {
		if a.ID != id {
			next = append(next, a)
		}
	}
	if len(next) == len(articles) {
		return models.ErrNotFound
	}
	return b.saveArticles(next)
}
