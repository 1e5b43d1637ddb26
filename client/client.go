// Package client is the single entry point callers use to reach the article
// API. It picks the mock or HTTP backend per resource once at construction,
// persists the active bearer token, and folds every outcome into the
// uniform response envelope.
package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"artikel/httpapi"
	"artikel/mockapi"
	"artikel/models"
	"artikel/store"
)

// Config selects the backends and parameterizes the HTTP path.
type Config struct {
	// BaseURL of the remote API, used when UseMockAPI is false.
	BaseURL string
	// UseMockAPI routes auth and category calls to the local mock backend.
	// Articles are always mock-backed regardless of this flag; that is a
	// product decision, not an artifact.
	UseMockAPI bool
	// Timeout for remote requests.
	Timeout time.Duration
}

// DefaultConfig mirrors the documented API client constants.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://test-fe.mysellerpintar.com/api",
		UseMockAPI: true,
		Timeout:    10 * time.Second,
	}
}

// AuthBackend is the auth surface shared by the mock and HTTP paths.
type AuthBackend interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, token string, patch models.ProfilePatch) (*models.UserProfile, error)
}

// ArticleBackend is the article surface shared by the mock and HTTP paths.
type ArticleBackend interface {
	ListArticles(ctx context.Context, q models.ArticleQuery) (*models.ArticleList, error)
	GetArticle(ctx context.Context, id int) (*models.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error)
	CreateArticle(ctx context.Context, in models.ArticleInput) (*models.Article, error)
	UpdateArticle(ctx context.Context, id int, patch models.ArticlePatch) (*models.Article, error)
	DeleteArticle(ctx context.Context, id int) error
}

// CategoryBackend is the category surface shared by the mock and HTTP paths.
type CategoryBackend interface {
	ListCategories(ctx context.Context, q models.CategoryQuery) (*models.CategoryList, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int, patch models.CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

// Client is the API facade. Exactly one token is active at a time; it is
// loaded from the store at construction and kept in sync with it.
type Client struct {
	store store.Store

	mu    sync.RWMutex
	token string

	auth       AuthBackend
	articles   ArticleBackend
	categories CategoryBackend
}

// New builds a facade over st. Backend selection happens here, once; call
// sites have no mock/real branching.
func New(cfg Config, st store.Store) *Client {
	c := &Client{store: st}
	c.token, _ = store.LoadToken(st)

	mock := mockapi.New(st)
	c.articles = mock
	if cfg.UseMockAPI {
		c.auth = mock
		c.categories = mock
	} else {
		remote := httpapi.New(cfg.BaseURL, cfg.Timeout, c.Token)
		c.auth = remote
		c.categories = remote
	}
	return c
}

// Token returns the active bearer token, or "" when unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// IsAuthenticated reports whether a token is present.
func (c *Client) IsAuthenticated() bool {
	return c.Token() != ""
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	_ = store.SaveToken(c.store, token)
}

func (c *Client) clearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	_ = store.ClearToken(c.store)
}

// --- auth ---

// Login authenticates and stores the issued token on success.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) models.Response[models.AuthResult] {
	res, err := c.auth.Login(ctx, req)
	if err != nil {
		return models.FailErr[models.AuthResult](err)
	}
	c.setToken(res.Token)
	return models.OK(*res)
}

// Register creates an account; registration is an implicit login.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) models.Response[models.AuthResult] {
	res, err := c.auth.Register(ctx, req)
	if err != nil {
		return models.FailErr[models.AuthResult](err)
	}
	c.setToken(res.Token)
	return models.OK(*res)
}

// Logout destroys the active token. A failed remote logout still clears the
// local token.
func (c *Client) Logout(ctx context.Context) {
	_ = c.auth.Logout(ctx, c.Token())
	c.clearToken()
}

// Profile fetches the account the active token resolves to.
func (c *Client) Profile(ctx context.Context) models.Response[models.UserProfile] {
	res, err := c.auth.Profile(ctx, c.Token())
	if err != nil {
		return models.FailErr[models.UserProfile](err)
	}
	return models.OK(*res)
}

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, patch models.ProfilePatch) models.Response[models.UserProfile] {
	res, err := c.auth.UpdateProfile(ctx, c.Token(), patch)
	if err != nil {
		return models.FailErr[models.UserProfile](err)
	}
	return models.OK(*res)
}

// --- articles ---

func (c *Client) ListArticles(ctx context.Context, q models.ArticleQuery) models.Response[models.ArticleList] {
	res, err := c.articles.ListArticles(ctx, q)
	if err != nil {
		return models.FailErr[models.ArticleList](err)
	}
	return models.OK(*res)
}

func (c *Client) GetArticle(ctx context.Context, id int) models.Response[models.Article] {
	res, err := c.articles.GetArticle(ctx, id)
	if err != nil {
		return models.FailErr[models.Article](err)
	}
	return models.OK(*res)
}

func (c *Client) GetArticleBySlug(ctx context.Context, slug string) models.Response[models.Article] {
	res, err := c.articles.GetArticleBySlug(ctx, slug)
	if err != nil {
		return models.FailErr[models.Article](err)
	}
	return models.OK(*res)
}

// CreateArticle returns a non-nil error only for the fail-fast
// authentication guard on the real-API path; every other failure is folded
// into the envelope.
func (c *Client) CreateArticle(ctx context.Context, in models.ArticleInput) (models.Response[models.Article], error) {
	res, err := c.articles.CreateArticle(ctx, in)
	if errors.Is(err, models.ErrUnauthenticated) {
		return models.Response[models.Article]{}, err
	}
	if err != nil {
		return models.FailErr[models.Article](err), nil
	}
	return models.OK(*res), nil
}

func (c *Client) UpdateArticle(ctx context.Context, id int, patch models.ArticlePatch) (models.Response[models.Article], error) {
	res, err := c.articles.UpdateArticle(ctx, id, patch)
	if errors.Is(err, models.ErrUnauthenticated) {
		return models.Response[models.Article]{}, err
	}
	if err != nil {
		return models.FailErr[models.Article](err), nil
	}
	return models.OK(*res), nil
}

func (c *Client) DeleteArticle(ctx context.Context, id int) (models.Response[struct{}], error) {
	err := c.articles.DeleteArticle(ctx, id)
	if errors.Is(err, models.ErrUnauthenticated) {
		return models.Response[struct{}]{}, err
	}
	if err != nil {
		return models.FailErr[struct{}](err), nil
	}
	return models.OK(struct{}{}), nil
}

// --- categories ---

func (c *Client) ListCategories(ctx context.Context, q models.CategoryQuery) models.Response[models.CategoryList] {
	res, err := c.categories.ListCategories(ctx, q)
	if err != nil {
		return models.FailErr[models.CategoryList](err)
	}
	return models.OK(*res)
}

func (c *Client) GetCategory(ctx context.Context, id int) models.Response[models.Category] {
	res, err := c.categories.GetCategory(ctx, id)
	if err != nil {
		return models.FailErr[models.Category](err)
	}
	return models.OK(*res)
}

func (c *Client) CreateCategory(ctx context.Context, req models.CategoryRequest) (models.Response[models.Category], error) {
	res, err := c.categories.CreateCategory(ctx, req)
	if errors.Is(err, models.ErrUnauthenticated) {
		return models.Response[models.Category]{}, err
	}
	if err != nil {
		return models.FailErr[models.Category](err), nil
	}
	return models.OK(*res), nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int, patch models.CategoryPatch) (models.Response[models.Category], error) {
	res, err := c.categories.UpdateCategory(ctx, id, patch)
	if errors.Is(err, models.ErrUnauthenticated) {
		return models.Response[models.Category]{}, err
	}
	if err != nil {
		return models.FailErr[models.Category](err), nil
	}
	return models.OK(*res), nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int) (models.Response[struct{}], error) {
	err := c.categories.DeleteCategory(ctx, id)
	if errors.Is(err, models.ErrUnauthenticated) {
		return models.Response[struct{}]{}, err
	}
	if err != nil {
		return models.FailErr[struct{}](err), nil
	}
	return models.OK(struct{}{}), nil
}
