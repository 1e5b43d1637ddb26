// Package httpapi talks to a remote article API over HTTP. It mirrors the
// mock backend's operation set; failures come back as taxonomy errors, never
// panics, so the facade can fold them into the uniform envelope.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"artikel/models"
)

// TokenSource yields the bearer token to attach, or "" for anonymous calls.
type TokenSource func() string

// Client is the real-API backend. One Client serves auth, article and
// category operations against the same base URL.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

// New builds a client for baseURL. The timeout is enforced on every request.
func New(baseURL string, timeout time.Duration, token TokenSource) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
	}
}

// envelope is the wire response shape before the data payload is decoded.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// do issues one JSON request and decodes the envelope. A transport failure
// maps to ErrNetwork, a non-2xx status to ErrHTTP with a message derived
// from the body or the status line.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}

	var env envelope
	if jsonErr := json.Unmarshal(raw, &env); jsonErr != nil {
		env = envelope{Message: strings.TrimSpace(string(raw))}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := env.Message
		if message == "" {
			message = env.Error
		}
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return fmt.Errorf("%w: %s", models.ErrHTTP, message)
	}
	if !env.Success && env.Message != "" {
		return fmt.Errorf("%w: %s", models.ErrHTTP, env.Message)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// requireToken is the fail-fast guard on mutating calls: it raises before
// any request is issued, unlike the envelope policy used everywhere else.
func (c *Client) requireToken() error {
	if c.token() == "" {
		return models.ErrUnauthenticated
	}
	return nil
}

// --- auth ---

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	var out models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	var out models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) Profile(ctx context.Context, token string) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/user/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, patch models.ProfilePatch) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := c.do(ctx, http.MethodPut, "/user/profile", patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- articles ---

func articleQueryString(q models.ArticleQuery) string {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.From != "" {
		params.Set("from", q.From)
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

func (c *Client) ListArticles(ctx context.Context, q models.ArticleQuery) (*models.ArticleList, error) {
	var out models.ArticleList
	if err := c.do(ctx, http.MethodGet, "/articles"+articleQueryString(q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	var out models.Article
	if err := c.do(ctx, http.MethodGet, "/articles/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var out models.Article
	if err := c.do(ctx, http.MethodGet, "/articles/slug/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateArticle(ctx context.Context, in models.ArticleInput) (*models.Article, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var out models.Article
	if err := c.do(ctx, http.MethodPost, "/articles", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateArticle(ctx context.Context, id int, patch models.ArticlePatch) (*models.Article, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var out models.Article
	if err := c.do(ctx, http.MethodPut, "/articles/"+strconv.Itoa(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id int) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/articles/"+strconv.Itoa(id), nil, nil)
}

// --- categories ---

func (c *Client) ListCategories(ctx context.Context, q models.CategoryQuery) (*models.CategoryList, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	path := "/categories"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var out models.CategoryList
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	var out models.Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var out models.Category
	if err := c.do(ctx, http.MethodPost, "/categories", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int, patch models.CategoryPatch) (*models.Category, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var out models.Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+strconv.Itoa(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/categories/"+strconv.Itoa(id), nil, nil)
}
