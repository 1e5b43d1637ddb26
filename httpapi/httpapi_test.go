package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"artikel/models"
)

func staticToken(token string) TokenSource {
	return func() string { return token }
}

func envelopeJSON(data any) []byte {
	raw, _ := json.Marshal(map[string]any{"success": true, "data": data})
	return raw
}

func TestLoginDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var req models.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin", req.Username)

		w.Write(envelopeJSON(models.AuthResult{
			Token: "jwt-abc",
			User:  models.UserProfile{ID: 1, Username: "admin", Role: "admin"},
		}))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	res, err := c.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "password123"})
	assert.NoError(t, err)
	assert.Equal(t, "jwt-abc", res.Token)
	assert.Equal(t, "admin", res.User.Username)
}

func TestBearerHeaderIsAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write(envelopeJSON(models.UserProfile{ID: 1}))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticToken("tok-123"))
	_, err := c.Profile(context.Background(), "tok-123")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNonOKStatusMapsToHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "invalid username or password"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	_, err := c.Login(context.Background(), models.LoginRequest{Username: "x", Password: "y"})
	assert.ErrorIs(t, err, models.ErrHTTP)
	assert.Contains(t, err.Error(), "invalid username or password")
}

func TestNonJSONErrorBodyStillMaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	_, err := c.ListArticles(context.Background(), models.ArticleQuery{})
	assert.ErrorIs(t, err, models.ErrHTTP)
	assert.Contains(t, err.Error(), "bad gateway")
}

func TestTransportFailureMapsToNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, time.Second, nil)
	_, err := c.ListArticles(context.Background(), models.ArticleQuery{})
	assert.ErrorIs(t, err, models.ErrNetwork)
}

func TestMutatingCallsFailFastWithoutToken(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write(envelopeJSON(struct{}{}))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticToken(""))
	ctx := context.Background()

	_, err := c.CreateArticle(ctx, models.ArticleInput{Title: "x"})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	_, err = c.UpdateArticle(ctx, 1, models.ArticlePatch{})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	assert.ErrorIs(t, c.DeleteArticle(ctx, 1), models.ErrUnauthenticated)
	_, err = c.CreateCategory(ctx, models.CategoryRequest{Name: "x"})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	_, err = c.UpdateCategory(ctx, 1, models.CategoryPatch{})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	assert.ErrorIs(t, c.DeleteCategory(ctx, 1), models.ErrUnauthenticated)

	// the guard fires before any request goes out
	assert.Equal(t, 0, requests)
}

func TestReadsDoNotRequireToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelopeJSON(models.ArticleList{Total: 0, Page: 1, Limit: 10}))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticToken(""))
	list, err := c.ListArticles(context.Background(), models.ArticleQuery{})
	assert.NoError(t, err)
	assert.Equal(t, 1, list.Page)
}

func TestArticleQueryString(t *testing.T) {
	assert.Equal(t, "", articleQueryString(models.ArticleQuery{}))

	qs := articleQueryString(models.ArticleQuery{Page: 2, Limit: 5, Search: "go lang", Category: "Tech"})
	assert.Contains(t, qs, "page=2")
	assert.Contains(t, qs, "limit=5")
	assert.Contains(t, qs, "search=go+lang")
	assert.Contains(t, qs, "category=Tech")

	qs = articleQueryString(models.ArticleQuery{From: "2025-01-01", SortBy: "date"})
	assert.Contains(t, qs, "from=2025-01-01")
	assert.Contains(t, qs, "sortBy=date")
}

func TestGetArticleBySlugEscapesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write(envelopeJSON(models.Article{ID: 1}))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	_, err := c.GetArticleBySlug(context.Background(), "hello-world")
	assert.NoError(t, err)
	assert.Equal(t, "/articles/slug/hello-world", gotPath)
}
