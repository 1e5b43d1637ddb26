// Package server exposes the article API over HTTP with gin. It serves the
// same wire contract the client facade consumes, with the mock backend's
// business logic as its engine and JWT bearer tokens instead of mock tokens.
package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artikel/analytics"
	"artikel/cache"
	"artikel/mockapi"
	"artikel/models"
)

type Module struct {
	backend   *mockapi.Backend
	analytics *analytics.Module
	pages     *cache.Cache
	log       *zap.SugaredLogger
}

func NewModule(backend *mockapi.Backend, analyticsModule *analytics.Module, pages *cache.Cache, log *zap.SugaredLogger) *Module {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Module{backend: backend, analytics: analyticsModule, pages: pages, log: log}
}

func (m *Module) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/auth/login", m.login)
		api.POST("/auth/register", m.register)
		api.POST("/auth/logout", m.logout)

		api.GET("/user/profile", m.requireAuth, m.profile)
		api.PUT("/user/profile", m.requireAuth, m.updateProfile)

		api.GET("/articles", m.listArticles)
		api.GET("/articles/slug/:slug", m.getArticleBySlug)
		api.GET("/articles/:id", m.getArticle)
		api.GET("/articles/:id/stats", m.requireAuth, m.requireAdmin, m.articleStats)
		api.POST("/articles", m.requireAuth, m.requireAdmin, m.createArticle)
		api.PUT("/articles/:id", m.requireAuth, m.requireAdmin, m.updateArticle)
		api.DELETE("/articles/:id", m.requireAuth, m.requireAdmin, m.deleteArticle)

		api.GET("/analytics/summary", m.requireAuth, m.requireAdmin, m.analyticsSummary)

		api.GET("/categories", m.listCategories)
		api.GET("/categories/:id", m.getCategory)
		api.POST("/categories", m.requireAuth, m.requireAdmin, m.createCategory)
		api.PUT("/categories/:id", m.requireAuth, m.requireAdmin, m.updateCategory)
		api.DELETE("/categories/:id", m.requireAuth, m.requireAdmin, m.deleteCategory)
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// requireAuth resolves the bearer token to a user and stores it in the
// request context.
func (m *Module) requireAuth(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		m.fail(c, models.ErrUnauthenticated)
		c.Abort()
		return
	}
	user, err := m.backend.Profile(c.Request.Context(), token)
	if err != nil {
		m.fail(c, models.ErrUnauthenticated)
		c.Abort()
		return
	}
	c.Set("user", *user)
	c.Next()
}

func (m *Module) requireAdmin(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok || user.Role != models.RoleAdmin {
		m.fail(c, models.ErrForbidden)
		c.Abort()
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) (models.UserProfile, bool) {
	v, ok := c.Get("user")
	if !ok {
		return models.UserProfile{}, false
	}
	user, ok := v.(models.UserProfile)
	return user, ok
}

// statusFor maps taxonomy errors to HTTP statuses. The body is always the
// envelope; the status line is for HTTP clients that look no further.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (m *Module) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		m.log.Errorw("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, models.FailErr[any](err))
}

func ok[T any](c *gin.Context, status int, data T) {
	c.JSON(status, models.OK(data))
}

// clearPage drops the cached reading view for a slug. Without this a title
// edit would keep serving the old page under the old slug until the TTL.
func (m *Module) clearPage(slug string) {
	if m.pages == nil || slug == "" {
		return
	}
	if err := m.pages.Clear(slug); err != nil {
		m.log.Errorw("clearing cached page failed", "slug", slug, "error", err)
	}
}

// --- auth handlers ---

func (m *Module) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail[any]("invalid request body"))
		return
	}
	res, err := m.backend.Login(c.Request.Context(), req)
	if err != nil {
		m.fail(c, err)
		return
	}
	ok(c, http.StatusOK, *res)
}

func (m *Module) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail[any]("invalid request body"))
		return
	}
	res, err := m.backend.Register(c.Request.Context(), req)
	if err != nil {
		m.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, *res)
}

func (m *Module) logout(c *gin.Context) {
	_ = m.backend.Logout(c.Request.Context(), bearerToken(c))
	ok(c, http.StatusOK, struct{}{})
}

func (m *Module) profile(c *gin.Context) {
	user, _ := currentUser(c)
	ok(c, http.StatusOK, user)
}

func (m *Module) updateProfile(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail[any]("invalid request body"))
		return
	}
	res, err := m.backend.UpdateProfile(c.Request.Context(), bearerToken(c), patch)
	if err != nil {
		m.fail(c, err)
		return
	}
	ok(c, http.StatusOK, *res)
}

// --- article handlers ---

func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

func (m *Module) listArticles(c *gin.Context) {
	q := models.ArticleQuery{
		Page:     intQuery(c, "page"),
		Limit:    intQuery(c, "limit"),
		Search:   c.Query("search"),
		Category: c.Query("category"),
		From:     c.Query("from"),
		SortBy:   c.Query("sortBy"),
	}
	res, err := m.backend.ListArticles(c.Request.Context(), q)
	if err != nil {
		m.fail(c, err)
		return
	}
	ok(c, http.StatusOK, *res)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.Fail[any]("invalid id"))
		return 0, false
	}
	return id, true
}

func (m *Module) getArticle(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	res, err := m.backend.GetArticle(c.Request.Context(), id)
	if err != nil {
		m.fail(c, err)
		return
	}
	ok(c, http.StatusOK, *res)
}

func (m *Module) getArticleBySlug(c *gin.Context) {
	res, err := m.backend.GetArticleBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		m.fail(c, err)
		return
	}
	ok(c, http.StatusOK, *res)
}

func (m *Module) articleStats(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if _, err := m.backend.GetArticle(c.Request.Context(), id); err != nil {
		m.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"article_id": id, "visits": m.analytics.GetArticleVisitCount(id)})
}

// analyticsSummary reports site-wide visit aggregates for the last 30 days.
func (m *Module) analyticsSummary(c *gin.Context) {
	const days = 30
	ok(c, http.StatusOK, gin.H{
		"visits_by_day": m.analytics.GetVisitsByDay(days),
		"top_articles":  m.analytics.GetTopArticles(days, 10),
	})
}

func (m *Module) createArticle(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail[any]("invalid request body"))
		return
	}
	res, err := m.backend.CreateArticle(c.Request.Context(), in)
	if err != nil {
		m.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, *res)
}

func (m *Module) updateArticle(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var patch models.ArticlePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail[any]("invalid request body"))
		return
	}
	var oldSlug string
	if prev, err := m.backend.GetArticle(c.Request.Context(), id); err == nil {
		oldSlug = prev.Slug
	}
	res, err := m.backend.UpdateArticle(c.Request.Context(), id, patch)
	if err != nil {
		m.fail(c, err)
		return
	}
	// a title edit moves the page to a new slug; drop both
	m.clearPage(oldSlug)
	if res.Slug != oldSlug {
		m.clearPage(res.Slug)
	}
	ok(c, http.StatusOK, *res)
}

func (m *Module) deleteArticle(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var slug string
	if prev, err := m.backend.GetArticle(c.Request.Context(), id); err == nil {
		slug = prev.Slug
	}
	if err := m.backend.DeleteArticle(c.Request.Context(), id); err != nil {
		m.fail(c, err)
		return
	}
	m.clearPage(slug)
	ok(c, http.StatusOK, struct{}{})
}

// --- category handlers ---

func (m *Module) listCategories(c *gin.Context) {
	q := models.CategoryQuery{
		Page:   intQuery(c, "page"),
		Limit:  intQuery(c, "limit"),
		Search: c.Query("search"),
	}
	res, err := m.backend.ListCategories(c.Request.Context(), q)
	if err != nil {
		m.fail(c, err)
		return
	}
	ok(c, http.StatusOK, *res)
}

func (m *Module) getCategory(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	res, err := m.backend.GetCategory(c.Request.Context(), id)
	if err != nil {
		m.fail(c, err)
		return
	}
	ok(c, http.StatusOK, *res)
}

func (m *Module) createCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail[any]("invalid request body"))
		return
	}
	res, err := m.backend.CreateCategory(c.Request.Context(), req)
	if err != nil {
		m.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, *res)
}

func (m *Module) updateCategory(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var patch models.CategoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail[any]("invalid request body"))
		return
	}
	res, err := m.backend.UpdateCategory(c.Request.Context(), id, patch)
	if err != nil {
		m.fail(c, err)
		return
	}
	ok(c, http.StatusOK, *res)
}

func (m *Module) deleteCategory(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := m.backend.DeleteCategory(c.Request.Context(), id); err != nil {
		m.fail(c, err)
		return
	}
	ok(c, http.StatusOK, struct{}{})
}
