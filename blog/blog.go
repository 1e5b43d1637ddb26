// Package blog serves the public reading views: a paginated article index
// and a per-article page rendered from the stored markdown content.
package blog

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"artikel/analytics"
	"artikel/mockapi"
	"artikel/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks (GFM set)
		extension.Linkify, // linkify raw URLs
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // allow raw HTML passthrough in Markdown
	),
)

const pageSize = 10

type Module struct {
	backend   *mockapi.Backend
	analytics *analytics.Module
	log       *zap.SugaredLogger
	templates *template.Template
}

func NewModule(backend *mockapi.Backend, analyticsModule *analytics.Module, log *zap.SugaredLogger) *Module {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Module{
		backend:   backend,
		analytics: analyticsModule,
		log:       log,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func (m *Module) RegisterRoutes(router *gin.Engine) {
	readGroup := router.Group("/read")
	{
		readGroup.GET("", m.index)
		readGroup.GET("/:slug", m.article)
	}
}

// renderedSection is a section with its markdown converted for the template.
type renderedSection struct {
	Title   string
	Content template.HTML
}

func (m *Module) render(c *gin.Context, status int, name string, data any) {
	var buf bytes.Buffer
	if err := m.templates.ExecuteTemplate(&buf, name, data); err != nil {
		m.log.Errorw("template render failed", "template", name, "error", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (m *Module) index(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}

	list, err := m.backend.ListArticles(c.Request.Context(), models.ArticleQuery{
		Page:     page,
		Limit:    pageSize,
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		m.render(c, http.StatusInternalServerError, "read_error.html", gin.H{
			"error": "failed to load articles",
		})
		return
	}

	totalPages := (list.Total + list.Limit - 1) / list.Limit
	m.render(c, http.StatusOK, "read_index.html", gin.H{
		"articles":   list.Articles,
		"page":       list.Page,
		"totalPages": totalPages,
		"hasPrev":    list.Page > 1,
		"hasNext":    list.Page < totalPages,
		"prevPage":   list.Page - 1,
		"nextPage":   list.Page + 1,
		"search":     c.Query("search"),
		"category":   c.Query("category"),
	})
}

func (m *Module) article(c *gin.Context) {
	slug := c.Param("slug")

	rec, err := m.backend.RecordBySlug(c.Request.Context(), slug)
	if err != nil {
		m.render(c, http.StatusNotFound, "read_error.html", gin.H{
			"error": "article not found",
		})
		return
	}

	m.analytics.TrackVisit(c, rec.ID)

	var intro, conclusion template.HTML
	var sections []renderedSection
	if rec.Content != nil {
		intro = template.HTML(renderMarkdown(rec.Content.Introduction))
		conclusion = template.HTML(renderMarkdown(rec.Content.Conclusion))
		for _, s := range rec.Content.Sections {
			sections = append(sections, renderedSection{
				Title:   s.Title,
				Content: template.HTML(renderMarkdown(s.Content)),
			})
		}
	} else {
		intro = template.HTML(renderMarkdown(rec.Description))
	}

	m.render(c, http.StatusOK, "read_article.html", gin.H{
		"article":    rec,
		"intro":      intro,
		"sections":   sections,
		"conclusion": conclusion,
	})
}

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		// keep the page up even when conversion fails
		return content
	}
	return buf.String()
}
