// Package analytics records article visits and answers simple aggregate
// queries over them. A nil module is valid and drops every call, so callers
// never branch on whether analytics is configured.
package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const visitorCookie = "artikel_visitor_id"

// throttleWindow suppresses repeat visits from the same visitor to the same
// article. Refreshes within the window count once.
const throttleWindow = 30 * time.Minute

// ArticleEvent is one recorded visit.
type ArticleEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	ArticleID int       `gorm:"not null;index"`
	CookieID  string    `gorm:"not null;index"`
	Event     string    `gorm:"not null;default:'visit'"`
	IP        string    `gorm:"not null"`
	Language  *string
	Browser   *string
	CreatedAt time.Time `gorm:"index"`
}

type Module struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewModule migrates the events table and returns the module. A nil db
// disables analytics; the returned nil module is safe to use.
func NewModule(db *gorm.DB, log *zap.SugaredLogger) *Module {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if db == nil {
		log.Info("analytics disabled, no database configured")
		return nil
	}
	if err := db.AutoMigrate(&ArticleEvent{}); err != nil {
		log.Errorw("analytics migration failed", "error", err)
		return nil
	}
	return &Module{db: db, log: log}
}

// TrackVisit records a visit to an article, at most once per visitor per
// throttle window.
func (a *Module) TrackVisit(c *gin.Context, articleID int) {
	if a == nil || a.db == nil {
		return
	}

	cookieID := a.getOrCreateCookieID(c)

	var recent ArticleEvent
	err := a.db.Where("cookie_id = ? AND article_id = ? AND created_at > ?",
		cookieID, articleID, time.Now().Add(-throttleWindow)).First(&recent).Error
	if err == nil {
		return
	}

	event := ArticleEvent{
		ArticleID: articleID,
		CookieID:  cookieID,
		Event:     "visit",
		IP:        a.clientIP(c),
		Language:  a.extractLanguage(c),
		Browser:   a.extractBrowser(c.Request.UserAgent()),
		CreatedAt: time.Now(),
	}
	if err := a.db.Create(&event).Error; err != nil {
		a.log.Errorw("saving analytics event failed", "error", err)
	}
}

// getOrCreateCookieID identifies the visitor across requests.
func (a *Module) getOrCreateCookieID(c *gin.Context) string {
	if cookie, err := c.Cookie(visitorCookie); err == nil && cookie != "" {
		return cookie
	}

	data := time.Now().String() + c.ClientIP() + c.Request.UserAgent()
	hash := sha256.Sum256([]byte(data))
	cookieID := hex.EncodeToString(hash[:])

	// 2 years
	c.SetCookie(visitorCookie, cookieID, 60*60*24*365*2, "/", "", false, true)
	return cookieID
}

// clientIP prefers proxy headers over the direct peer address.
func (a *Module) clientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		ips := strings.Split(ip, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func (a *Module) extractBrowser(userAgent string) *string {
	if userAgent == "" {
		return nil
	}

	ua := strings.ToLower(userAgent)
	var browser string
	switch {
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr"):
		browser = "Opera"
	default:
		browser = "Other"
	}
	return &browser
}

func (a *Module) extractLanguage(c *gin.Context) *string {
	acceptLang := c.GetHeader("Accept-Language")
	if acceptLang == "" {
		return nil
	}
	// "en-US,en;q=0.9" keeps only the first, most preferred tag
	parts := strings.Split(acceptLang, ",")
	lang := strings.Split(strings.TrimSpace(parts[0]), ";")[0]
	return &lang
}

// DayVisits is the visit count for one calendar day.
type DayVisits struct {
	Date  string
	Count int64
}

// ArticleVisits is the visit count for one article.
type ArticleVisits struct {
	ArticleID int
	Count     int64
}

// GetArticleVisitCount returns the all-time visit count for an article.
func (a *Module) GetArticleVisitCount(articleID int) int64 {
	if a == nil || a.db == nil {
		return 0
	}
	var count int64
	a.db.Model(&ArticleEvent{}).Where("article_id = ?", articleID).Count(&count)
	return count
}

// GetVisitsByDay returns a dense series of daily totals for the last N days,
// oldest first. Days without visits appear with a zero count.
func (a *Module) GetVisitsByDay(days int) []DayVisits {
	if a == nil || a.db == nil {
		return []DayVisits{}
	}

	startDate := time.Now().AddDate(0, 0, -days)

	var results []struct {
		Date  string
		Count int64
	}
	a.db.Model(&ArticleEvent{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at >= ?", startDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&results)

	dayVisits := make([]DayVisits, days)
	for i := 0; i < days; i++ {
		date := time.Now().AddDate(0, 0, -(days - 1 - i))
		dayVisits[i] = DayVisits{Date: date.Format("2006-01-02")}
	}
	for _, result := range results {
		for i := range dayVisits {
			if dayVisits[i].Date == result.Date {
				dayVisits[i].Count = result.Count
				break
			}
		}
	}
	return dayVisits
}

// GetTopArticles returns the most visited articles of the last N days.
func (a *Module) GetTopArticles(days, limit int) []ArticleVisits {
	if a == nil || a.db == nil {
		return []ArticleVisits{}
	}

	startDate := time.Now().AddDate(0, 0, -days)

	var results []ArticleVisits
	a.db.Model(&ArticleEvent{}).
		Select("article_id as article_id, COUNT(*) as count").
		Where("created_at >= ?", startDate).
		Group("article_id").
		Order("count DESC").
		Limit(limit).
		Scan(&results)
	return results
}
