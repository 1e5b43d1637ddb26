package models

// StoredUser is the account record as persisted by the mock backend.
// PasswordHash never leaves the store: profile responses use UserProfile.
type StoredUser struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
	Role         string `json:"role"`
	Email        string `json:"email,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// UserProfile is the public shape of an account.
type UserProfile struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Profile maps a stored user to its public shape.
func (u StoredUser) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// NormalizeRole coerces anything that is not exactly "admin" down to "user".
func NormalizeRole(role string) string {
	if role == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// ArticleSection is one titled block of structured article content.
type ArticleSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ArticleContent is the internal structured body of an article. Only the
// introduction survives the mapping to the public Article shape.
type ArticleContent struct {
	Introduction string           `json:"introduction"`
	Sections     []ArticleSection `json:"sections"`
	Conclusion   string           `json:"conclusion"`
}

// ArticleRecord is the article as persisted by the mock backend.
type ArticleRecord struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Author      string          `json:"author"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	HeroImage   string          `json:"heroImage,omitempty"`
	Content     *ArticleContent `json:"content,omitempty"`
}

// Article is the public wire shape. Content carries the introduction text
// only and Slug is derived from the current title on every read.
type Article struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content,omitempty"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"published_at"`
	ImageURL    string   `json:"image_url,omitempty"`
	Slug        string   `json:"slug,omitempty"`
}

// Public maps the stored record to the public wire shape. Sections and
// conclusion are dropped on purpose.
func (r ArticleRecord) Public() Article {
	a := Article{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Author:      r.Author,
		Category:    r.Category,
		Tags:        r.Tags,
		PublishedAt: r.Date,
		ImageURL:    r.HeroImage,
		Slug:        Slugify(r.Title),
	}
	if r.Content != nil {
		a.Content = r.Content.Introduction
	}
	return a
}

// Record maps a public article back to the stored shape. The content string
// becomes an introduction with empty sections and conclusion, matching what
// a create through the public API produces.
func (a Article) Record() ArticleRecord {
	r := ArticleRecord{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Date:        a.PublishedAt,
		Author:      a.Author,
		Category:    a.Category,
		Tags:        a.Tags,
		HeroImage:   a.ImageURL,
	}
	if a.Content != "" {
		r.Content = &ArticleContent{Introduction: a.Content, Sections: []ArticleSection{}}
	}
	return r
}

// Category is both the stored and the public category shape.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// LoginRequest are the credentials presented to Login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest creates a new account. Role defaults to "user" unless it
// is exactly "admin".
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
}

// AuthResult is returned by login and register; registration is an implicit
// login, so both carry a fresh token.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// ArticleInput carries the fields of a new article.
type ArticleInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content,omitempty"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"published_at,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// ArticlePatch is a shallow partial update. Nil fields are left untouched;
// a non-nil Content replaces only the introduction of the stored content.
type ArticlePatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Author      *string   `json:"author,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	PublishedAt *string   `json:"published_at,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
}

// ArticleQuery are the supported list parameters. From and SortBy are
// accepted for wire compatibility but not interpreted by the mock backend.
type ArticleQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
	From     string
	SortBy   string
}

// ArticleList is a page of articles plus the filtered total.
type ArticleList struct {
	Articles []Article `json:"articles"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// CategoryQuery are the supported category list parameters.
type CategoryQuery struct {
	Page   int
	Limit  int
	Search string
}

// CategoryList is a page of categories plus the filtered total.
type CategoryList struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}

// CategoryRequest carries the fields of a new category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryPatch is a partial category update. Nil fields are left untouched.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
