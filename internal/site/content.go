// Package site serves the localized marketing content for the portfolio
// pages: profile, skills, experience and projects.
package site

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kingluffyxx/portfolio/pkg/logging"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLocale is served when the requested locale has no bundle.
const DefaultLocale = "fr"

// Profile is the hero/about block.
type Profile struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Tagline  string `json:"tagline"`
	About    string `json:"about"`
	Location string `json:"location"`
}

// SkillGroup is one category of the skills section.
type SkillGroup struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Skills []string `json:"skills"`
}

// Experience is one role in the experience timeline.
type Experience struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Period  string   `json:"period"`
	Bullets []string `json:"bullets"`
}

// Project is one portfolio project card.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
}

// Content is a full localized content bundle.
type Content struct {
	Locale     string       `json:"locale"`
	Profile    Profile      `json:"profile"`
	Skills     []SkillGroup `json:"skills"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
}

// Load returns the content bundle for a locale, falling back to the default
// locale for unknown values.
func Load(locale string) (*Content, error) {
	data, err := localeFS.ReadFile(fmt.Sprintf("locales/%s.json", locale))
	if err != nil {
		if locale == DefaultLocale {
			return nil, fmt.Errorf("site: default locale bundle missing: %w", err)
		}
		return Load(DefaultLocale)
	}

	var content Content
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("site: decode %s bundle: %w", locale, err)
	}
	content.Locale = locale
	return &content, nil
}

// Handler serves the content API.
type Handler struct {
	logger *logging.Logger
}

// NewHandler creates a content handler.
func NewHandler(logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{logger: logger}
}

// GetContent handles GET /api/site/content?locale=
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = DefaultLocale
	}

	content, err := Load(locale)
	if err != nil {
		h.logger.Error("failed to load site content", "error", err, "locale", locale)
		http.Error(w, "failed to load content", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_ = json.NewEncoder(w).Encode(content)
}
