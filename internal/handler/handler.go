// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler serves the site's HTTP pages, SEO documents and health probes.
package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/language"

	"github.com/olegiv/counsel-site/internal/cache"
	"github.com/olegiv/counsel-site/internal/content"
	"github.com/olegiv/counsel-site/internal/icon"
	"github.com/olegiv/counsel-site/internal/markdown"
	"github.com/olegiv/counsel-site/internal/section"
	"github.com/olegiv/counsel-site/internal/seo"
	"github.com/olegiv/counsel-site/internal/theme"
	"github.com/olegiv/counsel-site/internal/uikit"
)

// Route paths.
const (
	RouteHome         = "/"
	RoutePrivacy      = "/privacy"
	RouteTerms        = "/terms"
	RouteCancellation = "/cancellation"
	RouteLive         = "/live"
	RouteRobots       = "/robots.txt"
	RouteSitemap      = "/sitemap.xml"
	RouteSecurityTxt  = "/.well-known/security.txt"
	RouteHealth       = "/health"
	RouteHealthLive   = "/health/live"
	RouteHealthReady  = "/health/ready"
	RouteStatic       = "/static"
	RouteAssets       = "/assets"
)

// TemplateFuncs returns the function map the site themes are parsed with.
func TemplateFuncs() template.FuncMap {
	funcs := uikit.TemplateFuncs()
	funcs["icon"] = func(tag, class string) template.HTML {
		return icon.SVG(tag, "", class)
	}
	return funcs
}

// Palette is the color set written into the page's CSS variables.
type Palette struct {
	Primary     string
	PrimaryDark string
	Accent      string
	AccentLight string
}

// LegalView is a policy page.
type LegalView struct {
	Title     string
	Updated   string
	Summary   string
	Body      template.HTML
	Headings  []markdown.Heading
	Details   []string
	BackLabel string
}

// NotFoundView is the themed 404 page.
type NotFoundView struct {
	Title     string
	Message   string
	BackLabel string
}

// PageData is the data every page template renders from.
type PageData struct {
	Lang         string
	Meta         *seo.Meta
	JSONLD       []template.JS
	Palette      Palette
	FontHeading  string
	Nav          section.Nav
	Footer       section.Footer
	NavPrefix    string // "" on the home page, "/" elsewhere so anchors leave the page
	Live         bool
	LiveURL      string
	AssetVersion string

	Home     *section.Page
	Legal    *LegalView
	NotFound *NotFoundView
}

// Options configures a Site.
type Options struct {
	AssetVersion string
	// DisallowCrawling blocks every robot (staging deployments).
	DisallowCrawling bool
	// BlockedCrawlers are user agents refused the whole site.
	BlockedCrawlers []string
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Site renders the pages of one content record with the active theme.
type Site struct {
	rec      *content.Record
	themes   *theme.Manager
	pages    *cache.PageCache
	markdown *markdown.Renderer
	logger   *slog.Logger
	opts     Options
	started  time.Time
}

// NewSite creates the page handlers. pageCache may be nil to render every request.
func NewSite(rec *content.Record, themes *theme.Manager, pageCache *cache.PageCache, logger *slog.Logger, opts Options) *Site {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AssetVersion == "" {
		opts.AssetVersion = "dev"
	}
	return &Site{
		rec:      rec,
		themes:   themes,
		pages:    pageCache,
		markdown: markdown.New(),
		logger:   logger,
		opts:     opts,
		started:  opts.Now(),
	}
}

// ContentVersion fingerprints the record so cached pages from an older
// record are never served.
func ContentVersion(rec *content.Record) string {
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return "unversioned"
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:6])
}

// basePage fills the fields shared by every page.
func (s *Site) basePage(meta *seo.Meta) PageData {
	active := s.themes.Active()
	colors := s.rec.Branding.Colors

	data := PageData{
		Lang: htmlLang(s.rec.SEO.Locale),
		Meta: meta,
		Palette: Palette{
			Primary:     orDefault(colors.Primary, active, "color_primary"),
			PrimaryDark: orDefault(colors.PrimaryDark, active, "color_primary_dark"),
			Accent:      orDefault(colors.Accent, active, "color_accent"),
			AccentLight: orDefault(colors.AccentLight, active, "color_accent_light"),
		},
		FontHeading:  orDefault("", active, "font_heading"),
		Nav:          section.NavFor(s.rec),
		Footer:       section.FooterFor(s.rec, s.opts.Now().Year()),
		NavPrefix:    "/",
		LiveURL:      RouteLive,
		AssetVersion: s.opts.AssetVersion,
	}
	if data.FontHeading == "" {
		data.FontHeading = "serif"
	}
	return data
}

func (s *Site) siteConfig() *seo.SiteConfig {
	return &seo.SiteConfig{
		SiteName:        s.rec.Metadata.SiteName,
		SiteURL:         s.rec.Metadata.URL,
		Title:           s.rec.SEO.Title,
		SiteDescription: s.rec.SEO.Description,
		Keywords:        s.rec.SEO.Keywords,
		Author:          s.rec.Metadata.CounselorName,
		DefaultOGImage:  s.rec.SEO.OGImage,
		TwitterHandle:   s.rec.SEO.TwitterHandle,
		Locale:          s.rec.SEO.Locale,
	}
}

// practice collects the structured-data facts of the record.
func (s *Site) practice() seo.Practice {
	m := s.rec.Metadata

	hours := make([]string, 0, len(s.rec.Contact.OfficeHours.Schedule))
	for _, h := range s.rec.Contact.OfficeHours.Schedule {
		hours = append(hours, h.Days+" "+h.Hours)
	}

	ratings := make([]int, 0, len(s.rec.Testimonials.Items))
	for _, t := range s.rec.Testimonials.Items {
		ratings = append(ratings, t.Rating)
	}

	offers := make([]seo.Offer, 0, len(s.rec.Services.Items))
	for _, svc := range s.rec.Services.Items {
		offers = append(offers, seo.Offer{Name: svc.Title, Description: svc.Description, Price: svc.Price})
	}

	image := s.rec.SEO.OGImage
	if image == "" && !s.rec.About.Photo.IsPlaceholder() {
		image = s.rec.About.Photo.Path
	}

	return seo.Practice{
		Name:        m.SiteName,
		Description: s.rec.SEO.Description,
		URL:         m.URL,
		Image:       image,
		Phone:       m.Phone,
		Email:       m.Email,
		Location:    m.Location,
		Counselor:   m.CounselorName,
		Hours:       hours,
		Ratings:     ratings,
		BestRating:  section.MaxStars,
		Services:    offers,
	}
}

// orDefault returns value, or the active theme's default for key.
func orDefault(value string, t *theme.Theme, key string) string {
	if value != "" || t == nil {
		return value
	}
	return t.Default(key)
}

// htmlLang converts a locale such as en_US into the primary language subtag.
func htmlLang(locale string) string {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "en"
	}
	base, _ := tag.Base()
	return base.String()
}
