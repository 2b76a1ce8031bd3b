// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/olegiv/counsel-site/internal/cache"
	"github.com/olegiv/counsel-site/internal/content"
	"github.com/olegiv/counsel-site/internal/section"
	"github.com/olegiv/counsel-site/internal/seo"
)

// Legal document names.
const (
	DocPrivacy      = "privacy"
	DocTerms        = "terms"
	DocCancellation = "cancellation"
)

// Home handles GET /.
func (s *Site) Home(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, http.StatusOK, "home", s.renderHome)
}

// Legal returns the handler of one policy page.
func (s *Site) Legal(doc string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serve(w, r, http.StatusOK, doc, func() ([]byte, error) {
			return s.renderLegal(doc)
		})
	}
}

// NotFound renders the themed 404 page.
func (s *Site) NotFound(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, http.StatusNotFound, "404", s.renderNotFound)
}

// serve writes a rendered page, going through the page cache when one is set.
// Render failures are logged and answered with a plain 500.
func (s *Site) serve(w http.ResponseWriter, r *http.Request, status int, name string, render func() ([]byte, error)) {
	var (
		body []byte
		etag string
	)

	if s.pages != nil {
		page, err := s.pages.Get(r.Context(), name, render)
		if err != nil {
			s.renderFailed(w, r, name, err)
			return
		}
		body, etag = page.Body, page.ETag
	} else {
		var err error
		if body, err = render(); err != nil {
			s.renderFailed(w, r, name, err)
			return
		}
		etag = cache.ETag(body)
	}

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Cache-Control", "no-cache")
	h.Set("ETag", etag)

	if status == http.StatusOK && r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Site) renderFailed(w http.ResponseWriter, r *http.Request, name string, err error) {
	if errors.Is(err, content.ErrDocumentNotFound) {
		s.logger.Warn("legal document missing", "page", name, "error", err)
		if name != "404" {
			s.NotFound(w, r)
			return
		}
	}
	serverError(w, r, s.logger, "failed to render page", err, "page", name)
}

// render executes a page template of the active theme into a buffer.
func (s *Site) render(page string, data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.themes.RenderPage(&buf, page, data); err != nil {
		return nil, fmt.Errorf("rendering %s template: %w", page, err)
	}
	return buf.Bytes(), nil
}

func (s *Site) renderHome() ([]byte, error) {
	page, err := section.Build(s.rec, s.opts.Now())
	if err != nil {
		return nil, err
	}

	data := s.basePage(s.siteConfig().Home())
	data.JSONLD = []template.JS{seo.BuildServiceSchema(s.practice())}
	data.Nav = page.Nav
	data.NavPrefix = ""
	data.Live = true
	data.Home = &page

	return s.render("home", data)
}

func (s *Site) renderLegal(doc string) ([]byte, error) {
	view, err := s.legalView(doc)
	if err != nil {
		return nil, err
	}

	meta := s.siteConfig().Page(seo.PageData{
		Title:       view.Title,
		Description: view.Summary,
		Body:        string(view.Body),
		Path:        "/" + doc,
	})

	data := s.basePage(meta)
	data.JSONLD = []template.JS{seo.BuildBreadcrumbSchema(s.rec.Metadata.URL, []seo.Crumb{
		{Name: s.rec.Metadata.SiteName, Path: RouteHome},
		{Name: view.Title},
	})}
	data.Legal = view

	return s.render("legal", data)
}

// legalView builds a policy page: privacy and terms from their markdown
// sources, cancellation from the record's detail list.
func (s *Site) legalView(doc string) (*LegalView, error) {
	legal := s.rec.Legal

	if doc == DocCancellation {
		c := legal.Cancellation
		return &LegalView{
			Title:     c.Title,
			Summary:   c.Summary,
			Details:   c.Details,
			BackLabel: legal.BackLabel,
		}, nil
	}

	meta, ok := s.rec.Document(doc)
	if !ok {
		return nil, fmt.Errorf("%w: %s", content.ErrDocumentNotFound, doc)
	}

	src, err := s.rec.LegalDocument(doc)
	if err != nil {
		return nil, err
	}

	rendered, err := s.markdown.Render(src)
	if err != nil {
		return nil, fmt.Errorf("rendering %s markdown: %w", doc, err)
	}

	view := &LegalView{
		Title:     meta.Title,
		Summary:   meta.Summary,
		Body:      rendered.HTML,
		Headings:  rendered.Headings,
		BackLabel: legal.BackLabel,
	}
	if meta.LastUpdated != "" {
		view.Updated = legal.UpdatedLabel + " " + meta.LastUpdated
	}
	return view, nil
}

func (s *Site) renderNotFound() ([]byte, error) {
	nf := s.rec.NotFound
	meta := s.siteConfig().Page(seo.PageData{
		Title:       nf.Title,
		Description: nf.Message,
		NoIndex:     true,
	})

	data := s.basePage(meta)
	data.NotFound = &NotFoundView{
		Title:     nf.Title,
		Message:   nf.Message,
		BackLabel: s.rec.Legal.BackLabel,
	}
	return s.render("404", data)
}
