// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sync"
)

// ErrNoActiveTheme is returned when rendering before SetActiveTheme.
var ErrNoActiveTheme = errors.New("no active theme")

// Manager owns the loaded themes and the active one. Embedded themes are
// always loaded; a directory of the same name under <customDir>/themes
// replaces the embedded theme.
type Manager struct {
	embedded  fs.FS
	customDir string
	logger    *slog.Logger

	mu     sync.RWMutex
	funcs  template.FuncMap
	themes map[string]*Theme
	active *Theme
}

// NewManager creates a manager. Either source may be empty.
func NewManager(embedded fs.FS, customDir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		embedded:  embedded,
		customDir: customDir,
		logger:    logger,
		funcs:     template.FuncMap{},
		themes:    map[string]*Theme{},
	}
}

// SetFuncMap sets the functions templates may call. It must be called
// before LoadThemes; templates using unknown functions fail to parse.
func (m *Manager) SetFuncMap(funcs template.FuncMap) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs = funcs
}

// LoadThemes reads the embedded themes, then the custom ones. A theme that
// fails to load is logged and skipped; only unreadable roots are errors.
func (m *Manager) LoadThemes() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.embedded != nil {
		if err := m.loadAll(m.embedded, SourceEmbedded); err != nil {
			return fmt.Errorf("loading embedded themes: %w", err)
		}
	}

	if m.customDir != "" {
		dir := filepath.Join(m.customDir, "themes")
		switch _, err := os.Stat(dir); {
		case errors.Is(err, fs.ErrNotExist):
			m.logger.Debug("no custom themes", "path", dir)
		case err != nil:
			return fmt.Errorf("reading custom themes: %w", err)
		default:
			if err := m.loadAll(os.DirFS(dir), dir); err != nil {
				return fmt.Errorf("loading custom themes: %w", err)
			}
		}
	}

	m.logger.Info("themes loaded", "themes", m.namesLocked())
	return nil
}

// loadAll loads every directory at the root of root. origin is
// SourceEmbedded or the host directory root was opened from.
func (m *Manager) loadAll(root fs.FS, origin string) error {
	entries, err := fs.ReadDir(root, ".")
	if err != nil {
		return err
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		dir, err := fs.Sub(root, name)
		if err != nil {
			return err
		}

		t, err := m.load(name, dir)
		if err != nil {
			m.logger.Warn("skipping theme", "theme", name, "error", err)
			continue
		}
		t.Source = origin
		if origin != SourceEmbedded {
			t.Source = filepath.Join(origin, name)
		}

		if prev, ok := m.themes[name]; ok && prev.Embedded() && !t.Embedded() {
			m.logger.Info("custom theme replaces embedded", "theme", name)
		}
		m.themes[name] = t
		m.logger.Debug("theme loaded", "theme", name, "version", t.Config.Version, "source", t.Source)
	}
	return nil
}

func (m *Manager) load(name string, dir fs.FS) (*Theme, error) {
	manifest, err := fs.ReadFile(dir, "theme.json")
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(manifest, &cfg); err != nil {
		return nil, fmt.Errorf("theme.json: %w", err)
	}

	static, err := fs.Sub(dir, "static")
	if err != nil {
		return nil, err
	}

	t := &Theme{Name: name, Config: cfg, Static: static}
	if err := m.compile(t, dir); err != nil {
		return nil, err
	}
	for page, file := range cfg.Pages {
		if _, ok := t.pages[file]; !ok {
			return nil, fmt.Errorf("theme.json maps %q to missing %s", page, file)
		}
	}
	return t, nil
}

// compile parses layouts and partials into one set, then clones it once per
// page so every page can define its own "content" block.
func (m *Manager) compile(t *Theme, dir fs.FS) error {
	shared := template.New(t.Name).Funcs(m.funcs)
	t.pages = map[string]*template.Template{}
	t.partials = shared

	if _, err := fs.Stat(dir, "templates"); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	for _, f := range htmlFiles(dir, "layouts") {
		if err := parseInto(shared, dir, "layouts/"+f, "layouts/"+f); err != nil {
			return err
		}
	}
	for _, f := range htmlFiles(dir, "partials") {
		if err := parseInto(shared, dir, "partials/"+f, f); err != nil {
			return err
		}
	}

	pages := htmlFiles(dir, "pages")
	if len(pages) > 0 && shared.Lookup(baseLayout) == nil {
		return fmt.Errorf("pages need %s", baseLayout)
	}
	for _, f := range pages {
		set, err := shared.Clone()
		if err != nil {
			return err
		}
		key := "pages/" + f
		if err := parseInto(set, dir, key, key); err != nil {
			return err
		}
		if set.Lookup("content") == nil {
			return fmt.Errorf("%s does not define \"content\"", key)
		}
		t.pages[key] = set
	}
	return nil
}

// parseInto parses templates/<file> into set under name.
func parseInto(set *template.Template, dir fs.FS, file, name string) error {
	src, err := fs.ReadFile(dir, "templates/"+file)
	if err != nil {
		return err
	}
	if _, err := set.New(name).Parse(string(src)); err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}
	return nil
}

// htmlFiles lists the .html files directly under templates/<sub>, sorted.
func htmlFiles(dir fs.FS, sub string) []string {
	matches, _ := fs.Glob(dir, "templates/"+sub+"/*.html")
	files := make([]string, 0, len(matches))
	for _, match := range matches {
		files = append(files, path.Base(match))
	}
	slices.Sort(files)
	return files
}

// SetActiveTheme selects the theme used for rendering.
func (m *Manager) SetActiveTheme(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.themes[name]
	if !ok {
		return fmt.Errorf("theme not found: %s", name)
	}
	m.active = t
	m.logger.Info("active theme set", "theme", name, "source", t.Source)
	return nil
}

// Active returns the active theme, or nil before SetActiveTheme.
func (m *Manager) Active() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Theme returns a loaded theme by name.
func (m *Manager) Theme(name string) (*Theme, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.themes[name]
	return t, ok
}

// Names lists the loaded themes, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.namesLocked()
}

func (m *Manager) namesLocked() []string {
	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RenderPage renders a page with the active theme.
func (m *Manager) RenderPage(w io.Writer, page string, data any) error {
	t := m.Active()
	if t == nil {
		return ErrNoActiveTheme
	}
	return t.RenderPage(w, page, data)
}

// RenderPartial renders a partial with the active theme.
func (m *Manager) RenderPartial(w io.Writer, name string, data any) error {
	t := m.Active()
	if t == nil {
		return ErrNoActiveTheme
	}
	return t.RenderPartial(w, name, data)
}
