// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// defaultFS holds the content shipped with the binary.
//
//go:embed default
var defaultFS embed.FS

const (
	defaultRecordPath = "default/site.yaml"
	defaultLegalDir   = "default/legal"
)

// ErrDocumentNotFound is returned for unknown or missing legal documents.
var ErrDocumentNotFound = errors.New("legal document not found")

// Load reads the record from a YAML file. An empty path loads the embedded default.
// Legal markdown sources are resolved from a "legal" directory next to the file.
func Load(path string) (*Record, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content file: %w", err)
	}

	return Parse(data, os.DirFS(filepath.Join(filepath.Dir(path), "legal")))
}

// Default returns the embedded record.
func Default() (*Record, error) {
	data, err := defaultFS.ReadFile(defaultRecordPath)
	if err != nil {
		return nil, fmt.Errorf("reading embedded content: %w", err)
	}

	docs, err := fs.Sub(defaultFS, defaultLegalDir)
	if err != nil {
		return nil, fmt.Errorf("opening embedded legal documents: %w", err)
	}

	return Parse(data, docs)
}

// Parse decodes and validates a YAML record. Unknown keys are rejected so
// typos in operator-edited files surface at startup.
func Parse(data []byte, docs fs.FS) (*Record, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var r Record
	if err := dec.Decode(&r); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty content file", ErrInvalid)
		}
		return nil, fmt.Errorf("decoding content: %w", err)
	}

	r.docs = docs
	r.applyDefaults()

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return &r, nil
}

// LegalDocument returns the markdown source of a policy page ("privacy" or "terms").
func (r *Record) LegalDocument(name string) ([]byte, error) {
	doc, ok := r.document(name)
	if !ok || doc.Source == "" || r.docs == nil {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}

	data, err := fs.ReadFile(r.docs, doc.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDocumentNotFound, name, err)
	}
	return data, nil
}

// Document returns the policy page metadata by name.
func (r *Record) Document(name string) (Document, bool) {
	return r.document(name)
}

func (r *Record) document(name string) (Document, bool) {
	switch name {
	case "privacy":
		return r.Legal.Privacy, true
	case "terms":
		return r.Legal.Terms, true
	default:
		return Document{}, false
	}
}
