// Package assets keeps uploaded vendor files (logos) in an embedded pebble
// database and serves them over HTTP.
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/go-chi/chi/v5"
)

var ErrNotFound = errors.New("asset not found")

// MaxSize bounds a single stored asset.
const MaxSize = 5 << 20

type Asset struct {
	Path        string    `json:"path"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"data"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Store struct {
	db *pebble.DB
}

func Open(dir string) (*Store, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func cleanPath(p string) (string, error) {
	p = strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+p)), "/")
	if p == "" || p == "." {
		return "", errors.New("empty asset path")
	}
	return p, nil
}

// Put stores data under path, replacing any previous asset there.
func (s *Store) Put(path, contentType string, data []byte) error {
	key, err := cleanPath(path)
	if err != nil {
		return err
	}
	if len(data) > MaxSize {
		return fmt.Errorf("asset %s too large: %d bytes", key, len(data))
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	raw, err := json.Marshal(Asset{
		Path:        key,
		ContentType: contentType,
		Data:        data,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode asset: %w", err)
	}
	if err := s.db.Set([]byte(key), raw, pebble.Sync); err != nil {
		return fmt.Errorf("store asset: %w", err)
	}
	return nil
}

func (s *Store) Get(path string) (Asset, error) {
	key, err := cleanPath(path)
	if err != nil {
		return Asset{}, ErrNotFound
	}

	v, closer, err := s.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return Asset{}, ErrNotFound
	}
	if err != nil {
		return Asset{}, fmt.Errorf("read asset: %w", err)
	}
	defer closer.Close()

	var a Asset
	if err := json.Unmarshal(v, &a); err != nil {
		return Asset{}, fmt.Errorf("decode asset: %w", err)
	}
	return a, nil
}

func (s *Store) Delete(path string) error {
	key, err := cleanPath(path)
	if err != nil {
		return err
	}
	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

// Handler serves assets mounted under a chi wildcard route such as /assets/*.
func (s *Store) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := s.Get(chi.URLParam(r, "*"))
		if errors.Is(err, ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		// Uploaded bytes are never interpreted as a document on this origin.
		w.Header().Set("Content-Type", a.ContentType)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; sandbox")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Last-Modified", a.UpdatedAt.Format(http.TimeFormat))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(a.Data)
	}
}
