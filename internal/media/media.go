// Package media stores uploaded images and records their paths on users
// and recipes.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	apperrors "recipehub/internal/errors"
)

// PathPrefix is prepended to every stored object name in returned paths.
const PathPrefix = "images"

// Backend persists named objects.
type Backend interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Sequencer hands out increasing file numbers starting at zero.
type Sequencer interface {
	Next(ctx context.Context) (int64, error)
}

// Recorder writes stored paths back onto their owning entity.
type Recorder interface {
	SetRecipeImage(ctx context.Context, recipeID int, path string) error
	SetProfilePic(ctx context.Context, username, path string) error
	SetBanner(ctx context.Context, username, path string) error
}

// Op selects which entity field an upload is recorded into.
type Op string

const (
	OpRecipe  Op = "recipe"
	OpProfile Op = "profile"
	OpBanner  Op = "banner"
)

// ParseOp accepts the full name or anything starting with its first letter.
func ParseOp(s string) (Op, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", apperrors.Validation("op is required")
	}
	switch s[0] {
	case 'r':
		return OpRecipe, nil
	case 'p':
		return OpProfile, nil
	case 'b':
		return OpBanner, nil
	}
	return "", apperrors.Validation("op must be one of recipe, profile, banner")
}

// Upload is a base64 image and the entity it belongs to.
type Upload struct {
	Op       string
	Image    string
	RecipeID int
	Username string
}

// Store decodes, names, persists and records uploaded images.
type Store struct {
	backend  Backend
	seq      Sequencer
	recorder Recorder
	logger   *slog.Logger
}

// NewStore creates a media store.
func NewStore(backend Backend, seq Sequencer, recorder Recorder, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend:  backend,
		seq:      seq,
		recorder: recorder,
		logger:   logger.With("component", "media"),
	}
}

// Upload stores the image and returns its path. Input is fully validated
// before anything is written.
func (s *Store) Upload(ctx context.Context, u Upload) (string, error) {
	op, err := ParseOp(u.Op)
	if err != nil {
		return "", err
	}
	switch op {
	case OpRecipe:
		if u.RecipeID <= 0 {
			return "", apperrors.Validation("id is required for recipe images")
		}
	default:
		if strings.TrimSpace(u.Username) == "" {
			return "", apperrors.Validation("username is required for profile and banner images")
		}
	}

	data, err := decodeBase64(u.Image)
	if err != nil {
		return "", err
	}

	n, err := s.seq.Next(ctx)
	if err != nil {
		return "", fmt.Errorf("next file number: %w", err)
	}
	contentType := http.DetectContentType(data)
	name := fmt.Sprintf("i_%d%s", n, extension(contentType))

	if err := s.backend.Put(ctx, name, data, contentType); err != nil {
		return "", fmt.Errorf("store %s: %w", name, err)
	}
	stored := path.Join(PathPrefix, name)

	switch op {
	case OpRecipe:
		err = s.recorder.SetRecipeImage(ctx, u.RecipeID, stored)
	case OpProfile:
		err = s.recorder.SetProfilePic(ctx, u.Username, stored)
	case OpBanner:
		err = s.recorder.SetBanner(ctx, u.Username, stored)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "image stored but not recorded", "path", stored, "op", op, "error", err)
		return "", err
	}

	s.logger.InfoContext(ctx, "image stored", "path", stored, "op", op, "bytes", len(data))
	return stored, nil
}

// Download opens a stored image by the path Upload returned.
func (s *Store) Download(ctx context.Context, p string) (io.ReadCloser, string, error) {
	name, err := objectName(p)
	if err != nil {
		return nil, "", err
	}
	rc, err := s.backend.Open(ctx, name)
	if err != nil {
		return nil, "", err
	}
	return rc, contentTypeOf(name), nil
}

func objectName(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", apperrors.Validation("path is required")
	}
	if strings.Contains(p, "..") || strings.Contains(p, `\`) {
		return "", apperrors.Validation("invalid path")
	}
	name := strings.TrimPrefix(strings.TrimPrefix(p, "/"), PathPrefix+"/")
	if name == "" || strings.Contains(name, "/") {
		return "", apperrors.Validation("invalid path")
	}
	return name, nil
}

// decodeBase64 accepts standard or URL-safe alphabets, padded or not, and
// an optional data URI prefix.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ";base64,"); i >= 0 && strings.HasPrefix(s, "data:") {
		s = s[i+len(";base64,"):]
	}
	if s == "" {
		return nil, apperrors.Validation("image is required")
	}
	s = strings.TrimRight(s, "=")
	for _, enc := range []*base64.Encoding{base64.RawStdEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(s); err == nil {
			if len(data) == 0 {
				break
			}
			return data, nil
		}
	}
	return nil, apperrors.Validation("image is not valid base64")
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// extension falls back to .jpg, the name every upload used to get.
func extension(contentType string) string {
	if ext, ok := extensions[contentType]; ok {
		return ext
	}
	return ".jpg"
}

func contentTypeOf(name string) string {
	ext := path.Ext(name)
	for ct, e := range extensions {
		if e == ext {
			return ct
		}
	}
	return "application/octet-stream"
}
