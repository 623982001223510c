package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jmgilman/paiqm/internal/workspace"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	//nolint:errcheck // RegisterValidation only fails on an empty tag or nil func
	v.RegisterValidation("pkgid", func(fl validator.FieldLevel) bool {
		return workspace.ValidateID(fl.Field().String()) == nil
	})
	return v
}

type fileStore struct {
	locator *Locator
}

// NewStore creates a Store that reads the file chosen by locator.
func NewStore(locator *Locator) Store {
	return &fileStore{locator: locator}
}

func (s *fileStore) Load(ctx context.Context) (*Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.locator.Locate()
	if err != nil {
		return nil, fmt.Errorf("%w: locate registry: %w", ErrUnavailable, err)
	}

	//nolint:gosec // G304: the registry path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrUnavailable, path, err)
	}

	if err := validate.Struct(&reg); err != nil {
		return nil, fmt.Errorf("%w: validate %s: %w", ErrUnavailable, path, err)
	}

	reg.Path = path
	base := filepath.Dir(path)
	for i := range reg.Entries {
		reg.Entries[i].ManifestURL = resolveManifestURL(base, reg.Entries[i].ManifestURL)
	}

	return &reg, nil
}

// resolveManifestURL turns bare paths into file URLs. Relative paths are
// taken relative to base.
func resolveManifestURL(base, raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}

	path := raw
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
