package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/praise/errors"
)

var cookieNameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validate checks semantic constraints the schema cannot express.
func (c *Config) Validate() error {
	switch c.Presenter.Variant {
	case VariantGrid, VariantSingle:
	default:
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("presenter.variant must be %q or %q", VariantGrid, VariantSingle)).
			WithDetail("variant", c.Presenter.Variant)
	}

	for _, ext := range c.Assets.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return errors.New(errors.ErrCodeConfigValidation,
				fmt.Sprintf("invalid extension %q (must start with a dot)", ext)).
				WithDetail("extension", ext)
		}
	}

	for _, pattern := range c.Assets.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation,
				fmt.Sprintf("invalid exclude pattern %q", pattern)).
				WithDetail("pattern", pattern)
		}
	}

	if c.Assets.PlaceholderCount < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "assets.placeholder_count cannot be negative")
	}

	if c.Presenter.HistoryDisplay < 1 {
		return errors.New(errors.ErrCodeConfigValidation, "presenter.history_display must be at least 1")
	}

	if !cookieNameRegex.MatchString(c.Session.CookieName) {
		return errors.New(errors.ErrCodeConfigValidation,
			"session.cookie_name may only contain letters, digits, underscores and hyphens").
			WithDetail("cookie_name", c.Session.CookieName)
	}

	if c.Session.IdleTTL < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "session.idle_ttl cannot be negative")
	}

	return nil
}
