// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the CLI interface where config is
// accessed by string keys (e.g., "page.size").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero". This enables proper
// defaulting - we only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"page.size",
		"fuzzy.threshold",
		"render.colour",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "page.size":
		return strconv.Itoa(c.PageSize()), nil
	case "fuzzy.threshold":
		return strconv.Itoa(c.FuzzyThreshold()), nil
	case "render.colour":
		return c.RenderColour(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "page.size":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinPageSize || n > MaxPageSize {
			return fmt.Errorf("%w: page.size must be an integer between %d and %d",
				ErrInvalidValue, MinPageSize, MaxPageSize)
		}
		c.Page.Size = &n
	case "fuzzy.threshold":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinFuzzyThreshold || n > MaxFuzzyThreshold {
			return fmt.Errorf("%w: fuzzy.threshold must be an integer between %d and %d",
				ErrInvalidValue, MinFuzzyThreshold, MaxFuzzyThreshold)
		}
		c.Fuzzy.Threshold = &n
	case "render.colour":
		switch value {
		case "auto", "always", "never":
			c.Render.Colour = value
		default:
			return fmt.Errorf("%w: render.colour must be auto, always or never", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":     c.Author.Name,
		"author.email":    c.Author.Email,
		"page.size":       strconv.Itoa(c.PageSize()),
		"fuzzy.threshold": strconv.Itoa(c.FuzzyThreshold()),
		"render.colour":   c.RenderColour(),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "page.size":
		return c.Page.Size != nil
	case "fuzzy.threshold":
		return c.Fuzzy.Threshold != nil
	case "render.colour":
		return c.Render.Colour != ""
	default:
		return false
	}
}
