// Package i18n looks up display strings for the active language.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embedded embed.FS

// Fallback is the language used when a key is missing from the active table.
var Fallback = language.English

// Catalog holds one string table per supported language.
type Catalog struct {
	mu        sync.RWMutex
	tables    map[language.Tag]map[string]string
	supported []language.Tag
	matcher   language.Matcher
	active    language.Tag
	missing   map[string]struct{}
}

// NewCatalog loads the bundled tables and activates locale.
func NewCatalog(locale string) (*Catalog, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, err
	}
	c, err := Load(sub)
	if err != nil {
		return nil, err
	}
	if _, err := c.SetLocale(locale); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads every <tag>.yaml file at the root of fsys. The fallback
// language must be among them.
func Load(fsys fs.FS) (*Catalog, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		tables:  make(map[language.Tag]map[string]string),
		missing: make(map[string]struct{}),
	}
	for _, name := range names {
		tag, err := language.Parse(strings.TrimSuffix(path.Base(name), ".yaml"))
		if err != nil {
			return nil, fmt.Errorf("locale file %s: %w", name, err)
		}
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		table := make(map[string]string)
		if err := yaml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("locale file %s: %w", name, err)
		}
		c.tables[tag] = table
	}

	if _, ok := c.tables[Fallback]; !ok {
		return nil, fmt.Errorf("no %s string table found", Fallback)
	}

	// The matcher treats the first supported tag as its default.
	c.supported = append(c.supported, Fallback)
	for tag := range c.tables {
		if tag != Fallback {
			c.supported = append(c.supported, tag)
		}
	}
	c.matcher = language.NewMatcher(c.supported)
	c.active = Fallback
	return c, nil
}

// SetLocale switches the active language to the best supported match for id.
func (c *Catalog) SetLocale(id string) (language.Tag, error) {
	requested, err := language.Parse(id)
	if err != nil {
		return c.Locale(), fmt.Errorf("invalid locale %q: %w", id, err)
	}
	_, index, confidence := c.matcher.Match(requested)
	if confidence == language.No {
		return c.Locale(), fmt.Errorf("unsupported locale %q", id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = c.supported[index]
	return c.active, nil
}

// Locale returns the active language.
func (c *Catalog) Locale() language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// Supported returns the languages the catalog has tables for, fallback first.
func (c *Catalog) Supported() []language.Tag {
	return append([]language.Tag(nil), c.supported...)
}

// Lookup returns the string for key in the active language, falling back
// to the fallback language. ok is false if neither table has the key.
func (c *Catalog) Lookup(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.tables[c.active][key]; ok {
		return s, true
	}
	if s, ok := c.tables[Fallback][key]; ok {
		return s, true
	}
	return "", false
}

// T returns the display string for key, or key itself when it is unknown.
func (c *Catalog) T(key string) string {
	if s, ok := c.Lookup(key); ok {
		return s
	}
	c.reportMissing(key)
	return key
}

// Field translates a value returned by the API (a status, species or
// gender). Values without an entry are shown as received.
func (c *Catalog) Field(value string) string {
	key := strings.ToLower(value)
	if s, ok := c.Lookup(key); ok {
		return s
	}
	c.reportMissing(key)
	return value
}

func (c *Catalog) reportMissing(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, seen := c.missing[key]; seen {
		return
	}
	c.missing[key] = struct{}{}
	log.Debug("no translation", "key", key, "locale", c.active)
}
