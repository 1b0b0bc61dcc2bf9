package i18n

import (
	"chat-rooms/errors"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other one falls back to.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds the messages of every locale, flattened across namespaces.
type Bundle struct {
	locales map[string]map[string]string
}

func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS reads locales/<locale>/<namespace>.yaml files.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]map[string]string{}}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if err := bundle.add(path, file); err != nil {
			return nil, err
		}
	}
	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("%w: %s", errors.ErrBaseLocaleMissing, BaseLocale)
	}
	return bundle, nil
}

func (b *Bundle) add(path string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale != filepath.Base(filepath.Dir(path)) {
		return fmt.Errorf("catalog %s: locale %q must match its directory", path, locale)
	}
	if strings.TrimSpace(file.Namespace) == "" {
		return fmt.Errorf("catalog %s: namespace is required", path)
	}
	messages, ok := b.locales[locale]
	if !ok {
		messages = map[string]string{}
		b.locales[locale] = messages
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", path)
		}
		if _, exists := messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", path, key, locale)
		}
		messages[key] = value
	}
	return nil
}

func (b *Bundle) HasLocale(locale string) bool {
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

func (b *Bundle) Locales() []string {
	locales := lo.Keys(b.locales)
	sort.Strings(locales)
	return locales
}

// Has reports whether key is defined for locale, without fallback.
func (b *Bundle) Has(locale, key string) bool {
	_, ok := b.locales[locale][key]
	return ok
}

// Catalog builds a private x/text catalog holding every locale of the bundle.
func (b *Bundle) Catalog() (*catalog.Builder, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		for key, value := range b.locales[locale] {
			if err := builder.SetString(tag, key, value); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
	}
	return builder, nil
}
