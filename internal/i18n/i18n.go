// Package i18n holds the localized message catalog of the bot.
package i18n

import (
	_ "embed"
	"fmt"

	"tradeassist/internal/domain"

	"gopkg.in/yaml.v3"
)

// Message keys
const (
	KeyChooseLang   = "choose_lang"
	KeyWelcome      = "welcome"
	KeyConnectEbay  = "connect_ebay"
	KeyConnected    = "connected"
	KeyCommands     = "commands"
	KeyNotConnected = "not_connected"
	KeyUnregistered = "unregistered"
	KeyError        = "error"
)

// Keys lists every key a language table must define
var Keys = []string{
	KeyChooseLang,
	KeyWelcome,
	KeyConnectEbay,
	KeyConnected,
	KeyCommands,
	KeyNotConnected,
	KeyUnregistered,
	KeyError,
	ReportKey(domain.ReportDay),
	ReportKey(domain.ReportWeek),
	ReportKey(domain.ReportMonth),
	ReportKey(domain.ReportYear),
}

// ReportKey returns the label key for a report kind
func ReportKey(kind domain.ReportKind) string {
	return "report_" + string(kind)
}

//go:embed locales.yaml
var defaultLocales []byte

// Catalog maps (language, key) to text
type Catalog struct {
	texts map[domain.Language]map[string]string
}

// Parse decodes a YAML catalog and checks that every supported language defines every key
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{texts: make(map[domain.Language]map[string]string, len(raw))}
	for code, table := range raw {
		lang, err := domain.ParseLanguage(code)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		c.texts[lang] = table
	}

	for _, lang := range domain.Languages {
		table, ok := c.texts[lang]
		if !ok {
			return nil, fmt.Errorf("catalog: missing language %q", lang)
		}
		for _, key := range Keys {
			if _, ok := table[key]; !ok {
				return nil, fmt.Errorf("catalog: language %q is missing key %q", lang, key)
			}
		}
	}

	return c, nil
}

// Default returns the embedded catalog
func Default() *Catalog {
	c, err := Parse(defaultLocales)
	if err != nil {
		panic(err)
	}
	return c
}

// Text looks up a message. Unknown languages use German; unknown keys return the key itself.
func (c *Catalog) Text(lang domain.Language, key string) string {
	table, ok := c.texts[lang]
	if !ok {
		table = c.texts[domain.DefaultLanguage]
	}
	if text, ok := table[key]; ok {
		return text
	}
	return key
}

// Message builds a domain message for the key
func (c *Catalog) Message(lang domain.Language, key string, args ...any) domain.Message {
	text := c.Text(lang, key)
	if len(args) > 0 {
		text = fmt.Sprintf(text, args...)
	}
	return domain.Message{Key: key, Text: text}
}
