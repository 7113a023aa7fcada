package i18n

import (
	"testing"

	"tradeassist/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_HasEveryKey(t *testing.T) {
	c := Default()

	for _, lang := range domain.Languages {
		for _, key := range Keys {
			assert.NotEqual(t, key, c.Text(lang, key), "%s/%s", lang, key)
		}
	}
}

func TestCatalog_Text(t *testing.T) {
	c := Default()

	assert.Equal(t, "Welcome! I'm your trading assistant.", c.Text(domain.LanguageEnglish, KeyWelcome))
	assert.Equal(t, "Bitte zuerst eBay verbinden: /connect_ebay", c.Text(domain.LanguageGerman, KeyNotConnected))
	assert.Equal(t, "✅ eBay-аккаунт успешно подключён!", c.Text(domain.LanguageRussian, KeyConnected))
	assert.Equal(t, "Sprache wählen:\n1. Deutsch\n2. English\n3. Русский", c.Text(domain.LanguageGerman, KeyChooseLang))
}

func TestCatalog_TextFallbacks(t *testing.T) {
	c := Default()

	assert.Equal(t, c.Text(domain.LanguageGerman, KeyWelcome), c.Text(domain.Language("fr"), KeyWelcome))
	assert.Equal(t, "no_such_key", c.Text(domain.LanguageEnglish, "no_such_key"))
}

func TestCatalog_Message(t *testing.T) {
	c := Default()

	msg := c.Message(domain.LanguageEnglish, ReportKey(domain.ReportDay), "123 €")
	assert.Equal(t, "report_day", msg.Key)
	assert.Equal(t, "📅 Daily report: 123 €", msg.Text)

	msg = c.Message(domain.LanguageEnglish, KeyConnected)
	assert.Equal(t, domain.Message{Key: KeyConnected, Text: "✅ eBay account successfully connected!"}, msg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		errIn string
	}{
		{
			name:  "invalid yaml",
			input: "de: [",
			errIn: "failed to parse catalog",
		},
		{
			name:  "unknown language",
			input: "fr:\n  welcome: Bienvenue",
			errIn: "invalid language",
		},
		{
			name:  "missing language",
			input: "de:\n  welcome: Willkommen",
			errIn: "missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, c)
			assert.Contains(t, err.Error(), tt.errIn)
		})
	}
}
