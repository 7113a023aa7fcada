package domain

import (
	"fmt"
	"strings"
)

// Language is a display language code
type Language string

const (
	LanguageGerman  Language = "de"
	LanguageEnglish Language = "en"
	LanguageRussian Language = "ru"
)

// DefaultLanguage is assigned to every new user
const DefaultLanguage = LanguageGerman

// Languages lists supported languages in menu order
var Languages = []Language{LanguageGerman, LanguageEnglish, LanguageRussian}

// languageDigits maps the menu digit to its language
var languageDigits = map[string]Language{
	"1": LanguageGerman,
	"2": LanguageEnglish,
	"3": LanguageRussian,
}

// LanguageFromDigit resolves a menu choice. Anything outside the menu falls back to German.
func LanguageFromDigit(digit string) Language {
	if lang, ok := languageDigits[strings.TrimSpace(digit)]; ok {
		return lang
	}
	return DefaultLanguage
}

// ParseLanguage validates a language code
func ParseLanguage(code string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	if !lang.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}
	return lang, nil
}

// Valid reports whether the language is supported
func (l Language) Valid() bool {
	switch l {
	case LanguageGerman, LanguageEnglish, LanguageRussian:
		return true
	}
	return false
}

// UnmarshalText rejects unknown codes so that a bad store is reported instead of served
func (l *Language) UnmarshalText(text []byte) error {
	lang, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*l = lang
	return nil
}

// User is the persisted per-user record
type User struct {
	Language  Language `json:"lang"`
	Connected bool     `json:"connected"`
}

// NewUser returns the record created on first contact
func NewUser() User {
	return User{Language: DefaultLanguage, Connected: false}
}

// Users maps user identifier to record
type Users map[string]User

// Stats summarizes the user base
type Stats struct {
	Total      int
	Connected  int
	ByLanguage map[Language]int
}

// NewStats computes stats for the given users
func NewStats(users Users) Stats {
	stats := Stats{ByLanguage: make(map[Language]int, len(Languages))}
	for _, u := range users {
		stats.Total++
		if u.Connected {
			stats.Connected++
		}
		stats.ByLanguage[u.Language]++
	}
	return stats
}
