package repository

import (
	"tradeassist/internal/domain"
)

// UserRepository defines user state operations.
// Every mutation is load-mutate-save over the whole mapping as seen by callers.
type UserRepository interface {
	Load() (domain.Users, error)
	Save(users domain.Users) error
	GetOrCreate(userID string) (domain.User, error)
	Get(userID string) (domain.User, error)
	SetLanguage(userID string, lang domain.Language) error
	SetConnected(userID string, connected bool) error
}
