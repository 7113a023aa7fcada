package testutil

import (
	"path/filepath"
	"testing"

	"tradeassist/internal/domain"
	"tradeassist/internal/repository/jsonfile"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(lang domain.Language, connected bool) domain.User {
	return domain.User{
		Language:  lang,
		Connected: connected,
	}
}

// NewTestFileRepo creates a file repository in a temporary directory
func NewTestFileRepo(t *testing.T) *jsonfile.UserRepo {
	t.Helper()
	return jsonfile.NewUserRepo(filepath.Join(t.TempDir(), "users.json"))
}
