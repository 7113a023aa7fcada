package testutil

import (
	"tradeassist/internal/domain"
	"tradeassist/internal/report"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Load() (domain.Users, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Users), args.Error(1)
}

func (m *MockUserRepository) Save(users domain.Users) error {
	args := m.Called(users)
	return args.Error(0)
}

func (m *MockUserRepository) GetOrCreate(userID string) (domain.User, error) {
	args := m.Called(userID)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) Get(userID string) (domain.User, error) {
	args := m.Called(userID)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) SetLanguage(userID string, lang domain.Language) error {
	args := m.Called(userID, lang)
	return args.Error(0)
}

func (m *MockUserRepository) SetConnected(userID string, connected bool) error {
	args := m.Called(userID, connected)
	return args.Error(0)
}

// MockReportGenerator is a mock for report.Generator
type MockReportGenerator struct {
	mock.Mock
}

func (m *MockReportGenerator) Generate(userID string, kind domain.ReportKind) (report.Amount, error) {
	args := m.Called(userID, kind)
	return args.Get(0).(report.Amount), args.Error(1)
}
