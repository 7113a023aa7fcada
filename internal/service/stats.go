package service

import (
	"tradeassist/internal/domain"
	"tradeassist/internal/repository"

	"go.uber.org/zap"
)

// StatsService reports user base statistics
type StatsService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(userRepo repository.UserRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Collect computes statistics over every stored user
func (s *StatsService) Collect() (domain.Stats, error) {
	users, err := s.userRepo.Load()
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.NewStats(users), nil
}

// LogSnapshot collects statistics and writes them to the log
func (s *StatsService) LogSnapshot() error {
	stats, err := s.Collect()
	if err != nil {
		s.logger.Error("Failed to collect user stats", zap.Error(err))
		return err
	}

	fields := []zap.Field{
		zap.Int("total", stats.Total),
		zap.Int("connected", stats.Connected),
	}
	for _, lang := range domain.Languages {
		fields = append(fields, zap.Int("lang_"+string(lang), stats.ByLanguage[lang]))
	}

	s.logger.Info("User stats", fields...)
	return nil
}
