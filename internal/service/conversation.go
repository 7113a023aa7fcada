package service

import (
	"errors"
	"fmt"
	"sync"

	"tradeassist/internal/domain"
	"tradeassist/internal/i18n"
	"tradeassist/internal/report"
	"tradeassist/internal/repository"

	"go.uber.org/zap"
)

// ConversationService runs the per-user conversation state machine
type ConversationService struct {
	userRepo repository.UserRepository
	texts    *i18n.Catalog
	reports  report.Generator
	logger   *zap.Logger

	// one mutex per user id, so actions of the same user run one at a time;
	// entries live only while some action of that user holds or waits for them
	locks   map[string]*userLock
	locksMu sync.Mutex

	// users who were shown the language prompt and have not answered yet
	awaiting   map[string]bool
	awaitingMu sync.RWMutex
}

// NewConversationService creates a new conversation service
func NewConversationService(
	userRepo repository.UserRepository,
	texts *i18n.Catalog,
	reports report.Generator,
	logger *zap.Logger,
) *ConversationService {
	return &ConversationService{
		userRepo: userRepo,
		texts:    texts,
		reports:  reports,
		logger:   logger,
		locks:    make(map[string]*userLock),
		awaiting: make(map[string]bool),
	}
}

// Handle applies an action and returns the reply to send.
// Non-start actions of users without a record fail with domain.ErrUnknownUser.
func (s *ConversationService) Handle(action domain.Action) (domain.Reply, error) {
	if action.UserID == "" {
		return domain.Reply{}, fmt.Errorf("action %q without user id", action.Kind)
	}

	unlock := s.lock(action.UserID)
	defer unlock()

	var (
		reply domain.Reply
		err   error
	)
	switch action.Kind {
	case domain.ActionStart:
		reply, err = s.start(action.UserID)
	case domain.ActionChooseLanguage:
		reply, err = s.chooseLanguage(action.UserID, action.Digit)
	case domain.ActionConnect:
		reply, err = s.connect(action.UserID)
	case domain.ActionReport:
		reply, err = s.report(action.UserID, action.Report)
	default:
		return domain.Reply{}, fmt.Errorf("unknown action kind %q", action.Kind)
	}

	if err != nil {
		return domain.Reply{}, err
	}

	s.logger.Debug("Action handled",
		zap.String("user_id", action.UserID),
		zap.String("action", string(action.Kind)),
		zap.Strings("reply", reply.Keys()),
	)
	return reply, nil
}

// State returns the user's current conversation state
func (s *ConversationService) State(userID string) (domain.State, error) {
	user, err := s.userRepo.Get(userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.StateNew, nil
	}
	if err != nil {
		return domain.StateNew, err
	}
	return domain.DeriveState(&user, s.isAwaiting(userID)), nil
}

func (s *ConversationService) start(userID string) (domain.Reply, error) {
	if _, err := s.userRepo.GetOrCreate(userID); err != nil {
		return domain.Reply{}, fmt.Errorf("failed to register user: %w", err)
	}
	s.setAwaiting(userID, true)

	s.logger.Info("User started conversation", zap.String("user_id", userID))

	// the prompt is shown before any language is known, so it is always German
	return domain.Reply{Messages: []domain.Message{
		s.texts.Message(domain.DefaultLanguage, i18n.KeyChooseLang),
	}}, nil
}

func (s *ConversationService) chooseLanguage(userID, digit string) (domain.Reply, error) {
	lang := domain.LanguageFromDigit(digit)

	if err := s.userRepo.SetLanguage(userID, lang); err != nil {
		return domain.Reply{}, s.userError(userID, "failed to set language", err)
	}
	s.setAwaiting(userID, false)

	s.logger.Info("User chose language",
		zap.String("user_id", userID),
		zap.String("lang", string(lang)),
	)

	return domain.Reply{Messages: []domain.Message{
		s.texts.Message(lang, i18n.KeyWelcome),
		s.texts.Message(lang, i18n.KeyConnectEbay),
	}}, nil
}

func (s *ConversationService) connect(userID string) (domain.Reply, error) {
	if err := s.userRepo.SetConnected(userID, true); err != nil {
		return domain.Reply{}, s.userError(userID, "failed to connect account", err)
	}
	// connecting finishes the conversation even if the language prompt was skipped
	s.setAwaiting(userID, false)

	// re-read so the reply follows the stored language
	user, err := s.userRepo.Get(userID)
	if err != nil {
		return domain.Reply{}, s.userError(userID, "failed to load user", err)
	}

	s.logger.Info("User connected marketplace account", zap.String("user_id", userID))

	return domain.Reply{Messages: []domain.Message{
		s.texts.Message(user.Language, i18n.KeyConnected),
		s.texts.Message(user.Language, i18n.KeyCommands),
	}}, nil
}

func (s *ConversationService) report(userID string, kind domain.ReportKind) (domain.Reply, error) {
	user, err := s.userRepo.Get(userID)
	if err != nil {
		return domain.Reply{}, s.userError(userID, "failed to load user", err)
	}

	if !kind.Valid() {
		return domain.Reply{}, fmt.Errorf("unknown report kind %q", kind)
	}

	if !user.Connected {
		return domain.Reply{Messages: []domain.Message{
			s.texts.Message(user.Language, i18n.KeyNotConnected),
		}}, nil
	}

	amount, err := s.reports.Generate(userID, kind)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("failed to generate %s report: %w", kind, err)
	}

	return domain.Reply{Messages: []domain.Message{
		s.texts.Message(user.Language, i18n.ReportKey(kind), amount.String()),
	}}, nil
}

// userError maps a missing record to domain.ErrUnknownUser and wraps everything else
func (s *ConversationService) userError(userID, msg string, err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownUser, userID)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func (s *ConversationService) lock(userID string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, userID)
		}
		s.locksMu.Unlock()
	}
}

func (s *ConversationService) isAwaiting(userID string) bool {
	s.awaitingMu.RLock()
	defer s.awaitingMu.RUnlock()
	return s.awaiting[userID]
}

func (s *ConversationService) setAwaiting(userID string, awaiting bool) {
	s.awaitingMu.Lock()
	defer s.awaitingMu.Unlock()
	if awaiting {
		s.awaiting[userID] = true
		return
	}
	delete(s.awaiting, userID)
}
