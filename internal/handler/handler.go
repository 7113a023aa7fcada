package handler

import (
	"errors"
	"strconv"

	"tradeassist/internal/domain"
	"tradeassist/internal/i18n"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Bot commands
const (
	cmdStart       = "/start"
	cmdConnectEbay = "/connect_ebay"
	cmdReportDay   = "/report_day"
	cmdReportWeek  = "/report_week"
	cmdReportMonth = "/report_month"
	cmdYearReport  = "/year_report"
)

// Conversation is the state machine the handlers feed actions into
type Conversation interface {
	Handle(action domain.Action) (domain.Reply, error)
}

// Handler translates Telegram updates into actions and replies back
type Handler struct {
	bot          *tele.Bot
	conversation Conversation
	texts        *i18n.Catalog
	logger       *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	conversation Conversation,
	texts *i18n.Catalog,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		conversation: conversation,
		texts:        texts,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle(cmdStart, h.handleStart)
	h.bot.Handle(cmdConnectEbay, h.handleConnect)
	h.bot.Handle(cmdReportDay, h.reportHandler(domain.ReportDay))
	h.bot.Handle(cmdReportWeek, h.reportHandler(domain.ReportWeek))
	h.bot.Handle(cmdReportMonth, h.reportHandler(domain.ReportMonth))
	h.bot.Handle(cmdYearReport, h.reportHandler(domain.ReportYear))

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Inline language buttons
	h.bot.Handle(&btnLanguage, h.handleLanguageButton)
}

// SetCommands publishes the command menu to Telegram
func (h *Handler) SetCommands() error {
	return h.bot.SetCommands([]tele.Command{
		{Text: "start", Description: "Start / Sprache wählen"},
		{Text: "connect_ebay", Description: "eBay verbinden"},
		{Text: "report_day", Description: "Tagesbericht"},
		{Text: "report_week", Description: "Wochenbericht"},
		{Text: "report_month", Description: "Monatsbericht"},
		{Text: "year_report", Description: "Jahresbericht"},
	})
}

// dispatch runs the action and sends every reply message in order
func (h *Handler) dispatch(c tele.Context, action domain.Action) error {
	reply, err := h.conversation.Handle(action)

	if errors.Is(err, domain.ErrUnknownUser) {
		h.logger.Info("Action from unregistered user",
			zap.String("user_id", action.UserID),
			zap.String("action", string(action.Kind)),
		)
		return c.Send(h.texts.Text(domain.DefaultLanguage, i18n.KeyUnregistered))
	}
	if err != nil {
		h.logger.Error("Failed to handle action",
			zap.Error(err),
			zap.String("user_id", action.UserID),
			zap.String("action", string(action.Kind)),
		)
		return c.Send(h.texts.Text(domain.DefaultLanguage, i18n.KeyError))
	}

	for _, msg := range reply.Messages {
		var opts []interface{}
		if msg.Key == i18n.KeyChooseLang {
			opts = append(opts, languageMarkup())
		}
		if err := c.Send(msg.Text, opts...); err != nil {
			return err
		}
	}
	return nil
}

// userID returns the sender id as stored in the user state
func userID(c tele.Context) (string, bool) {
	sender := c.Sender()
	if sender == nil {
		return "", false
	}
	return strconv.FormatInt(sender.ID, 10), true
}

// Inline keyboard buttons
var (
	btnLanguage = tele.Btn{Unique: "lang"}

	languageButtons = []tele.Btn{
		{Unique: btnLanguage.Unique, Text: "1. Deutsch", Data: "1"},
		{Unique: btnLanguage.Unique, Text: "2. English", Data: "2"},
		{Unique: btnLanguage.Unique, Text: "3. Русский", Data: "3"},
	}
)

// languageMarkup returns the language selection keyboard
func languageMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(languageButtons...))
	return menu
}
