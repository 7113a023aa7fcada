package handler

import (
	"strings"

	"tradeassist/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles plain text messages. A message made only of digits is a language choice.
func (h *Handler) handleText(c tele.Context) error {
	id, ok := userID(c)
	if !ok {
		return nil
	}

	action, ok := actionForText(id, c.Text())
	if !ok {
		h.logger.Debug("Ignoring text message", zap.String("user_id", id))
		return nil
	}

	return h.dispatch(c, action)
}

// actionForText maps free text to an action, if any
func actionForText(userID, text string) (domain.Action, bool) {
	text = strings.TrimSpace(text)

	// Ignore commands (starting with /)
	if text == "" || strings.HasPrefix(text, "/") {
		return domain.Action{}, false
	}

	if !isDigits(text) {
		return domain.Action{}, false
	}

	return domain.ChooseLanguageAction(userID, text), true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
