package handler

import (
	"strings"
	"unicode"

	"tradeassist/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError logs a failed edit. "message is not modified" means another press already edited it.
func (h *Handler) handleEditError(err error, c tele.Context, userID string) {
	if err == nil {
		return
	}

	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback",
			zap.String("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		return
	}

	h.logger.Warn("Failed to remove language keyboard",
		zap.Error(err),
		zap.String("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
}

// handleLanguageButton handles presses on the inline language keyboard
func (h *Handler) handleLanguageButton(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleLanguageButton: callback is nil")
		return nil
	}

	id, ok := userID(c)
	if !ok {
		return c.Respond()
	}

	digit := cleanCallbackData(callback.Data)

	h.logger.Debug("Language button pressed",
		zap.String("user_id", id),
		zap.String("data", digit),
	)

	// Always acknowledge callback before sending new messages
	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}

	// Drop the keyboard so the prompt cannot be answered twice
	if msg := callback.Message; msg != nil {
		h.handleEditError(c.Edit(msg.Text), c, id)
	}

	return h.dispatch(c, domain.ChooseLanguageAction(id, digit))
}
