package handler

import (
	"tradeassist/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	id, ok := userID(c)
	if !ok {
		return nil
	}

	h.logger.Info("User started bot",
		zap.String("user_id", id),
		zap.String("username", c.Sender().Username),
	)

	return h.dispatch(c, domain.StartAction(id))
}

// handleConnect handles /connect_ebay command
func (h *Handler) handleConnect(c tele.Context) error {
	id, ok := userID(c)
	if !ok {
		return nil
	}
	return h.dispatch(c, domain.ConnectAction(id))
}

// reportHandler returns the handler for one report command
func (h *Handler) reportHandler(kind domain.ReportKind) tele.HandlerFunc {
	return func(c tele.Context) error {
		id, ok := userID(c)
		if !ok {
			return nil
		}
		return h.dispatch(c, domain.ReportAction(id, kind))
	}
}
