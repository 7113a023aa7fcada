package middleware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	tele "gopkg.in/telebot.v3"
)

type fakeContext struct {
	tele.Context
	sender   *tele.User
	callback *tele.Callback
}

func (c *fakeContext) Sender() *tele.User       { return c.sender }
func (c *fakeContext) Callback() *tele.Callback { return c.callback }

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		ctx         *fakeContext
		handlerErr  error
		expectedMsg string
		expectedKey string
	}{
		{
			name:        "message handled",
			ctx:         &fakeContext{sender: &tele.User{ID: 42}},
			expectedMsg: "Update handled",
			expectedKey: "message",
		},
		{
			name:        "callback failed",
			ctx:         &fakeContext{sender: &tele.User{ID: 42}, callback: &tele.Callback{ID: "1"}},
			handlerErr:  errors.New("send failed"),
			expectedMsg: "Update failed",
			expectedKey: "callback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			mw := LoggingMiddleware(zap.New(core))

			err := mw(func(tele.Context) error { return tt.handlerErr })(tt.ctx)

			assert.Equal(t, tt.handlerErr, err)
			entries := logs.FilterMessage(tt.expectedMsg).All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, tt.expectedKey, fields["update"])
			assert.EqualValues(t, 42, fields["user_id"])
		})
	}
}

func TestRecoverMiddleware(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	mw := RecoverMiddleware(zap.New(core))

	err := mw(func(tele.Context) error { panic("boom") })(&fakeContext{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
}

func TestRecoverMiddleware_PassesThrough(t *testing.T) {
	mw := RecoverMiddleware(zap.NewNop())
	called := false

	err := mw(func(tele.Context) error {
		called = true
		return nil
	})(&fakeContext{})

	assert.NoError(t, err)
	assert.True(t, called)
}
