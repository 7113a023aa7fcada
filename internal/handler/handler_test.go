package handler

import (
	"fmt"
	"testing"

	"tradeassist/internal/domain"
	"tradeassist/internal/i18n"
	"tradeassist/internal/report"
	"tradeassist/internal/service"
	"tradeassist/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

// fakeContext records what handlers send. Methods not overridden panic through the nil embedded Context.
type fakeContext struct {
	tele.Context

	sender   *tele.User
	text     string
	callback *tele.Callback

	sent      []string
	sentOpts  [][]interface{}
	edited    []string
	responded bool
	editErr   error
}

func (c *fakeContext) Sender() *tele.User       { return c.sender }
func (c *fakeContext) Text() string             { return c.text }
func (c *fakeContext) Callback() *tele.Callback { return c.callback }

func (c *fakeContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, fmt.Sprint(what))
	c.sentOpts = append(c.sentOpts, opts)
	return nil
}

func (c *fakeContext) Respond(_ ...*tele.CallbackResponse) error {
	c.responded = true
	return nil
}

func (c *fakeContext) Edit(what interface{}, _ ...interface{}) error {
	c.edited = append(c.edited, fmt.Sprint(what))
	return c.editErr
}

func newTestHandler(t *testing.T) (*Handler, *i18n.Catalog) {
	t.Helper()
	texts := i18n.Default()
	conversation := service.NewConversationService(
		testutil.NewTestFileRepo(t), texts, report.NewStatic("EUR"), testutil.NewTestLogger(),
	)
	return NewHandler(nil, conversation, texts, testutil.NewTestLogger()), texts
}

func newMessageContext(id int64, text string) *fakeContext {
	return &fakeContext{sender: &tele.User{ID: id, Username: "trader"}, text: text}
}

func TestHandler_StartSendsGermanPromptWithKeyboard(t *testing.T) {
	h, texts := newTestHandler(t)
	c := newMessageContext(42, "/start")

	require.NoError(t, h.handleStart(c))

	require.Len(t, c.sent, 1)
	assert.Equal(t, texts.Text(domain.LanguageGerman, i18n.KeyChooseLang), c.sent[0])
	require.Len(t, c.sentOpts[0], 1)
	markup, ok := c.sentOpts[0][0].(*tele.ReplyMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 1)
	assert.Len(t, markup.InlineKeyboard[0], 3)
}

func TestHandler_FullConversation(t *testing.T) {
	h, texts := newTestHandler(t)

	require.NoError(t, h.handleStart(newMessageContext(42, "/start")))

	c := newMessageContext(42, "2")
	require.NoError(t, h.handleText(c))
	assert.Equal(t, []string{
		texts.Text(domain.LanguageEnglish, i18n.KeyWelcome),
		texts.Text(domain.LanguageEnglish, i18n.KeyConnectEbay),
	}, c.sent)

	c = newMessageContext(42, "/report_day")
	require.NoError(t, h.reportHandler(domain.ReportDay)(c))
	assert.Equal(t, []string{texts.Text(domain.LanguageEnglish, i18n.KeyNotConnected)}, c.sent)

	c = newMessageContext(42, "/connect_ebay")
	require.NoError(t, h.handleConnect(c))
	assert.Equal(t, []string{
		texts.Text(domain.LanguageEnglish, i18n.KeyConnected),
		texts.Text(domain.LanguageEnglish, i18n.KeyCommands),
	}, c.sent)

	c = newMessageContext(42, "/year_report")
	require.NoError(t, h.reportHandler(domain.ReportYear)(c))
	assert.Equal(t, []string{"📅 Yearly report: 38 000 €"}, c.sent)
}

func TestHandler_UnregisteredUserIsPromptedToStart(t *testing.T) {
	h, texts := newTestHandler(t)

	for name, handle := range map[string]tele.HandlerFunc{
		"connect": h.handleConnect,
		"report":  h.reportHandler(domain.ReportWeek),
		"text":    h.handleText,
	} {
		t.Run(name, func(t *testing.T) {
			c := newMessageContext(404, "1")

			require.NoError(t, handle(c))

			assert.Equal(t, []string{texts.Text(domain.LanguageGerman, i18n.KeyUnregistered)}, c.sent)
		})
	}
}

func TestHandler_StoreErrorSendsGenericError(t *testing.T) {
	texts := i18n.Default()
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("SetConnected", "42", true).Return(fmt.Errorf("%w: broken", domain.ErrCorruptStore))
	conversation := service.NewConversationService(mockRepo, texts, report.NewStatic("EUR"), testutil.NewTestLogger())
	h := NewHandler(nil, conversation, texts, testutil.NewTestLogger())

	c := newMessageContext(42, "/connect_ebay")
	require.NoError(t, h.handleConnect(c))

	assert.Equal(t, []string{texts.Text(domain.LanguageGerman, i18n.KeyError)}, c.sent)
	mockRepo.AssertExpectations(t)
}

func TestHandler_IgnoresNonDigitText(t *testing.T) {
	h, _ := newTestHandler(t)
	require.NoError(t, h.handleStart(newMessageContext(42, "/start")))

	c := newMessageContext(42, "hello there")
	require.NoError(t, h.handleText(c))

	assert.Empty(t, c.sent)
}

func TestHandler_NoSender(t *testing.T) {
	h, _ := newTestHandler(t)
	c := &fakeContext{text: "/start"}

	assert.NoError(t, h.handleStart(c))
	assert.NoError(t, h.handleText(c))
	assert.Empty(t, c.sent)
}

func TestLanguageMarkup(t *testing.T) {
	markup := languageMarkup()

	require.Len(t, markup.InlineKeyboard, 1)
	row := markup.InlineKeyboard[0]
	require.Len(t, row, 3)
	assert.Equal(t, "1. Deutsch", row[0].Text)
	assert.Equal(t, "2. English", row[1].Text)
	assert.Equal(t, "3. Русский", row[2].Text)
	for _, btn := range row {
		assert.Equal(t, btnLanguage.Unique, btn.Unique)
	}
}
