package notify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"
)

const telegramAPI = "https://api.telegram.org"

// chatRecipient addresses a chat by numeric id or @username.
type chatRecipient string

func (c chatRecipient) Recipient() string { return string(c) }

// telegramEndpoint sends through the Bot API. The bot is created lazily in
// offline mode so that building the endpoint set never touches the network.
type telegramEndpoint struct {
	token   string
	chats   []chatRecipient
	apiURL  string
	timeout time.Duration

	once   sync.Once
	bot    *tele.Bot
	botErr error
}

func newTelegramEndpoint(rest string) (*telegramEndpoint, error) {
	segs := pathSegments(rest)
	if len(segs) < 2 {
		return nil, fmt.Errorf("%w: tgram:// needs a bot token and at least one chat id", ErrInvalidAddress)
	}
	token := segs[0]
	if !strings.Contains(token, ":") {
		return nil, fmt.Errorf("%w: telegram bot token %s is malformed", ErrInvalidAddress, mask(token))
	}
	chats := make([]chatRecipient, 0, len(segs)-1)
	for _, s := range segs[1:] {
		if _, err := strconv.ParseInt(s, 10, 64); err != nil && !strings.HasPrefix(s, "@") {
			// Bare channel names are accepted the way apprise does.
			s = "@" + s
		}
		chats = append(chats, chatRecipient(s))
	}
	return &telegramEndpoint{
		token:   token,
		chats:   chats,
		apiURL:  telegramAPI,
		timeout: 10 * time.Second,
	}, nil
}

func (e *telegramEndpoint) Name() string {
	return fmt.Sprintf("tgram://%s/%d-chats", mask(e.token), len(e.chats))
}

func (e *telegramEndpoint) client() (*tele.Bot, error) {
	e.once.Do(func() {
		e.bot, e.botErr = tele.NewBot(tele.Settings{
			URL:     e.apiURL,
			Token:   e.token,
			Offline: true,
			Client:  &http.Client{Timeout: e.timeout},
		})
	})
	return e.bot, e.botErr
}

func (e *telegramEndpoint) Send(ctx context.Context, n Notification) error {
	bot, err := e.client()
	if err != nil {
		return fmt.Errorf("telegram bot: %w", err)
	}
	text := n.Text()
	for _, chat := range e.chats {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := bot.Send(chat, text); err != nil {
			return fmt.Errorf("telegram send to %s: %w", chat, err)
		}
	}
	return nil
}
