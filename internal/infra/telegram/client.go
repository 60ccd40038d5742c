package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Message represents a received Telegram text message
type Message struct {
	UpdateID   int
	ChatID     int64
	ChatType   string // private, group, supergroup, channel
	SenderID   int64
	SenderName string
	Text       string
	Command    string   // Command name without slash and @botname, empty for plain text
	Args       []string // Whitespace-split command arguments
	Date       time.Time
}

// MessageHandler is the callback for received messages
type MessageHandler func(msg *Message)

const (
	// pollTimeoutSeconds is the long-poll wait passed to getUpdates
	pollTimeoutSeconds = 60

	// httpTimeout bounds every Bot API request and must exceed the long poll
	httpTimeout = (pollTimeoutSeconds + 30) * time.Second
)

// Client is the Telegram Bot API client
type Client struct {
	bot       *tgbotapi.BotAPI
	onMessage MessageHandler

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
}

// botLogger routes library logs through the [Telegram] prefix
type botLogger struct{}

func (botLogger) Println(v ...interface{}) {
	fmt.Printf("[Telegram] %s\n", strings.TrimSpace(fmt.Sprint(v...)))
}

func (botLogger) Printf(format string, v ...interface{}) {
	fmt.Printf("[Telegram] "+strings.TrimSuffix(format, "\n")+"\n", v...)
}

// NewClient authenticates against the Bot API with token
func NewClient(token string, debug bool) (*Client, error) {
	if err := tgbotapi.SetLogger(botLogger{}); err != nil {
		fmt.Printf("[Telegram] Warning: failed to set logger: %v\n", err)
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: httpTimeout})
	if err != nil {
		return nil, fmt.Errorf("connecting to Telegram: %w", err)
	}
	bot.Debug = debug

	fmt.Printf("[Telegram] Authorized on account %s\n", bot.Self.UserName)
	return &Client{bot: bot}, nil
}

// BotName returns the bot's username (without the @ prefix)
func (c *Client) BotName() string {
	return c.bot.Self.UserName
}

// OnMessage sets the message handler
func (c *Client) OnMessage(handler MessageHandler) {
	c.onMessage = handler
}

// Start long-polls for updates and blocks until Stop is called or ctx ends.
// Each text message is handed to the handler on its own goroutine.
func (c *Client) Start(ctx context.Context) error {
	ctx = c.withCancel(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := c.bot.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		c.bot.StopReceivingUpdates()
	}()

	fmt.Println("[Telegram] Polling for updates...")
	for update := range updates {
		msg := ToMessage(update)
		if msg == nil || c.onMessage == nil {
			continue
		}
		go c.onMessage(msg)
	}
	return ctx.Err()
}

// withCancel derives the polling context. After Stop it is already cancelled.
func (c *Client) withCancel(ctx context.Context) context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, c.cancel = context.WithCancel(ctx)
	if c.stopped {
		c.cancel()
	}
	return ctx
}

// Stop stops polling. It is safe to call from any goroutine, before or after Start.
func (c *Client) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	if c.cancel != nil {
		c.cancel()
	}
}

// Send sends a text message to chatID
func (c *Client) Send(chatID int64, text, parseMode string, silent bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	msg.DisableNotification = silent
	_, err := c.bot.Send(msg)
	return err
}

// ToMessage converts an update into a Message. Non-text updates return nil.
func ToMessage(update tgbotapi.Update) *Message {
	m := update.Message
	if m == nil || m.Chat == nil || m.Text == "" {
		return nil
	}

	msg := &Message{
		UpdateID: update.UpdateID,
		ChatID:   m.Chat.ID,
		ChatType: m.Chat.Type,
		Text:     m.Text,
		Date:     m.Time(),
	}
	if m.From != nil {
		msg.SenderID = m.From.ID
		msg.SenderName = m.From.UserName
	}
	if m.IsCommand() {
		msg.Command = m.Command()
		msg.Args = strings.Fields(m.CommandArguments())
	}
	return msg
}
