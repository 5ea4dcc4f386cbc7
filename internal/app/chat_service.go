package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// MediaDownloader fetches the raw bytes of an inbound chat attachment.
type MediaDownloader interface {
	DownloadMedia(ctx context.Context, mediaID string) ([]byte, error)
}

// ChatService drives the conversational intake flow: greetings, session
// restarts and attachment uploads arriving over the chat transport. Chat
// replies are best-effort; failures are logged and swallowed.
type ChatService struct {
	registry *Registry
	intake   *IntakeService
	notifier Notifier
	media    MediaDownloader
	baseURL  string
	log      *zap.Logger
}

func NewChatService(
	registry *Registry,
	intake *IntakeService,
	notifier Notifier,
	media MediaDownloader,
	baseURL string,
	log *zap.Logger,
) *ChatService {
	return &ChatService{
		registry: registry,
		intake:   intake,
		notifier: notifier,
		media:    media,
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log,
	}
}

const greeting = "👋 Welcome to Print Shop!\n\n" +
	"Pricing:\n" +
	"• B&W: ₹1.1/sheet\n" +
	"• Color: ₹6/sheet\n\n" +
	"Send your files to get started!"

// HandleText processes an inbound text message. The keyword "hi" restarts
// the session with fresh tokens; anything else just re-sends the web link.
func (c *ChatService) HandleText(ctx context.Context, userID, text string) {
	text = strings.ToLower(strings.TrimSpace(text))

	if text == "hi" {
		sess := c.registry.Reset(userID)
		c.send(ctx, userID, greeting)
		c.send(ctx, userID, c.orderLink(sess.Snapshot().ID))
		return
	}

	sess := c.registry.GetOrCreate(userID)
	c.send(ctx, userID, c.orderLink(sess.Snapshot().ID))
}

// HandleMedia downloads an inbound attachment and adds it to the order.
func (c *ChatService) HandleMedia(ctx context.Context, userID, mediaID, filename string) {
	content, err := c.media.DownloadMedia(ctx, mediaID)
	if err != nil {
		c.log.Warn("media download failed",
			zap.String("media_id", mediaID), zap.String("file", filename), zap.Error(err))
		c.send(ctx, userID, fmt.Sprintf("❌ Could not receive %s, please try again", filename))
		return
	}

	if _, err := c.intake.AddFile(ctx, userID, filename, content); err != nil {
		c.log.Warn("chat upload rejected",
			zap.String("user_id", userID), zap.String("file", filename), zap.Error(err))
		c.send(ctx, userID, fmt.Sprintf("❌ %s: %v", filename, err))
		return
	}

	sess := c.registry.GetOrCreate(userID)
	c.send(ctx, userID, fmt.Sprintf("✓ %s uploaded!", filename))
	c.send(ctx, userID, c.orderLink(sess.Snapshot().ID))
}

func (c *ChatService) orderLink(sessionID string) string {
	return fmt.Sprintf("🔗 %s/order/%s", c.baseURL, sessionID)
}

func (c *ChatService) send(ctx context.Context, to, body string) {
	if err := c.notifier.SendText(ctx, to, body); err != nil {
		c.log.Warn("chat send failed", zap.String("to", to), zap.Error(err))
	}
}
