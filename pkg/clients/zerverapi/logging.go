package zerverapi

import (
	"context"

	"github.com/zerver/zerver-docs-screenshots/pkg/api"
	"github.com/zerver/zerver-docs-screenshots/pkg/requestbuilder"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "zerverapi"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) GetOrCreateBot(ctx context.Context, fullName, avatarPath string) (bot *Bot, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetOrCreateBot", err) }()

	return c.Client.GetOrCreateBot(ctx, fullName, avatarPath)
}

func (c *loggingClient) EnsureChannel(ctx context.Context, bot *Bot, channel string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "EnsureChannel", err) }()

	return c.Client.EnsureChannel(ctx, bot, channel)
}

func (c *loggingClient) DeleteBotMessages(ctx context.Context, bot *Bot) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "DeleteBotMessages", err) }()

	return c.Client.DeleteBotMessages(ctx, bot)
}

func (c *loggingClient) SendWebhook(ctx context.Context, descriptor requestbuilder.RequestDescriptor) (result *SendResult, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "SendWebhook", err) }()

	return c.Client.SendWebhook(ctx, descriptor)
}

func (c *loggingClient) SendChannelMessage(ctx context.Context, bot *Bot, channel, topic, content string) (messageID int64, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "SendChannelMessage", err) }()

	return c.Client.SendChannelMessage(ctx, bot, channel, topic, content)
}

func (c *loggingClient) GetLastBotMessage(ctx context.Context, bot *Bot) (message *Message, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetLastBotMessage", err, ErrMessageNotFound) }()

	return c.Client.GetLastBotMessage(ctx, bot)
}
