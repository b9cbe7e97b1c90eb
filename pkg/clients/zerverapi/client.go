package zerverapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	foundation "github.com/estafette/estafette-foundation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sethgrid/pester"
	"github.com/sethvargo/go-password/password"

	"github.com/zerver/zerver-docs-screenshots/pkg/api"
	"github.com/zerver/zerver-docs-screenshots/pkg/requestbuilder"
)

// Client is the interface for communicating with the zerver dev instance
//
//go:generate mockgen -package=zerverapi -destination ./mock.go -source=client.go
type Client interface {
	GetOrCreateBot(ctx context.Context, fullName, avatarPath string) (bot *Bot, err error)
	EnsureChannel(ctx context.Context, bot *Bot, channel string) (err error)
	DeleteBotMessages(ctx context.Context, bot *Bot) (err error)
	SendWebhook(ctx context.Context, descriptor requestbuilder.RequestDescriptor) (result *SendResult, err error)
	SendChannelMessage(ctx context.Context, bot *Bot, channel, topic, content string) (messageID int64, err error)
	GetLastBotMessage(ctx context.Context, bot *Bot) (message *Message, err error)
}

// NewClient returns a zerverapi.Client to communicate with the dev server api
func NewClient(config *api.APIConfig) Client {
	return &client{
		config: config,
	}
}

type client struct {
	config *api.APIConfig
}

// GetOrCreateBot looks the bot account up by its derived email address and
// provisions it on first use; the account and its api key stay owned by the
// server across runs
func (c *client) GetOrCreateBot(ctx context.Context, fullName, avatarPath string) (bot *Bot, err error) {

	email := fmt.Sprintf("%v@%v", foundation.ToLowerSnakeCase(fullName), c.config.Server.BotEmailDomain)

	user, found, err := c.getUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !found {
		if err = c.createBotUser(ctx, email, fullName); err != nil {
			return nil, err
		}

		user, found, err = c.getUserByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.Errorf("bot %v was created but cannot be looked up", email)
		}

		if avatarPath != "" {
			if avatarErr := c.uploadAvatar(ctx, user.UserID, avatarPath); avatarErr != nil {
				log.Warn().Err(avatarErr).Msgf("Uploading avatar for bot %v failed", email)
			}
		}
	}

	apiKey, err := c.fetchAPIKey(ctx, email)
	if err != nil {
		return nil, err
	}

	return &Bot{
		UserID:   user.UserID,
		Email:    email,
		FullName: fullName,
		APIKey:   apiKey,
	}, nil
}

// EnsureChannel subscribes the bot to the target channel, creating the
// channel when it does not exist yet
func (c *client) EnsureChannel(ctx context.Context, bot *Bot, channel string) (err error) {

	subscriptions, err := json.Marshal([]map[string]string{{"name": channel}})
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("subscriptions", string(subscriptions))

	_, _, err = c.callForm(ctx, http.MethodPost, fmt.Sprintf("%v/api/v1/users/me/subscriptions", c.baseURL()), form, bot.Email, bot.APIKey)

	return err
}

// DeleteBotMessages clears prior messages from the bot so the most recent
// message lookup after a send is unambiguous
func (c *client) DeleteBotMessages(ctx context.Context, bot *Bot) (err error) {

	messages, err := c.getBotMessages(ctx, bot, 100)
	if err != nil {
		return err
	}

	for _, message := range messages {
		requestURL := fmt.Sprintf("%v/api/v1/messages/%v", c.baseURL(), message.ID)
		if _, _, err = c.callAPI(ctx, http.MethodDelete, requestURL, nil, nil, c.config.Server.AdminEmail, c.config.Server.AdminAPIKey); err != nil {
			return err
		}
	}

	return nil
}

// SendWebhook dispatches a built webhook request against the integration's
// endpoint on the dev server
func (c *client) SendWebhook(ctx context.Context, descriptor requestbuilder.RequestDescriptor) (result *SendResult, err error) {

	var requestBody io.Reader
	if len(descriptor.Body) > 0 {
		requestBody = bytes.NewReader(descriptor.Body)
	}

	statusCode, responseBody, err := c.callAPI(ctx, descriptor.Method, descriptor.FullURL(), descriptor.Headers, requestBody, "", "")
	if err != nil {
		return nil, err
	}

	return &SendResult{
		StatusCode: statusCode,
		Body:       string(responseBody),
	}, nil
}

// SendChannelMessage posts a plain chat message as the bot, for integrations
// documented without a recorded webhook fixture
func (c *client) SendChannelMessage(ctx context.Context, bot *Bot, channel, topic, content string) (messageID int64, err error) {

	form := url.Values{}
	form.Set("type", "stream")
	form.Set("to", channel)
	form.Set("topic", topic)
	form.Set("content", content)

	_, body, err := c.callForm(ctx, http.MethodPost, fmt.Sprintf("%v/api/v1/messages", c.baseURL()), form, bot.Email, bot.APIKey)
	if err != nil {
		return 0, err
	}

	var response sendMessageResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return 0, err
	}

	return response.ID, nil
}

// GetLastBotMessage returns the newest message sent by the bot
func (c *client) GetLastBotMessage(ctx context.Context, bot *Bot) (message *Message, err error) {

	messages, err := c.getBotMessages(ctx, bot, 1)
	if err != nil {
		return nil, err
	}

	if len(messages) == 0 {
		return nil, errors.Wrapf(ErrMessageNotFound, "bot %v has no messages", bot.Email)
	}

	return &messages[len(messages)-1], nil
}

func (c *client) getUserByEmail(ctx context.Context, email string) (user apiUser, found bool, err error) {

	requestURL := fmt.Sprintf("%v/api/v1/users/%v", c.baseURL(), url.PathEscape(email))

	_, body, err := c.callAPI(ctx, http.MethodGet, requestURL, nil, nil, c.config.Server.AdminEmail, c.config.Server.AdminAPIKey)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return user, false, nil
		}
		return user, false, err
	}

	var response userResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return user, false, err
	}

	return response.User, true, nil
}

func (c *client) createBotUser(ctx context.Context, email, fullName string) (err error) {

	// the users endpoint requires an initial password; it is exchanged for the
	// bot's api key right after and never stored
	oneTimePassword, err := password.Generate(32, 10, 0, false, false)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", oneTimePassword)
	form.Set("full_name", fullName)

	_, _, err = c.callForm(ctx, http.MethodPost, fmt.Sprintf("%v/api/v1/users", c.baseURL()), form, c.config.Server.AdminEmail, c.config.Server.AdminAPIKey)

	return err
}

func (c *client) fetchAPIKey(ctx context.Context, email string) (apiKey string, err error) {

	form := url.Values{}
	form.Set("username", email)

	_, body, err := c.callForm(ctx, http.MethodPost, fmt.Sprintf("%v/api/v1/dev_fetch_api_key", c.baseURL()), form, "", "")
	if err != nil {
		return "", err
	}

	var response apiKeyResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return "", err
	}

	return response.APIKey, nil
}

func (c *client) uploadAvatar(ctx context.Context, userID int64, avatarPath string) (err error) {

	file, err := os.Open(avatarPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	part, err := writer.CreateFormFile("file", filepath.Base(avatarPath))
	if err != nil {
		return err
	}
	if _, err = io.Copy(part, file); err != nil {
		return err
	}
	if err = writer.Close(); err != nil {
		return err
	}

	headers := http.Header{}
	headers.Set("Content-Type", writer.FormDataContentType())

	_, _, err = c.callAPI(ctx, http.MethodPost, fmt.Sprintf("%v/api/v1/users/%v/avatar", c.baseURL(), userID), headers, &buffer, c.config.Server.AdminEmail, c.config.Server.AdminAPIKey)

	return err
}

func (c *client) getBotMessages(ctx context.Context, bot *Bot, count int) (messages []Message, err error) {

	narrow, err := json.Marshal([]map[string]string{{"operator": "sender", "operand": bot.Email}})
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("anchor", "newest")
	query.Set("num_before", strconv.Itoa(count))
	query.Set("num_after", "0")
	query.Set("narrow", string(narrow))
	query.Set("apply_markdown", "false")

	requestURL := fmt.Sprintf("%v/api/v1/messages?%v", c.baseURL(), query.Encode())

	_, body, err := c.callAPI(ctx, http.MethodGet, requestURL, nil, nil, bot.Email, bot.APIKey)
	if err != nil {
		return nil, err
	}

	var response messagesResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, err
	}

	return response.Messages, nil
}

func (c *client) callForm(ctx context.Context, method, requestURL string, form url.Values, authEmail, authAPIKey string) (statusCode int, body []byte, err error) {

	headers := http.Header{}
	headers.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.callAPI(ctx, method, requestURL, headers, strings.NewReader(form.Encode()), authEmail, authAPIKey)
}

func (c *client) callAPI(ctx context.Context, method, requestURL string, headers http.Header, requestBody io.Reader, authEmail, authAPIKey string) (statusCode int, body []byte, err error) {

	// create client, in order to add headers
	client := pester.NewExtendedClient(&http.Client{})
	client.MaxRetries = 1
	client.KeepLog = true

	request, err := http.NewRequestWithContext(ctx, method, requestURL, requestBody)
	if err != nil {
		return
	}

	// add headers
	for name, values := range headers {
		for _, value := range values {
			request.Header.Add(name, value)
		}
	}
	if authEmail != "" {
		request.SetBasicAuth(authEmail, authAPIKey)
	}

	// perform actual request
	response, err := client.Do(request)
	if err != nil {
		if isConnectionRefused(err) {
			return 0, nil, errors.Wrapf(ErrServerUnavailable, "%v %v failed: %v", method, requestURL, err.Error())
		}
		return
	}
	defer response.Body.Close()

	statusCode = response.StatusCode

	body, err = io.ReadAll(response.Body)
	if err != nil {
		return
	}

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return statusCode, body, &StatusError{
			StatusCode:   statusCode,
			URL:          requestURL,
			ResponseBody: string(body),
		}
	}

	return statusCode, body, nil
}

func (c *client) baseURL() string {
	return strings.TrimSuffix(c.config.Server.BaseURL, "/")
}

func isConnectionRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	// pester aggregates the per-attempt errors into a flattened message
	return strings.Contains(err.Error(), "connection refused")
}
