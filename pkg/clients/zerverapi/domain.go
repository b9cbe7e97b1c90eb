package zerverapi

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrServerUnavailable is returned when the dev server refuses the connection;
// it aborts the entire batch
var ErrServerUnavailable = errors.New("The zerver dev server is not reachable")

// ErrMessageNotFound is returned when the bot has no messages after a send
var ErrMessageNotFound = errors.New("No message found for bot")

// Bot is the identity the webhook notifications get sent as
type Bot struct {
	UserID   int64
	Email    string
	FullName string
	APIKey   string
}

// Message is one chat message as returned by the messages endpoint
type Message struct {
	ID          int64  `json:"id"`
	Content     string `json:"content"`
	SenderEmail string `json:"sender_email"`
	Topic       string `json:"subject"`
}

// SendResult carries the response of a successfully dispatched webhook request
type SendResult struct {
	StatusCode int
	Body       string
}

// StatusError is returned for non-success http responses; it fails the single
// scenario without aborting the batch
type StatusError struct {
	StatusCode   int
	URL          string
	ResponseBody string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %v returned status %v: %v", e.URL, e.StatusCode, e.ResponseBody)
}

type apiResponse struct {
	Result string `json:"result"`
	Msg    string `json:"msg"`
}

type userResponse struct {
	apiResponse
	User apiUser `json:"user"`
}

type apiUser struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsBot    bool   `json:"is_bot"`
}

type apiKeyResponse struct {
	apiResponse
	APIKey string `json:"api_key"`
}

type sendMessageResponse struct {
	apiResponse
	ID int64 `json:"id"`
}

type messagesResponse struct {
	apiResponse
	Messages []Message `json:"messages"`
}
