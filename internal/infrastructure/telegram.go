package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/media-fetch-go/internal/domain"
)

// HeadingToken marks non-selectable heading buttons; presses of it are
// swallowed before they reach the pipeline
const HeadingToken = "noop"

// UpdateHandler receives inbound events from the transport
type UpdateHandler interface {
	HandleText(ctx context.Context, userID, chatID int64, text string) error
	HandleSelection(ctx context.Context, userID, chatID int64, token string) error
}

// TelegramTransport speaks the Telegram Bot API over plain HTTP. It
// implements domain.Transport for outbound sends and feeds inbound
// updates to an UpdateHandler via long polling or webhook dispatch.
type TelegramTransport struct {
	token       string
	baseURL     string
	pollTimeout time.Duration
	client      *http.Client
	logger      *zap.Logger
}

// NewTelegramTransport creates a transport for the configured bot
func NewTelegramTransport(config *domain.TelegramConfig, logger *zap.Logger) *TelegramTransport {
	return &TelegramTransport{
		token:       config.Token,
		baseURL:     config.APIBaseURL,
		pollTimeout: config.PollTimeout,
		client: &http.Client{
			Timeout: config.PollTimeout + 10*time.Second,
		},
		logger: logger,
	}
}

// Update is the inbound event envelope (subset of the Bot API shape)
type Update struct {
	UpdateID      int64            `json:"update_id"`
	Message       *IncomingMessage `json:"message,omitempty"`
	CallbackQuery *CallbackQuery   `json:"callback_query,omitempty"`
}

// IncomingMessage is a received chat message
type IncomingMessage struct {
	From *User  `json:"from,omitempty"`
	Chat Chat   `json:"chat"`
	Text string `json:"text,omitempty"`
}

// CallbackQuery is a button press carrying an opaque selection token
type CallbackQuery struct {
	ID      string           `json:"id"`
	From    User             `json:"from"`
	Message *IncomingMessage `json:"message,omitempty"`
	Data    string           `json:"data"`
}

// User identifies the sender
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
}

// Chat identifies the conversation
type Chat struct {
	ID int64 `json:"id"`
}

type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type replyMarkup struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

// SendText sends a plain text message
func (t *TelegramTransport) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := t.call(ctx, "sendMessage", map[string]any{
		"chat_id": chatID,
		"text":    text,
	})
	return err
}

// SendChoices sends a message with grouped selection buttons. Headings
// become non-selectable single-button rows.
func (t *TelegramTransport) SendChoices(ctx context.Context, chatID int64, text string, groups []domain.ButtonGroup) error {
	var keyboard [][]inlineButton
	for _, group := range groups {
		if group.Heading != "" {
			keyboard = append(keyboard, []inlineButton{{Text: group.Heading, CallbackData: HeadingToken}})
		}
		for _, button := range group.Buttons {
			keyboard = append(keyboard, []inlineButton{{Text: button.Label, CallbackData: button.Token}})
		}
	}

	_, err := t.call(ctx, "sendMessage", map[string]any{
		"chat_id":      chatID,
		"text":         text,
		"reply_markup": replyMarkup{InlineKeyboard: keyboard},
	})
	return err
}

// SendAudio uploads an audio file with title and performer metadata
func (t *TelegramTransport) SendAudio(ctx context.Context, chatID int64, path string, meta domain.AudioMeta) error {
	fields := map[string]string{
		"chat_id":   strconv.FormatInt(chatID, 10),
		"caption":   meta.Caption,
		"title":     meta.Title,
		"performer": meta.Performer,
	}
	return t.upload(ctx, "sendAudio", "audio", path, fields)
}

// SendVideo uploads a video file
func (t *TelegramTransport) SendVideo(ctx context.Context, chatID int64, path string, meta domain.VideoMeta) error {
	fields := map[string]string{
		"chat_id":            strconv.FormatInt(chatID, 10),
		"caption":            meta.Caption,
		"supports_streaming": strconv.FormatBool(meta.SupportsStreaming),
	}
	return t.upload(ctx, "sendVideo", "video", path, fields)
}

// Poll runs the long-polling loop until the context is done,
// dispatching each update on its own goroutine
func (t *TelegramTransport) Poll(ctx context.Context, handler UpdateHandler) error {
	t.logger.Info("Starting update polling",
		zap.Duration("timeout", t.pollTimeout))

	var offset int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := t.call(ctx, "getUpdates", map[string]any{
			"offset":  offset,
			"timeout": int(t.pollTimeout / time.Second),
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			t.logger.Warn("getUpdates failed", zap.Error(err))
			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		var updates []Update
		if err := json.Unmarshal(raw, &updates); err != nil {
			t.logger.Warn("Failed to parse updates", zap.Error(err))
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			update := update
			go t.Dispatch(ctx, handler, update)
		}
	}
}

// Dispatch routes one update into the handler. Anything the pipeline
// did not anticipate lands in the single fallback error path here.
func (t *TelegramTransport) Dispatch(ctx context.Context, handler UpdateHandler, update Update) {
	switch {
	case update.Message != nil && update.Message.Text != "":
		message := update.Message
		userID := message.Chat.ID
		if message.From != nil {
			userID = message.From.ID
		}
		if err := handler.HandleText(ctx, userID, message.Chat.ID, message.Text); err != nil {
			t.reportUnexpected(ctx, message.Chat.ID, update, err)
		}

	case update.CallbackQuery != nil:
		callback := update.CallbackQuery
		t.answerCallback(ctx, callback.ID)
		if callback.Data == HeadingToken || callback.Message == nil {
			return
		}
		chatID := callback.Message.Chat.ID
		if err := handler.HandleSelection(ctx, callback.From.ID, chatID, callback.Data); err != nil {
			t.reportUnexpected(ctx, chatID, update, err)
		}
	}
}

func (t *TelegramTransport) reportUnexpected(ctx context.Context, chatID int64, update Update, err error) {
	t.logger.Error("Unexpected pipeline failure",
		zap.Int64("update_id", update.UpdateID),
		zap.Any("update", update),
		zap.Error(err))

	if sendErr := t.SendText(ctx, chatID, "An unexpected error occurred. Please try again."); sendErr != nil {
		t.logger.Error("Failed to report error to user", zap.Error(sendErr))
	}
}

func (t *TelegramTransport) answerCallback(ctx context.Context, callbackID string) {
	if _, err := t.call(ctx, "answerCallbackQuery", map[string]any{"callback_query_id": callbackID}); err != nil {
		t.logger.Warn("answerCallbackQuery failed", zap.Error(err))
	}
}

func (t *TelegramTransport) call(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.methodURL(method), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return t.do(req, method)
}

func (t *TelegramTransport) upload(ctx context.Context, method, fileField, path string, fields map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return err
		}
	}
	part, err := writer.CreateFormFile(fileField, filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.methodURL(method), &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, err = t.do(req, method)
	return err
}

func (t *TelegramTransport) do(req *http.Request, method string) (json.RawMessage, error) {
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if !parsed.OK {
		return nil, fmt.Errorf("%s rejected: %s", method, parsed.Description)
	}
	return parsed.Result, nil
}

func (t *TelegramTransport) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, method)
}
