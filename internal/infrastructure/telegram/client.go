// Package telegram implements the messaging backend client on top of the
// Telegram Bot API. Every call is a blocking HTTP request/response; there
// are no retries and no multi-call transactions.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tgcloud/tgcloud/internal/domain/entities"
	"github.com/tgcloud/tgcloud/internal/domain/repository"
)

// DefaultBaseURL is the production Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

const defaultTimeout = 60 * time.Second

// Client talks to the Bot API for one bot credential.
type Client struct {
	token   string
	baseURL string
	httpc   *http.Client
}

// Option adjusts a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithTimeout sets the per-call HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// NewClient builds a Bot API client for the given credential.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse is the Bot API envelope shared by every method.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
	ErrorCode   int             `json:"error_code"`
}

type apiDocument struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
}

type apiMessage struct {
	MessageID int64        `json:"message_id"`
	Document  *apiDocument `json:"document"`
}

type apiChat struct {
	ID            int64       `json:"id"`
	Type          string      `json:"type"`
	Title         string      `json:"title"`
	FirstName     string      `json:"first_name"`
	Username      string      `json:"username"`
	PinnedMessage *apiMessage `json:"pinned_message"`
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

// call performs one Bot API method as a form POST and decodes the result
// payload into out (which may be nil when the result is irrelevant).
func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.methodURL(method), strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("%s: %w: %v", method, entities.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, method, out)
}

func (c *Client) do(req *http.Request, method string, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", method, entities.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", method, entities.ErrTransport, err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%s: %w: HTTP %d: %v", method, entities.ErrTransport, resp.StatusCode, err)
	}
	if !envelope.OK {
		if isPermissionError(envelope.Description) {
			return fmt.Errorf("%s: %w: %s", method, entities.ErrNeedsPermission, envelope.Description)
		}
		return fmt.Errorf("%s: %w: %s", method, entities.ErrTransport, envelope.Description)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("%s: %w: %v", method, entities.ErrTransport, err)
		}
	}
	return nil
}

// isPermissionError recognizes the Bot API wording for missing admin
// rights, e.g. "Bad Request: not enough rights to manage pinned messages
// in the chat" or "CHAT_ADMIN_REQUIRED".
func isPermissionError(description string) bool {
	d := strings.ToLower(description)
	return strings.Contains(d, "not enough rights") ||
		strings.Contains(d, "chat_admin_required") ||
		strings.Contains(d, "need administrator rights")
}

// Me validates the credential via getMe.
func (c *Client) Me(ctx context.Context) (*repository.BotInfo, error) {
	var user struct {
		ID        int64  `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
	}
	if err := c.call(ctx, "getMe", url.Values{}, &user); err != nil {
		return nil, err
	}
	return &repository.BotInfo{ID: user.ID, Username: user.Username, FirstName: user.FirstName}, nil
}

// ListChats discovers chats from the bot's pending updates (getUpdates).
// Only chats the bot has actually received a message from appear here.
func (c *Client) ListChats(ctx context.Context) ([]repository.ChatInfo, error) {
	var updates []struct {
		Message *struct {
			Chat apiChat `json:"chat"`
		} `json:"message"`
	}
	if err := c.call(ctx, "getUpdates", url.Values{}, &updates); err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var chats []repository.ChatInfo
	for _, u := range updates {
		if u.Message == nil || seen[u.Message.Chat.ID] {
			continue
		}
		chat := u.Message.Chat
		title := chat.Title
		if chat.Type == "private" {
			title = chat.FirstName
			if chat.Username != "" {
				title = fmt.Sprintf("%s (@%s)", title, chat.Username)
			}
		}
		seen[chat.ID] = true
		chats = append(chats, repository.ChatInfo{ID: chat.ID, Type: chat.Type, Title: title})
	}
	return chats, nil
}

// UploadAttachment sends payload to the chat as a document (sendDocument)
// and returns the resulting message and file handles.
func (c *Client) UploadAttachment(ctx context.Context, chatID int64, payload []byte, displayName string) (*repository.Attachment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return nil, fmt.Errorf("sendDocument: %w: %v", entities.ErrTransport, err)
	}
	caption := fmt.Sprintf("%s (%s)", displayName, time.Now().UTC().Format("2006-01-02 15:04:05"))
	if err := mw.WriteField("caption", caption); err != nil {
		return nil, fmt.Errorf("sendDocument: %w: %v", entities.ErrTransport, err)
	}
	fw, err := mw.CreateFormFile("document", displayName)
	if err != nil {
		return nil, fmt.Errorf("sendDocument: %w: %v", entities.ErrTransport, err)
	}
	if _, err := fw.Write(payload); err != nil {
		return nil, fmt.Errorf("sendDocument: %w: %v", entities.ErrTransport, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("sendDocument: %w: %v", entities.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendDocument"), &buf)
	if err != nil {
		return nil, fmt.Errorf("sendDocument: %w: %v", entities.ErrTransport, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var msg apiMessage
	if err := c.do(req, "sendDocument", &msg); err != nil {
		return nil, err
	}
	if msg.Document == nil {
		return nil, fmt.Errorf("sendDocument: %w: response carries no document", entities.ErrTransport)
	}
	return &repository.Attachment{MessageID: msg.MessageID, FileID: msg.Document.FileID}, nil
}

// FetchAttachment resolves a file handle to a download path (getFile) and
// downloads the bytes.
func (c *Client) FetchAttachment(ctx context.Context, fileID string) ([]byte, error) {
	var file struct {
		FilePath string `json:"file_path"`
	}
	params := url.Values{"file_id": {fileID}}
	if err := c.call(ctx, "getFile", params, &file); err != nil {
		return nil, err
	}
	if file.FilePath == "" {
		return nil, fmt.Errorf("getFile: %w: empty file path", entities.ErrTransport)
	}

	downloadURL := fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("download: %w: %v", entities.ErrTransport, err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w: %v", entities.ErrTransport, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: %w: HTTP %d", entities.ErrTransport, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download: %w: %v", entities.ErrTransport, err)
	}
	return data, nil
}

// GetChatPinned returns the chat's pinned message (getChat), or nil when
// the chat has none.
func (c *Client) GetChatPinned(ctx context.Context, chatID int64) (*repository.PinnedMessage, error) {
	var chat apiChat
	params := url.Values{"chat_id": {strconv.FormatInt(chatID, 10)}}
	if err := c.call(ctx, "getChat", params, &chat); err != nil {
		return nil, err
	}
	if chat.PinnedMessage == nil {
		return nil, nil
	}
	pinned := &repository.PinnedMessage{MessageID: chat.PinnedMessage.MessageID}
	if doc := chat.PinnedMessage.Document; doc != nil {
		pinned.FileID = doc.FileID
		pinned.Name = doc.FileName
	}
	return pinned, nil
}

// Pin marks the message as pinned (pinChatMessage) without notifying chat
// members. A missing-rights refusal maps to entities.ErrNeedsPermission.
func (c *Client) Pin(ctx context.Context, chatID, messageID int64) error {
	params := url.Values{
		"chat_id":              {strconv.FormatInt(chatID, 10)},
		"message_id":           {strconv.FormatInt(messageID, 10)},
		"disable_notification": {"true"},
	}
	return c.call(ctx, "pinChatMessage", params, nil)
}

// Unpin removes the pin from the message (unpinChatMessage).
func (c *Client) Unpin(ctx context.Context, chatID, messageID int64) error {
	params := url.Values{
		"chat_id":    {strconv.FormatInt(chatID, 10)},
		"message_id": {strconv.FormatInt(messageID, 10)},
	}
	return c.call(ctx, "unpinChatMessage", params, nil)
}
