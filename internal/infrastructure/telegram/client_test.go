package telegram_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgcloud/tgcloud/internal/domain/entities"
	"github.com/tgcloud/tgcloud/internal/infrastructure/telegram"
)

const testToken = "123456:TEST"

func ok(w http.ResponseWriter, result any) {
	json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
}

func apiError(w http.ResponseWriter, code int, description string) {
	json.NewEncoder(w).Encode(map[string]any{
		"ok": false, "error_code": code, "description": description,
	})
}

// newAPIServer builds a fake Bot API host routing bot method calls to the
// given handlers by method name.
func newAPIServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for method, h := range handlers {
		mux.HandleFunc(fmt.Sprintf("/bot%s/%s", testToken, method), h)
	}
	return httptest.NewServer(mux)
}

func TestMe(t *testing.T) {
	server := newAPIServer(t, map[string]http.HandlerFunc{
		"getMe": func(w http.ResponseWriter, r *http.Request) {
			ok(w, map[string]any{"id": 99, "username": "storage_bot", "first_name": "Storage"})
		},
	})
	defer server.Close()

	client := telegram.NewClient(testToken, telegram.WithBaseURL(server.URL))
	bot, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(99), bot.ID)
	assert.Equal(t, "storage_bot", bot.Username)
}

func TestMeInvalidToken(t *testing.T) {
	server := newAPIServer(t, map[string]http.HandlerFunc{
		"getMe": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			apiError(w, 401, "Unauthorized")
		},
	})
	defer server.Close()

	client := telegram.NewClient(testToken, telegram.WithBaseURL(server.URL))
	_, err := client.Me(context.Background())
	assert.ErrorIs(t, err, entities.ErrTransport)
}

func TestUploadAttachment(t *testing.T) {
	var gotChatID, gotName string
	var gotPayload []byte

	server := newAPIServer(t, map[string]http.HandlerFunc{
		"sendDocument": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			gotChatID = r.FormValue("chat_id")
			file, header, err := r.FormFile("document")
			require.NoError(t, err)
			defer file.Close()
			gotName = header.Filename
			gotPayload, err = io.ReadAll(file)
			require.NoError(t, err)

			ok(w, map[string]any{
				"message_id": 7,
				"document":   map[string]any{"file_id": "file-abc", "file_name": gotName},
			})
		},
	})
	defer server.Close()

	client := telegram.NewClient(testToken, telegram.WithBaseURL(server.URL))
	attachment, err := client.UploadAttachment(context.Background(), 42, []byte("payload"), "doc.txt")

	require.NoError(t, err)
	assert.Equal(t, int64(7), attachment.MessageID)
	assert.Equal(t, "file-abc", attachment.FileID)
	assert.Equal(t, "42", gotChatID)
	assert.Equal(t, "doc.txt", gotName)
	assert.Equal(t, []byte("payload"), gotPayload)
}

func TestFetchAttachment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(fmt.Sprintf("/bot%s/getFile", testToken), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "file-abc", r.FormValue("file_id"))
		ok(w, map[string]any{"file_path": "documents/doc.txt"})
	})
	mux.HandleFunc(fmt.Sprintf("/file/bot%s/documents/doc.txt", testToken), func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("the content"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := telegram.NewClient(testToken, telegram.WithBaseURL(server.URL))
	data, err := client.FetchAttachment(context.Background(), "file-abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("the content"), data)
}

func TestFetchAttachmentBadHandle(t *testing.T) {
	server := newAPIServer(t, map[string]http.HandlerFunc{
		"getFile": func(w http.ResponseWriter, r *http.Request) {
			apiError(w, 400, "Bad Request: wrong file_id")
		},
	})
	defer server.Close()

	client := telegram.NewClient(testToken, telegram.WithBaseURL(server.URL))
	_, err := client.FetchAttachment(context.Background(), "bogus")
	assert.ErrorIs(t, err, entities.ErrTransport)
}

func TestGetChatPinned(t *testing.T) {
	tests := []struct {
		name   string
		result map[string]any
	}{
		{
			name:   "no pinned message",
			result: map[string]any{"id": 42, "type": "private"},
		},
		{
			name: "pinned without document",
			result: map[string]any{
				"id": 42, "type": "private",
				"pinned_message": map[string]any{"message_id": 5},
			},
		},
		{
			name: "pinned index document",
			result: map[string]any{
				"id": 42, "type": "private",
				"pinned_message": map[string]any{
					"message_id": 5,
					"document":   map[string]any{"file_id": "file-idx", "file_name": "tgcloud-index.json"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newAPIServer(t, map[string]http.HandlerFunc{
				"getChat": func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "42", r.FormValue("chat_id"))
					ok(w, tt.result)
				},
			})
			defer server.Close()

			client := telegram.NewClient(testToken, telegram.WithBaseURL(server.URL))
			pinned, err := client.GetChatPinned(context.Background(), 42)
			require.NoError(t, err)

			switch tt.name {
			case "no pinned message":
				assert.Nil(t, pinned)
			case "pinned without document":
				require.NotNil(t, pinned)
				assert.Equal(t, int64(5), pinned.MessageID)
				assert.Empty(t, pinned.FileID)
			default:
				require.NotNil(t, pinned)
				assert.Equal(t, "file-idx", pinned.FileID)
				assert.Equal(t, "tgcloud-index.json", pinned.Name)
			}
		})
	}
}

func TestPinPermissionDenied(t *testing.T) {
	server := newAPIServer(t, map[string]http.HandlerFunc{
		"pinChatMessage": func(w http.ResponseWriter, r *http.Request) {
			apiError(w, 400, "Bad Request: not enough rights to manage pinned messages in the chat")
		},
	})
	defer server.Close()

	client := telegram.NewClient(testToken, telegram.WithBaseURL(server.URL))
	err := client.Pin(context.Background(), 42, 5)
	assert.ErrorIs(t, err, entities.ErrNeedsPermission)
}

func TestPinAndUnpin(t *testing.T) {
	var pinnedID, unpinnedID string
	server := newAPIServer(t, map[string]http.HandlerFunc{
		"pinChatMessage": func(w http.ResponseWriter, r *http.Request) {
			pinnedID = r.FormValue("message_id")
			ok(w, true)
		},
		"unpinChatMessage": func(w http.ResponseWriter, r *http.Request) {
			unpinnedID = r.FormValue("message_id")
			ok(w, true)
		},
	})
	defer server.Close()

	client := telegram.NewClient(testToken, telegram.WithBaseURL(server.URL))
	require.NoError(t, client.Pin(context.Background(), 42, 8))
	require.NoError(t, client.Unpin(context.Background(), 42, 7))
	assert.Equal(t, "8", pinnedID)
	assert.Equal(t, "7", unpinnedID)
}

func TestListChats(t *testing.T) {
	server := newAPIServer(t, map[string]http.HandlerFunc{
		"getUpdates": func(w http.ResponseWriter, r *http.Request) {
			ok(w, []map[string]any{
				{"message": map[string]any{"chat": map[string]any{
					"id": 1, "type": "private", "first_name": "Ana", "username": "ana",
				}}},
				{"message": map[string]any{"chat": map[string]any{
					"id": 1, "type": "private", "first_name": "Ana", "username": "ana",
				}}},
				{"message": map[string]any{"chat": map[string]any{
					"id": -100, "type": "group", "title": "Backups",
				}}},
				{},
			})
		},
	})
	defer server.Close()

	client := telegram.NewClient(testToken, telegram.WithBaseURL(server.URL))
	chats, err := client.ListChats(context.Background())
	require.NoError(t, err)

	require.Len(t, chats, 2)
	assert.Equal(t, "Ana (@ana)", chats[0].Title)
	assert.Equal(t, int64(-100), chats[1].ID)
	assert.Equal(t, "Backups", chats[1].Title)
}

func TestMalformedResponseIsTransportFailure(t *testing.T) {
	server := newAPIServer(t, map[string]http.HandlerFunc{
		"getMe": func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "<html>gateway timeout</html>")
		},
	})
	defer server.Close()

	client := telegram.NewClient(testToken, telegram.WithBaseURL(server.URL))
	_, err := client.Me(context.Background())
	assert.ErrorIs(t, err, entities.ErrTransport)
	assert.True(t, strings.Contains(err.Error(), "getMe"))
}
