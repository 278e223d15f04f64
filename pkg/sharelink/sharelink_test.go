package sharelink_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgcloud/tgcloud/pkg/sharelink"
)

func sampleRecord() sharelink.Record {
	return sharelink.Record{
		BotToken:   "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11",
		FileID:     "BQACAgIAAxkDAAIB",
		Name:       "report.pdf",
		Size:       10,
		UploadDate: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	record := sampleRecord()

	token, err := sharelink.Encode(record)
	require.NoError(t, err)

	decoded, err := sharelink.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, record, *decoded)
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := sharelink.Encode(sampleRecord())
	require.NoError(t, err)
	b, err := sharelink.Encode(sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTokenIsURLSafe(t *testing.T) {
	token, err := sharelink.Encode(sampleRecord())
	require.NoError(t, err)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not base64url", token: "!!!not-base64!!!"},
		{name: "base64 but not deflate", token: "aGVsbG8gd29ybGQ"},
		{name: "truncated", token: func() string {
			tok, _ := sharelink.Encode(sampleRecord())
			return tok[:len(tok)/2]
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sharelink.Decode(tt.token)
			assert.ErrorIs(t, err, sharelink.ErrMalformed)
		})
	}
}

func TestDecodeRejectsEmptyHandle(t *testing.T) {
	record := sampleRecord()
	record.FileID = ""
	token, err := sharelink.Encode(record)
	require.NoError(t, err)

	_, err = sharelink.Decode(token)
	assert.ErrorIs(t, err, sharelink.ErrMalformed)
}

func TestTokenSurvivesAsQueryParameter(t *testing.T) {
	token, err := sharelink.Encode(sampleRecord())
	require.NoError(t, err)

	// The token must embed verbatim into a URL.
	url := "https://example.com/share?token=" + token
	extracted := strings.TrimPrefix(url, "https://example.com/share?token=")
	decoded, err := sharelink.Decode(extracted)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", decoded.Name)
}
