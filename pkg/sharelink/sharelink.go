// Package sharelink encodes a minimal file record into a compact URL-safe
// token and back. A token is self-contained: it carries the credential
// needed to open a fetch session, so a recipient with no catalog of their
// own can still download the file. The token owns a copy of the record;
// deleting the original catalog entry does not invalidate it.
package sharelink

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrMalformed is returned by Decode for anything that is not a token
// produced by Encode.
var ErrMalformed = errors.New("malformed share token")

// Record is the payload of a share token: enough to re-derive a fetch
// session and the attachment handle, bypassing any index.
type Record struct {
	BotToken   string    `json:"t"`
	FileID     string    `json:"f"`
	Name       string    `json:"n"`
	Size       int64     `json:"s"`
	UploadDate time.Time `json:"d"`
}

// Encode serializes the record, compresses it and applies a URL-safe text
// encoding. Deterministic for identical inputs.
func Encode(r Record) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encoding share record: %w", err)
	}
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("encoding share record: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("encoding share record: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("encoding share record: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode is the inverse of Encode. Any decoding, decompression or parse
// problem is reported as ErrMalformed.
func Decode(token string) (*Record, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	r := flate.NewReader(bytes.NewReader(raw))
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if record.FileID == "" || record.BotToken == "" {
		return nil, fmt.Errorf("%w: missing file handle or credential", ErrMalformed)
	}
	return &record, nil
}
