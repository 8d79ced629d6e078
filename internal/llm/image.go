package llm

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNoImage is returned when an image payload is empty.
var ErrNoImage = errors.New("no image data")

// Image is an inline image attached to a user message.
type Image struct {
	MIMEType string
	Data     []byte
}

// Base64 returns the standard base64 encoding of the image bytes.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL returns the image as a data: URL.
func (i Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", i.MIMEType, i.Base64())
}

// ParseDataURL decodes an image sent by a client. s may be a full
// "data:<mime>;base64,<payload>" URL or bare base64; for bare payloads
// mimeType is used, and when that is empty too the type is sniffed.
func ParseDataURL(s, mimeType string) (Image, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Image{}, ErrNoImage
	}

	payload := s
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		meta, data, found := strings.Cut(rest, ",")
		if !found {
			return Image{}, fmt.Errorf("malformed data URL: missing ','")
		}
		mt, enc, _ := strings.Cut(meta, ";")
		if enc != "base64" {
			return Image{}, fmt.Errorf("unsupported data URL encoding %q", enc)
		}
		if mt != "" {
			mimeType = mt
		}
		payload = data
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return Image{}, fmt.Errorf("decode image: %w", err)
	}
	if len(data) == 0 {
		return Image{}, ErrNoImage
	}

	return NewImage(data, mimeType), nil
}

// NewImage wraps raw image bytes, sniffing the MIME type when mimeType is
// empty.
func NewImage(data []byte, mimeType string) Image {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return Image{MIMEType: mimeType, Data: data}
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}
