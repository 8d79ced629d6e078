package llm

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

// A 1x1 transparent PNG.
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

func TestParseDataURL(t *testing.T) {
	raw, _ := base64.StdEncoding.DecodeString(tinyPNG)

	tests := []struct {
		name     string
		in       string
		mimeType string
		wantMIME string
	}{
		{"data URL", "data:image/png;base64," + tinyPNG, "", "image/png"},
		{"data URL wins over hint", "data:image/jpeg;base64," + tinyPNG, "image/png", "image/jpeg"},
		{"bare base64 with hint", tinyPNG, "image/webp", "image/webp"},
		{"bare base64 sniffed", tinyPNG, "", "image/png"},
		{"wrapped lines", tinyPNG[:20] + "\n" + tinyPNG[20:], "image/png", "image/png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ParseDataURL(tt.in, tt.mimeType)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.MIMEType != tt.wantMIME {
				t.Errorf("MIMEType = %q, want %q", img.MIMEType, tt.wantMIME)
			}
			if string(img.Data) != string(raw) {
				t.Errorf("decoded %d bytes, want %d", len(img.Data), len(raw))
			}
		})
	}
}

func TestParseDataURL_Errors(t *testing.T) {
	if _, err := ParseDataURL("   ", ""); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
	if _, err := ParseDataURL("data:image/png;base64", ""); err == nil {
		t.Fatal("expected error for missing comma")
	}
	if _, err := ParseDataURL("data:text/plain,hello", ""); err == nil {
		t.Fatal("expected error for non-base64 data URL")
	}
	if _, err := ParseDataURL("!!!not base64!!!", "image/png"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestImage_DataURLRoundTrip(t *testing.T) {
	img := Image{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}
	url := img.DataURL()
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected data URL %q", url)
	}
	back, err := ParseDataURL(url, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(back.Data) != string(img.Data) || back.MIMEType != img.MIMEType {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}
