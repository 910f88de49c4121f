package media

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestResolveVideoURL_InsertsWatermark(t *testing.T) {
	r := NewResolver(zerolog.Nop())

	raw := "https://res.cloudinary.com/demo/video/upload/v1/courses/intro.mp4"
	got := r.ResolveVideoURL(raw, "viewer@example.com")

	if got == raw {
		t.Fatalf("expected transformed url")
	}
	prefix := "https://res.cloudinary.com/demo/video/upload/l_text:arial_24:"
	if !strings.HasPrefix(got, prefix) {
		t.Fatalf("overlay not inserted after upload segment: %s", got)
	}
	if !strings.HasSuffix(got, "/v1/courses/intro.mp4") {
		t.Fatalf("public id path not preserved: %s", got)
	}
	if !strings.Contains(got, "viewer%40example.com") {
		t.Fatalf("viewer identity not embedded: %s", got)
	}
}

func TestResolveVideoURL_NoViewer(t *testing.T) {
	r := NewResolver(zerolog.Nop())

	raw := "https://res.cloudinary.com/demo/video/upload/v1/intro.mp4"
	if got := r.ResolveVideoURL(raw, ""); got != raw {
		t.Fatalf("anonymous read must not be watermarked: %s", got)
	}
}

func TestResolveVideoURL_NonUploadURL(t *testing.T) {
	r := NewResolver(zerolog.Nop())

	raw := "https://cdn.example.com/videos/intro.mp4"
	if got := r.ResolveVideoURL(raw, "viewer@example.com"); got != raw {
		t.Fatalf("urls without upload segment must pass through: %s", got)
	}
}

func TestResolveVideoURL_EmptyURL(t *testing.T) {
	r := NewResolver(zerolog.Nop())

	if got := r.ResolveVideoURL("", "viewer@example.com"); got != "" {
		t.Fatalf("empty url must pass through, got %q", got)
	}
}

func TestEscapeOverlayText(t *testing.T) {
	got := escapeOverlayText("a,b/c@d")
	if strings.Contains(got, ",") || strings.Contains(got, "/") {
		t.Fatalf("delimiters must be encoded: %s", got)
	}
	if !strings.Contains(got, "%252C") || !strings.Contains(got, "%252F") {
		t.Fatalf("expected double-encoded delimiters: %s", got)
	}
}
