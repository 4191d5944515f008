package openai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"voiceprep/internal/services"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "line01.wav")
	if err := os.WriteFile(path, []byte("RIFF....WAVE"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRecognizeSendsVerboseJSON(t *testing.T) {
	audio := writeAudio(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if r.FormValue("model") != "whisper-large" || r.FormValue("response_format") != "verbose_json" {
			t.Errorf("unexpected form values: %v", r.MultipartForm.Value)
		}
		if _, ok := r.MultipartForm.Value["language"]; ok {
			t.Errorf("language hint must not be sent")
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file: %v", err)
		} else {
			data, _ := io.ReadAll(file)
			if header.Filename != "line01.wav" || string(data) != "RIFF....WAVE" {
				t.Errorf("unexpected upload %s %q", header.Filename, data)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"text":" 你好 ","language":"chinese","duration":1.2}`)
	}))
	defer server.Close()

	client := NewClient("sk-test", WithBaseURL(server.URL+"/v1/"), WithModel("whisper-large"))
	got, err := client.Recognize(context.Background(), audio)
	if err != nil {
		t.Fatalf("Recognize returned error: %v", err)
	}
	if got.Language != "zh" {
		t.Fatalf("expected language zh, got %q", got.Language)
	}
	if got.TrimmedText() != "你好" {
		t.Fatalf("unexpected text %q", got.Text)
	}
}

func TestTranscribeClassifiesStatus(t *testing.T) {
	audio := writeAudio(t)
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, services.ErrConfiguration},
		{http.StatusTooManyRequests, services.ErrTransient},
		{http.StatusBadGateway, services.ErrTransient},
		{http.StatusBadRequest, services.ErrExternalTool},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer server.Close()

			_, err := NewClient("k", WithBaseURL(server.URL)).Transcribe(context.Background(), audio)
			if !errors.Is(err, tt.want) {
				t.Fatalf("status %d: expected %v, got %v", tt.status, tt.want, err)
			}
		})
	}
}

func TestTranscribeRequiresAPIKey(t *testing.T) {
	_, err := NewClient("  ").Transcribe(context.Background(), writeAudio(t))
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !services.IsFatal(err) {
		t.Fatal("missing key should abort the run")
	}
}

func TestRecognizeRequestTimeoutIsPerFile(t *testing.T) {
	audio := writeAudio(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL), WithTimeout(50*time.Millisecond))
	_, err := client.Recognize(context.Background(), audio)
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout marker, got %v", err)
	}
	if services.IsFatal(err) {
		t.Fatalf("a slow response must not abort the run: %v", err)
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	_, err := NewClient("k").Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	if err == nil {
		t.Fatal("expected error for missing audio")
	}
}
