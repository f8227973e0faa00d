package textextract

import (
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNoop(t *testing.T) {
	texts, err := (Noop{}).ExtractText(context.Background(), image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if err != nil {
		t.Fatalf("Noop.ExtractText failed: %v", err)
	}
	if len(texts) != 0 {
		t.Errorf("Noop must return no text, got %v", texts)
	}
}

func TestHTTPClient_ExtractText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extract" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("Expected multipart upload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"texts": ["FREE MONEY", "act now"]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	texts, err := c.ExtractText(context.Background(), image.NewRGBA(image.Rect(0, 0, 8, 8)))
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if len(texts) != 2 || texts[0] != "FREE MONEY" {
		t.Errorf("Unexpected texts: %v", texts)
	}
}

func TestHTTPClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	if _, err := c.ExtractText(context.Background(), image.NewRGBA(image.Rect(0, 0, 8, 8))); err == nil {
		t.Error("Expected error on server failure")
	}
}
