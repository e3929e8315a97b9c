package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestPage_OK(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "recipes-test/1.0"}
	body, err := c.Page(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if body != "<html><body>ok</body></html>" {
		t.Fatalf("body: got %q", body)
	}
	if gotUA != "recipes-test/1.0" {
		t.Fatalf("user-agent: got %q", gotUA)
	}
}

func TestPage_NonOKStatusSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := &Client{}
	_, err := c.Page(context.Background(), srv.URL)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error: got %v, want StatusError", err)
	}
	if se.Status != http.StatusNotFound {
		t.Fatalf("status: got %d", se.Status)
	}
}

func TestPage_RetriesServerErrorOnce(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>recovered</html>"))
	}))
	defer srv.Close()

	c := &Client{RetryServerErrors: true}
	body, err := c.Page(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if body != "<html>recovered</html>" {
		t.Fatalf("body: got %q", body)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("calls: got %d, want 2", n)
	}
}

func TestPage_RejectsNonHTMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	c := &Client{}
	_, err := c.Page(context.Background(), srv.URL)
	if !errors.Is(err, ErrNotHTML) {
		t.Fatalf("error: got %v, want ErrNotHTML", err)
	}
}

func TestPage_RejectsNonHTTPScheme(t *testing.T) {
	c := &Client{}
	if _, err := c.Page(context.Background(), "ftp://example.com/recipe"); err == nil {
		t.Fatalf("expected scheme error")
	}
}

func TestPage_TimeoutAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := &Client{Timeout: 50 * time.Millisecond}
	start := time.Now()
	if _, err := c.Page(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected timeout error")
	}
	if time.Since(start) > 400*time.Millisecond {
		t.Fatalf("timeout did not bound the request")
	}
}
