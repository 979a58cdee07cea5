package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *MemoryTokenStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := NewMemoryTokenStore()
	return NewClient(server.URL, tokens, time.Second, "FieldMart/1.0 test"), tokens
}

func TestGetDecodesEnvelopeData(t *testing.T) {
	client, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/fields" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("User-Agent") != "FieldMart/1.0 test" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"name":"Green Park"}]}`))
	})
	tokens.SetToken("tok-123")

	var out []struct {
		Name string `json:"name"`
	}
	if err := client.Get(context.Background(), "/fields", &out); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out) != 1 || out[0].Name != "Green Park" {
		t.Fatalf("unexpected decode result: %+v", out)
	}
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("expected no auth header, got %q", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	if err := client.Get(context.Background(), "/fields", nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestSuccessFalseBecomesError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"slot already booked"}`))
	})

	err := client.Post(context.Background(), "/booking/sf1", map[string]string{}, nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "slot already booked" {
		t.Fatalf("unexpected error fields: %+v", apiErr)
	}
}

func TestErrorObjectEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"VALIDATION_ERROR","message":"name required"}}`))
	})

	err := client.Post(context.Background(), "/fields", map[string]string{}, nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Code != "VALIDATION_ERROR" || apiErr.Message != "name required" {
		t.Fatalf("unexpected error fields: %+v", apiErr)
	}
}

func TestSuccessFalseWithoutMessageUsesFallback(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	})

	err := client.Get(context.Background(), "/fields", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Message != "request failed" {
		t.Fatalf("expected fallback message, got %q", apiErr.Message)
	}
}

func TestNonEnvelopedErrorBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	err := client.Get(context.Background(), "/fields", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError || apiErr.Message != "boom" {
		t.Fatalf("unexpected error fields: %+v", apiErr)
	}
}

func TestNonEnvelopedSuccessBodyDecodesDirectly(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"f1"}`))
	})

	var out struct {
		ID string `json:"id"`
	}
	if err := client.Get(context.Background(), "/fields/f1", &out); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.ID != "f1" {
		t.Fatalf("unexpected decode result: %+v", out)
	}
}

func TestTimeoutClassified(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	client.http.Timeout = 20 * time.Millisecond

	err := client.Get(context.Background(), "/fields", nil)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "api request timeout") {
		t.Fatalf("expected timeout classification, got %v", err)
	}
}

func TestPostFormSubmitsMultipart(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart: %v", err)
		}
		if got := r.FormValue("name"); got != "Green Park" {
			t.Errorf("expected name field, got %q", got)
		}
		if got := r.MultipartForm.Value["slots"]; len(got) != 2 {
			t.Errorf("expected 2 slot fields, got %v", got)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("missing image part: %v", err)
		}
		defer file.Close()
		if header.Header.Get("Content-Type") != "image/png" {
			t.Errorf("unexpected part content type %q", header.Header.Get("Content-Type"))
		}
		data, _ := io.ReadAll(file)
		if string(data) != "fake-png" {
			t.Errorf("unexpected file content %q", data)
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	form := NewForm()
	if err := form.Field("name", "Green Park"); err != nil {
		t.Fatal(err)
	}
	for _, slot := range []string{"5:00 - 6:30", "6:30 - 8:00"} {
		if err := form.Field("slots", slot); err != nil {
			t.Fatal(err)
		}
	}
	if err := form.File("image", "park.png", "image/png", []byte("fake-png")); err != nil {
		t.Fatal(err)
	}

	if err := client.PostForm(context.Background(), "/fields", form, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
