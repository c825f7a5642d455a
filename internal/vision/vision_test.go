package vision

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
)

func TestExtractSignalsRoundTrip(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"face_present": false, "eyes_open": false, "distraction_level": 0.8}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	b, err := c.ExtractSignals(context.Background(), "u1", []byte{0x01, 0x02})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if gotPath != "/api/vision/extract" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody["user_id"] != "u1" {
		t.Fatalf("user_id = %q", gotBody["user_id"])
	}
	frame, _ := base64.StdEncoding.DecodeString(gotBody["frame"])
	if len(frame) != 2 || frame[0] != 0x01 {
		t.Fatalf("frame not round-tripped: %v", frame)
	}

	if b.FacePresent || b.EyesOpen {
		t.Fatalf("explicit false not preserved: %+v", b)
	}
	if !b.GazeStable {
		t.Fatal("absent field should default leniently")
	}
	if b.DistractionLevel != 0.8 {
		t.Fatalf("level = %v", b.DistractionLevel)
	}
}

func TestExtractSignalsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	if _, err := c.ExtractSignals(context.Background(), "u1", nil); err == nil {
		t.Fatal("5xx must surface as an error")
	}
}

func TestExtractSignalsMalformedBodyDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	b, err := c.ExtractSignals(context.Background(), "u1", nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !b.FacePresent || !b.EyesOpen || !b.GazeStable {
		t.Fatalf("malformed body should degrade to lenient defaults: %+v", b)
	}
}
