package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	t.Setenv("TARIFFHOUND_CACHEDIR", t.TempDir())

	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	if err := app.ExecuteWithArgs(context.Background(), []string{"version"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "tariffhound version") {
		t.Errorf("expected version output, got %q", stdout.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	if err := app.ExecuteWithArgs(context.Background(), []string{"frobnicate"}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestOffersRequiresFlags(t *testing.T) {
	t.Setenv("TARIFFHOUND_CACHEDIR", t.TempDir())

	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	if err := app.ExecuteWithArgs(context.Background(), []string{"offers"}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestServicesCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/offers/v1.0/aws/index.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"formatVersion": "v1.0",
			"publicationDate": "2024-03-12T00:00:00Z",
			"offers": {
				"AmazonEC2": {
					"offerCode": "AmazonEC2",
					"currentRegionIndexUrl": "/offers/v1.0/aws/AmazonEC2/current/region_index.json"
				}
			}
		}`))
	}))
	defer srv.Close()

	cacheDir := t.TempDir()
	t.Setenv("TARIFFHOUND_BASEURL", srv.URL)
	t.Setenv("TARIFFHOUND_CACHEDIR", cacheDir)

	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	if err := app.ExecuteWithArgs(context.Background(), []string{"services", "--log-level", "error"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "AmazonEC2") {
		t.Errorf("expected dumped offer index, got %q", stdout.String())
	}

	artifact := filepath.Join(cacheDir, "aws", "bulk", "service_index", "_v1.json")
	if _, err := os.Stat(artifact); err != nil {
		t.Errorf("expected cached artifact at %s: %v", artifact, err)
	}
}
