package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/gostopwatch/internal/pkg/config"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/validator"
)

const testConfig = `
app:
  name: stopwatch
  shutdown_timeout_seconds: 3
  server:
    http:
      address: 127.0.0.1:9876
    admin:
      enabled: true
      address: 127.0.0.1:9877
instrument:
  enabled: false
  log_level: error
`

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestApp_ServeAndStop(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)

	a := New()
	if a.ShutdownTimeout() != 3*time.Second {
		t.Fatalf("ShutdownTimeout() = %s", a.ShutdownTimeout())
	}

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	al, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	errs := a.Serve(l, al)
	base := "http://" + l.Addr().String()
	admin := "http://" + al.Addr().String()

	// Act & Assert
	if _, body := get(t, base+"/start?name=app"); body != "0" {
		t.Fatalf("start = %q", body)
	}
	status, body := get(t, base+"/stop?name=app")
	if status != http.StatusOK {
		t.Fatalf("stop status = %d", status)
	}
	if n, err := strconv.ParseInt(body, 10, 64); err != nil || n < 0 {
		t.Fatalf("stop = %q", body)
	}
	if _, body := get(t, base+"/frobnicate"); body != "unknown" {
		t.Fatalf("unknown route = %q", body)
	}
	if _, body := get(t, base+"/health"); body != "unknown" {
		t.Fatalf("/health on the stopwatch listener = %q, want unknown", body)
	}

	if status, _ := get(t, admin+"/health"); status != http.StatusOK {
		t.Fatalf("admin health status = %d", status)
	}
	if _, body := get(t, admin+"/metrics"); !strings.Contains(body, "stopwatch_timers_stopped_total 1") {
		t.Fatalf("metrics missing stopped counter:\n%s", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Stop(ctx)

	for range 2 {
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("Serve() = %v, want ErrServerClosed", err)
		}
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf, "127.0.0.1:9876")

	want := "Timing server running on http://127.0.0.1:9876\n" +
		"Endpoints:\n" +
		"  /now            - Monotonic nanoseconds since server start\n" +
		"  /start?name=XXX - Start named timer\n" +
		"  /stop?name=XXX  - Stop named timer, returns nanoseconds\n"
	if buf.String() != want {
		t.Fatalf("banner = %q", buf.String())
	}
}

func TestLoadSettings(t *testing.T) {
	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		yaml    string
		wantKey string
	}{
		{name: "defaults", yaml: "app: {}"},
		{
			name:    "bad http address",
			yaml:    "app: {server: {http: {address: nowhere}}}",
			wantKey: "app.server.http.address",
		},
		{
			name:    "admin enabled without address",
			yaml:    "app: {server: {admin: {enabled: true, address: ''}}}",
			wantKey: "app.server.admin.address",
		},
		{
			name: "admin disabled without address",
			yaml: "app: {server: {admin: {enabled: false, address: ''}}}",
		},
		{
			name:    "sample ratio out of range",
			yaml:    "instrument: {trace_sample_ratio: 2}",
			wantKey: "instrument.trace_sample_ratio",
		},
		{
			name:    "unknown log level",
			yaml:    "instrument: {log_level: loud}",
			wantKey: "instrument.log_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.NewViperFromBytes("yaml", []byte(tt.yaml))
			if err != nil {
				t.Fatal(err)
			}

			err = v.Validate(loadSettings(cfg))
			if tt.wantKey == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}

			var verr validator.V10ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want V10ValidationError", err)
			}
			if _, ok := verr[tt.wantKey]; !ok {
				t.Fatalf("Validate() = %v, want key %q", verr, tt.wantKey)
			}
		})
	}
}
