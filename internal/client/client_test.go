package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shandysiswandi/gostopwatch/internal/pkg/clock"
	"github.com/shandysiswandi/gostopwatch/internal/pkg/router"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/entity"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/inbound"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/outbound/memory"
	"github.com/shandysiswandi/gostopwatch/internal/stopwatch/usecase"
)

type staticID string

func (s staticID) Generate() string { return string(s) }

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	c := clock.New()
	uc := usecase.NewStopwatch(usecase.Dependency{
		Repo:  memory.NewRegistry(c, entity.MaxTimerAge),
		Clock: clock.NewMonotonic(c),
	})

	r := router.NewRouter(router.Config{UUID: staticID("cid")})
	inbound.RegisterHTTPEndpoint(r, uc)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_StartStop(t *testing.T) {
	srv := newServer(t)
	c, err := New(srv.URL, WithRetry(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	for _, name := range []string{"build", "with space", "a&b=c", "name=inner"} {
		t.Run(name, func(t *testing.T) {
			if err := c.Start(ctx, name); err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			time.Sleep(2 * time.Millisecond)

			elapsed, err := c.Stop(ctx, name)
			if err != nil {
				t.Fatalf("Stop() error = %v", err)
			}
			if elapsed < 2*time.Millisecond || elapsed > time.Second {
				t.Fatalf("elapsed = %s", elapsed)
			}

			if _, err := c.Stop(ctx, name); !errors.Is(err, ErrTimerNotFound) {
				t.Fatalf("second Stop() = %v, want ErrTimerNotFound", err)
			}
		})
	}
}

func TestClient_Now(t *testing.T) {
	srv := newServer(t)
	c, err := New(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}

	first, err := c.Now(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Now(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second < first {
		t.Fatalf("now went backwards: %s then %s", first, second)
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("42"))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithRetry(3, time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	d, err := c.Now(context.Background())
	if err != nil {
		t.Fatalf("Now() error = %v", err)
	}
	if d != 42 {
		t.Fatalf("Now() = %d, want 42", d)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
}

func TestClient_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithRetry(2, time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Now(context.Background()); err == nil {
		t.Fatal("Now() error = nil")
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
}

func TestClient_StopLostReplyNotRetried(t *testing.T) {
	// Arrange: the first stop is applied, then its connection is dropped
	// before any reply is written.
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) > 1 {
			_, _ = w.Write([]byte("-1"))
			return
		}

		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("response writer is not a hijacker")
			return
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		conn.Close()
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithRetry(3, time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	// Act
	_, err = c.Stop(context.Background(), "x")

	// Assert
	if err == nil {
		t.Fatal("Stop() error = nil, want transport error")
	}
	if errors.Is(err, ErrTimerNotFound) {
		t.Fatalf("Stop() = %v, lost reply was retried into not found", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}

func TestClient_Methods(t *testing.T) {
	methods := make(chan string, 3)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods <- r.Method
		if r.URL.Path == "/stop" {
			_, _ = w.Write([]byte("5"))
			return
		}
		_, _ = w.Write([]byte("0"))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := c.Now(ctx); err != nil {
		t.Fatal(err)
	}
	if err := c.Start(ctx, "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Stop(ctx, "x"); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{http.MethodGet, http.MethodPost, http.MethodPost} {
		if got := <-methods; got != want {
			t.Fatalf("method = %s, want %s", got, want)
		}
	}
}

func TestClient_StartNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithRetry(3, time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Start(context.Background(), "x"); err == nil {
		t.Fatal("Start() error = nil")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}

func TestClient_UnexpectedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("unknown"))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithRetry(0, 0))
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Start(context.Background(), "x"); !errors.Is(err, ErrUnexpectedReply) {
		t.Fatalf("Start() = %v, want ErrUnexpectedReply", err)
	}
}

func TestNew_InvalidURL(t *testing.T) {
	if _, err := New("ftp://example.com"); err == nil {
		t.Fatal("New() accepted ftp scheme")
	}

	c, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if c.base.String() != DefaultServer {
		t.Fatalf("base = %s", c.base)
	}
}
