package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
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

func newServer(t *testing.T) string {
	t.Helper()

	c := clock.New()
	r := router.NewRouter(router.Config{UUID: staticID("cid")})
	inbound.RegisterHTTPEndpoint(r, usecase.NewStopwatch(usecase.Dependency{
		Repo:  memory.NewRegistry(c, entity.MaxTimerAge),
		Clock: clock.NewMonotonic(c),
	}))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRoot_StartStop(t *testing.T) {
	server := newServer(t)

	if _, _, err := run(t, "--server", server, "start", "build"); err != nil {
		t.Fatalf("start error = %v", err)
	}

	out, _, err := run(t, "--server", server, "stop", "build")
	if err != nil {
		t.Fatalf("stop error = %v", err)
	}
	if ns, err := strconv.ParseInt(strings.TrimSpace(out), 10, 64); err != nil || ns < 0 {
		t.Fatalf("stop output = %q", out)
	}

	if _, _, err := run(t, "--server", server, "--retries", "0", "stop", "build"); err == nil {
		t.Fatal("second stop succeeded")
	}
}

func TestRoot_NowFromEnv(t *testing.T) {
	t.Setenv(serverEnv, newServer(t))

	out, _, err := run(t, "now")
	if err != nil {
		t.Fatalf("now error = %v", err)
	}
	if _, err := strconv.ParseInt(strings.TrimSpace(out), 10, 64); err != nil {
		t.Fatalf("now output = %q", out)
	}
}

func TestRoot_Time(t *testing.T) {
	server := newServer(t)

	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}

	_, stderr, err := run(t, "--server", server, "time", "selftest", "--", exe, "-test.run=^$")
	if err != nil {
		t.Fatalf("time error = %v", err)
	}
	// The child's own stderr comes first; the timing line is always last.
	lines := strings.Split(strings.TrimRight(stderr, "\n"), "\n")
	name, elapsed, ok := strings.Cut(lines[len(lines)-1], "\t")
	if !ok || name != "selftest" {
		t.Fatalf("time stderr = %q", stderr)
	}
	if _, err := time.ParseDuration(elapsed); err != nil {
		t.Fatalf("elapsed = %q: %v", elapsed, err)
	}
}

func TestRoot_TimeRequiresDash(t *testing.T) {
	if _, _, err := run(t, "--server", newServer(t), "time", "a", "b"); err == nil {
		t.Fatal("time without -- succeeded")
	}
}
