package telemetry

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestNewAssignsDistinctRunIDs(t *testing.T) {
	a := New("info", &bytes.Buffer{})
	b := New("info", &bytes.Buffer{})
	if a.RunID == "" || b.RunID == "" {
		t.Fatalf("expected non-empty run IDs")
	}
	if a.RunID == b.RunID {
		t.Fatalf("expected distinct run IDs, got %q twice", a.RunID)
	}
}

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	tel := New("not-a-level", buf)
	tel.Log.Debug().Msg("should not appear")
	if strings.Contains(buf.String(), "should not appear") {
		t.Fatalf("expected debug log to be suppressed at info level")
	}
}

func TestRecordTallies(t *testing.T) {
	tel := New("error", &bytes.Buffer{})
	tel.Record("INSERT", true, time.Microsecond)
	tel.Record("INSERT", false, time.Microsecond)
	tel.Record("DELETE", true, time.Microsecond)
	tel.Record("CONTAINS", true, time.Microsecond)
	tel.Record("CONTAINS", false, time.Microsecond)

	inserted, deleted, contained, missed := tel.Tally()
	if inserted != 1 || deleted != 1 || contained != 1 || missed != 2 {
		t.Fatalf("got inserted=%d deleted=%d contained=%d missed=%d, want 1,1,1,2",
			inserted, deleted, contained, missed)
	}
}

func TestMultipleInstancesDoNotPanicOnRegistration(t *testing.T) {
	// Each Telemetry owns a private registry; constructing many must
	// never trigger Prometheus's duplicate-registration panic.
	for i := 0; i < 5; i++ {
		tel := New("info", &bytes.Buffer{})
		tel.Record("INSERT", true, time.Microsecond)
	}
}

func TestServeEmptyAddrIsNoop(t *testing.T) {
	tel := New("error", &bytes.Buffer{})
	if err := tel.Serve(context.Background(), ""); err != nil {
		t.Fatalf("Serve(\"\"): %v", err)
	}
}

func TestServeRespondsOnMetricsEndpoint(t *testing.T) {
	tel := New("error", &bytes.Buffer{})
	tel.Record("INSERT", true, time.Microsecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := "127.0.0.1:19876"
	errCh := make(chan error, 1)
	go func() { errCh <- tel.Serve(ctx, addr) }()

	var resp *http.Response
	var err error
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/metrics")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatalf("Serve did not return after context cancellation")
	}
}
