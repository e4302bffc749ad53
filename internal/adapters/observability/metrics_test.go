package observability_test

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_store/internal/adapters/observability"
	"hotel_store/internal/domain"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample per family so they show up in the output
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveStore("get", domain.ErrNotFound, time.Millisecond)
	observability.ObserveCorrupt()

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"hotelstore_http_requests_total",
		`hotelstore_store_operations_total{op="get",result="not_found"}`,
		"hotelstore_store_corrupt_units_total",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestServeExposesAppMetrics(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	observability.ObserveCorrupt()
	observability.Serve(addr, observability.InitRegistry())

	var out string
	deadline := time.Now().Add(3 * time.Second)
	for {
		res, err := http.Get("http://" + addr + "/metrics")
		if err == nil {
			body, _ := io.ReadAll(res.Body)
			_ = res.Body.Close()
			out = string(body)
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("metrics listener never came up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}
	if !strings.Contains(out, "hotelstore_store_corrupt_units_total") {
		t.Fatalf("corrupt unit counter missing from metrics listener:\n%s", out)
	}
}

func TestServeDisabledWithoutAddr(t *testing.T) {
	observability.Serve("", observability.InitRegistry()) // must not panic or listen
}

func TestResultLabel(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("wrapped: %w", domain.ErrNotFound), "not_found"},
		{&domain.CorruptError{ID: "1", Err: errors.New("bad json")}, "corrupt"},
		{domain.Invalid("title", "is required"), "invalid"},
		{errors.New("permission denied"), "error"},
	}
	for _, c := range cases {
		if got := observability.ResultLabel(c.err); got != c.want {
			t.Fatalf("ResultLabel(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}
