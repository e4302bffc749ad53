//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	server "hotel_store/internal/adapters/http_server"
	redisad "hotel_store/internal/adapters/redis"
	"hotel_store/internal/adapters/watcher"
	"hotel_store/internal/app"
	"hotel_store/internal/domain"
	"hotel_store/internal/slug"
	"hotel_store/internal/storage/filestore"
)

// ---------- helpers ----------
func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7.2-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	rc := redis.NewClient(&redis.Options{Addr: "127.0.0.1:" + resource.GetPort("6379/tcp")})
	if err := pool.Retry(func() error { return rc.Ping(context.Background()).Err() }); err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	return rc
}

func call(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()
	if out != nil && res.StatusCode < 300 {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return res.StatusCode
}

// ---------- the test ----------
func TestHTTP_EndToEnd_RedisBacked(t *testing.T) {
	rc := startRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := filestore.New(t.TempDir(), 4)
	if err != nil {
		t.Fatalf("filestore: %v", err)
	}
	cache := redisad.NewWithClient(rc)
	svc := app.NewHotelService(store, slug.New(), app.WithCache(cache, time.Minute))

	w, err := watcher.New(store.Dir(), svc)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()
	go w.Run(ctx)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{S: svc})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()
	base := ts.URL + "/v1/hotels"

	var h domain.Hotel
	if code := call(t, http.MethodPost, base, map[string]any{"title": "Lakeview Cabin", "guestCount": 4}, &h); code != http.StatusCreated {
		t.Fatalf("create status %d", code)
	}

	var room struct {
		Room domain.Room `json:"room"`
	}
	if code := call(t, http.MethodPost, base+"/"+h.ID+"/rooms", map[string]any{"roomTitle": "Loft", "bedroomCount": 1}, &room); code != http.StatusCreated {
		t.Fatalf("add room status %d", code)
	}
	if room.Room.RoomSlug != "loft" || room.Room.HotelSlug != "lakeview-cabin" {
		t.Fatalf("unexpected room: %+v", room.Room)
	}

	var updated domain.Hotel
	if code := call(t, http.MethodPut, base+"/"+h.ID, map[string]any{"title": "Lakeview Cabin — Renovated"}, &updated); code != http.StatusOK {
		t.Fatalf("update status %d", code)
	}
	if updated.ID != h.ID || updated.Slug != "lakeview-cabin-renovated" || len(updated.Rooms) != 1 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	// read through the cache
	var got domain.Hotel
	if code := call(t, http.MethodGet, base+"/"+h.ID, nil, &got); code != http.StatusOK {
		t.Fatalf("get status %d", code)
	}
	if n, err := rc.Exists(ctx, "hotelstore:hotel:"+h.ID).Result(); err != nil || n != 1 {
		t.Fatalf("expected cached hotel, exists=%d err=%v", n, err)
	}

	// hand edit on disk is picked up once the watcher drops the cached copy
	got.Description = "edited by hand"
	raw, _ := json.MarshalIndent(got, "", "  ")
	if err := os.WriteFile(filepath.Join(store.Dir(), h.ID+".json"), raw, 0o644); err != nil {
		t.Fatalf("hand edit: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for {
		var fresh domain.Hotel
		call(t, http.MethodGet, base+"/"+h.ID, nil, &fresh)
		if fresh.Description == "edited by hand" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("hand edit never became visible: %+v", fresh)
		}
		time.Sleep(50 * time.Millisecond)
	}

	var all []domain.Hotel
	if code := call(t, http.MethodGet, base, nil, &all); code != http.StatusOK || len(all) != 1 {
		t.Fatalf("list status %d len %d", code, len(all))
	}
	if code := call(t, http.MethodGet, fmt.Sprintf("%s/%s", base, "does-not-exist"), nil, nil); code != http.StatusNotFound {
		t.Fatalf("missing hotel status %d", code)
	}
}
