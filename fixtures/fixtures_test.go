package fixtures

import (
	"io"
	"net/http"
	"testing"
	"time"
)

func TestFakeOpenDotaCannedResponse(t *testing.T) {
	fake := NewFakeOpenDota(t)
	fake.Respond("/heroes", 200, `[{"id":1}]`)

	res, err := http.Get(fake.URL() + "/heroes")
	if err != nil {
		t.Fatalf("GET /heroes: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		t.Errorf("expected 200, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if string(body) != `[{"id":1}]` {
		t.Errorf("unexpected body: %s", body)
	}
	if fake.Calls("/heroes") != 1 {
		t.Errorf("expected 1 call, got %d", fake.Calls("/heroes"))
	}
}

func TestFakeOpenDotaUnregisteredPathIs404(t *testing.T) {
	fake := NewFakeOpenDota(t)

	res, err := http.Get(fake.URL() + "/matches/42")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != 404 {
		t.Errorf("expected 404, got %d", res.StatusCode)
	}
}

func TestFakeOpenDotaHang(t *testing.T) {
	fake := NewFakeOpenDota(t)
	fake.Hang("/proMatches")

	client := &http.Client{Timeout: 100 * time.Millisecond}
	_, err := client.Get(fake.URL() + "/proMatches")
	if err == nil {
		t.Fatal("expected timeout error from hanging path")
	}
}

func TestFakeOpenDotaRecordsQuery(t *testing.T) {
	fake := NewFakeOpenDota(t)
	fake.Respond("/search", 200, `[]`)

	if _, err := http.Get(fake.URL() + "/search?q=dendi"); err != nil {
		t.Fatalf("GET: %v", err)
	}

	if got := fake.LastQuery("/search").Get("q"); got != "dendi" {
		t.Errorf("expected q=dendi, got %q", got)
	}
}
