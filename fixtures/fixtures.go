// Package fixtures provides in-process stand-ins for the OpenDota API used
// by tests across the repository.
package fixtures

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

type cannedResponse struct {
	status int
	body   string
}

// FakeOpenDota serves canned JSON per resource path and records every call
// it receives. Paths registered with Hang never respond, which is how the
// client timeout path is exercised.
type FakeOpenDota struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]cannedResponse
	hanging   map[string]bool
	calls     map[string]int
	lastQuery map[string]url.Values
	lastUA    string
}

func NewFakeOpenDota(t *testing.T) *FakeOpenDota {
	f := &FakeOpenDota{
		responses: make(map[string]cannedResponse),
		hanging:   make(map[string]bool),
		calls:     make(map[string]int),
		lastQuery: make(map[string]url.Values),
	}

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.URL.Path]++
		f.lastQuery[r.URL.Path] = r.URL.Query()
		f.lastUA = r.Header.Get("User-Agent")
		hang := f.hanging[r.URL.Path]
		resp, ok := f.responses[r.URL.Path]
		f.mu.Unlock()

		if hang {
			<-r.Context().Done()
			return
		}

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		w.Write([]byte(resp.body))
	}))

	t.Cleanup(f.Close)
	return f
}

// URL returns the base URL to point a client at.
func (f *FakeOpenDota) URL() string {
	return f.server.URL
}

// Respond registers a canned response for a path.
func (f *FakeOpenDota) Respond(path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = cannedResponse{status: status, body: body}
}

// Hang makes requests to a path stall until the client gives up.
func (f *FakeOpenDota) Hang(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hanging[path] = true
}

// Calls reports how many requests a path has received.
func (f *FakeOpenDota) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

// TotalCalls reports how many requests arrived across all paths.
func (f *FakeOpenDota) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// LastQuery returns the query parameters of the most recent request to a path.
func (f *FakeOpenDota) LastQuery(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery[path]
}

// LastUserAgent returns the User-Agent header of the most recent request.
func (f *FakeOpenDota) LastUserAgent() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastUA
}

func (f *FakeOpenDota) Close() {
	f.server.CloseClientConnections()
	f.server.Close()
}
