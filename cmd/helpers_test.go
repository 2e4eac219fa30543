package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/chris-regnier/gdeltctl/internal/config"
)

// apiRecorder keeps the query strings the fake API received.
type apiRecorder struct {
	mu      sync.Mutex
	queries []string
}

func (r *apiRecorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, req.URL.RawQuery)
}

func (r *apiRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

// setupTestEnv points the package runtime at a fake GDELT API served by h.
func setupTestEnv(t *testing.T, h http.HandlerFunc) *apiRecorder {
	t.Helper()
	rec := &apiRecorder{}
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		h(w, r)
	}))
	t.Cleanup(api.Close)

	appConfig = &config.Config{
		DocAPIURL: api.URL + "/doc",
		GeoAPIURL: api.URL + "/geo",
		Timeout:   5 * time.Second,
		LogLevel:  config.DefaultLogLevel,
		HTTPAddr:  config.DefaultHTTPAddr,
	}
	logger = nil
	dispatcher = newDispatcher(appConfig, nil)
	jsonOutput = false

	t.Cleanup(func() {
		appConfig = nil
		dispatcher = nil
		jsonOutput = false
	})
	return rec
}

// execute runs the command tree with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newCommandTree()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const twoArticles = `{"articles":[
	{"url":"https://example.com/a","title":"Flood waters rise","seendate":"20240102T150405Z","domain":"example.com","language":"English","sourcecountry":"United States","socialimage":"https://example.com/a.jpg"},
	{"url":"https://example.org/b","title":"Relief arrives","seendate":"20240102T160000Z","domain":"example.org","language":"English","sourcecountry":"Canada"}
]}`

func serveJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}
