package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/hostdash/internal/domain"
	"github.com/MrSnakeDoc/hostdash/internal/files"
	"github.com/MrSnakeDoc/hostdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hostdash/internal/journal"
	"github.com/MrSnakeDoc/hostdash/internal/logger"
)

type fakeServices struct {
	mu     sync.Mutex
	states map[string]string
	failOn map[string]bool // IsActive spawn failure
	calls  []string
}

func (f *fakeServices) IsActive(_ context.Context, service string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "is-active "+service)
	if f.failOn[service] {
		return "", errors.New("exec: systemctl not found")
	}
	if s, ok := f.states[service]; ok {
		return s, nil
	}
	return "inactive", nil
}

func (f *fakeServices) Control(_ context.Context, action domain.Action, service string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, string(action)+" "+service)
	switch action {
	case domain.ActionStart, domain.ActionRestart:
		f.states[service] = "active"
	case domain.ActionStop:
		f.states[service] = "inactive"
	}
	return nil
}

func (f *fakeServices) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeSampler struct {
	usage domain.ResourceUsage
	err   error
}

func (f fakeSampler) Sample(context.Context) (domain.ResourceUsage, error) {
	return f.usage, f.err
}

type fixture struct {
	deps     deps.Deps
	services *fakeServices
	root     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	catalog, err := domain.NewCatalog([]domain.Project{
		{Name: "SignalEdge", Description: "signals", Service: "signaledge", URL: "http://127.0.0.1", Path: root},
		{Name: "Worker", Service: "worker", Path: filepath.Join(root, "missing")},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	services := &fakeServices{
		states: map[string]string{"signaledge": "active"},
		failOn: map[string]bool{},
	}

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &fixture{
		services: services,
		root:     root,
		deps: deps.Deps{
			Logger:         logger.NewNop(),
			StartTime:      now.Add(-time.Minute),
			TimeNow:        func() time.Time { return now },
			Catalog:        catalog,
			Services:       services,
			Sampler:        fakeSampler{usage: domain.ResourceUsage{CPUPercent: 12.34, MemUsed: 2 << 30, MemTotal: 8 << 30, MemPercent: 25}},
			Files:          files.NewBrowser(catalog),
			Journal:        journal.NewMemory(10),
			JournalBackend: "memory",
			JournalSize:    10,
			Page:           []byte("<html>dash</html>"),
		},
	}
}

func (fx *fixture) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/", Dashboard(fx.deps))
	r.Get("/api/status", Status(fx.deps))
	r.Post("/api/service/{name}/{action}", ServiceAction(fx.deps))
	r.Get("/api/files/{service}", ListFiles(fx.deps))
	r.Get("/api/file/{service}", ReadFile(fx.deps))
	r.Get("/api/actions", Actions(fx.deps))
	r.Get("/healthz", Healthz(fx.deps))
	r.Get("/readyz", Readyz(fx.deps))
	return r
}

func (fx *fixture) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	fx.router().ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDashboard(t *testing.T) {
	fx := newFixture(t)

	rr := fx.do(t, http.MethodGet, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if rr.Body.String() != "<html>dash</html>" {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestDashboardMissingPageFile(t *testing.T) {
	fx := newFixture(t)
	fx.deps.PageFile = filepath.Join(fx.root, "nope.html")

	if rr := fx.do(t, http.MethodGet, "/"); rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestDashboardPageFile(t *testing.T) {
	fx := newFixture(t)
	writeFile(t, fx.root, "page.html", "<html>disk</html>")
	fx.deps.PageFile = filepath.Join(fx.root, "page.html")

	rr := fx.do(t, http.MethodGet, "/")
	if rr.Body.String() != "<html>disk</html>" {
		t.Errorf("body = %q, want on-disk page", rr.Body.String())
	}
}

func TestStatus(t *testing.T) {
	fx := newFixture(t)
	fx.services.failOn["worker"] = true

	rr := fx.do(t, http.MethodGet, "/api/status")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	got := decode[statusResponse](t, rr)
	if len(got.Projects) != 2 {
		t.Fatalf("projects = %d, want 2", len(got.Projects))
	}
	if got.Projects[0].Service != "signaledge" || got.Projects[1].Service != "worker" {
		t.Errorf("order = %s,%s, want catalog order", got.Projects[0].Service, got.Projects[1].Service)
	}
	if got.Projects[0].Status != domain.StateActive || !got.Projects[0].Running {
		t.Errorf("signaledge = %+v, want active/running", got.Projects[0])
	}
	if got.Projects[1].Status != domain.StateUnknown || got.Projects[1].Running {
		t.Errorf("worker = %+v, want unknown/not running", got.Projects[1])
	}

	want := domain.SystemSnapshot{CPU: 12.3, RAMPct: 25, RAMUsed: 2, RAMTotal: 8}
	if got.System != want {
		t.Errorf("system = %+v, want %+v", got.System, want)
	}
}

func TestStatusSamplerFailure(t *testing.T) {
	fx := newFixture(t)
	fx.deps.Sampler = fakeSampler{err: errors.New("no /proc")}

	rr := fx.do(t, http.MethodGet, "/api/status")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := decode[statusResponse](t, rr); got.System != (domain.SystemSnapshot{}) {
		t.Errorf("system = %+v, want zeros", got.System)
	}
}

func TestServiceActionRestart(t *testing.T) {
	fx := newFixture(t)

	rr := fx.do(t, http.MethodPost, "/api/service/signaledge/restart")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	got := decode[serviceActionResponse](t, rr)
	if !got.OK || got.Status != domain.StateActive {
		t.Errorf("response = %+v, want ok/active", got)
	}

	calls := fx.services.Calls()
	want := []string{"restart signaledge", "is-active signaledge"}
	if strings.Join(calls, "|") != strings.Join(want, "|") {
		t.Errorf("calls = %v, want %v", calls, want)
	}

	recent, _ := fx.deps.Journal.Recent(context.Background(), 5)
	if len(recent) != 1 || recent[0].Action != domain.ActionRestart || recent[0].Status != domain.StateActive {
		t.Errorf("journal = %+v", recent)
	}
}

func TestServiceActionStop(t *testing.T) {
	fx := newFixture(t)

	got := decode[serviceActionResponse](t, fx.do(t, http.MethodPost, "/api/service/signaledge/stop"))
	if got.Status != domain.StateInactive {
		t.Errorf("status = %q, want inactive", got.Status)
	}
}

func TestServiceActionRejected(t *testing.T) {
	tests := []string{
		"/api/service/sshd/restart",
		"/api/service/signaledge/reload",
		"/api/service/signaledge/Restart",
		"/api/service/signaledge;rm/restart",
	}

	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			fx := newFixture(t)

			rr := fx.do(t, http.MethodPost, target)
			if rr.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", rr.Code)
			}
			if got := decode[errorResponse](t, rr); got.Error != "not allowed" {
				t.Errorf("error = %q", got.Error)
			}
			if calls := fx.services.Calls(); len(calls) != 0 {
				t.Errorf("service manager called: %v", calls)
			}
		})
	}
}

func TestListFiles(t *testing.T) {
	fx := newFixture(t)
	writeFile(t, fx.root, "main.py", "print('hi')")
	writeFile(t, fx.root, "config.yaml", "a: 1")
	writeFile(t, fx.root, "secrets.key", "nope")
	writeFile(t, fx.root, ".env", "X=1")
	if err := os.Mkdir(filepath.Join(fx.root, "logs.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	rr := fx.do(t, http.MethodGet, "/api/files/signaledge")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	got := decode[filesResponse](t, rr)
	if strings.Join(got.Files, ",") != "config.yaml,main.py" {
		t.Errorf("files = %v", got.Files)
	}
}

func TestListFilesMissingRoot(t *testing.T) {
	fx := newFixture(t)

	rr := fx.do(t, http.MethodGet, "/api/files/worker")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := decode[filesResponse](t, rr); got.Files == nil || len(got.Files) != 0 {
		t.Errorf("files = %#v, want empty list", got.Files)
	}
}

func TestListFilesUnknownProject(t *testing.T) {
	fx := newFixture(t)

	rr := fx.do(t, http.MethodGet, "/api/files/sshd")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if got := decode[errorResponse](t, rr); got.Error != "unknown project" {
		t.Errorf("error = %q", got.Error)
	}
}

func TestReadFile(t *testing.T) {
	fx := newFixture(t)
	writeFile(t, fx.root, "main.py", "print('hi')")
	writeFile(t, fx.root, "passwd.txt", "inside root")
	writeFile(t, fx.root, "secrets.key", "nope")

	tests := []struct {
		name     string
		query    string
		want     int
		filename string
		content  string
	}{
		{"plain", "main.py", http.StatusOK, "main.py", "print('hi')"},
		{"traversal stays in root", "../../etc/passwd.txt", http.StatusOK, "passwd.txt", "inside root"},
		{"extension not allowed", "secrets.key", http.StatusForbidden, "", ""},
		{"missing", "nope.py", http.StatusForbidden, "", ""},
		{"empty", "", http.StatusForbidden, "", ""},
		{"trailing slash", "main.py/", http.StatusForbidden, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := fx.do(t, http.MethodGet, "/api/file/signaledge?name="+tt.query)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rr.Code, tt.want, rr.Body.String())
			}
			if tt.want != http.StatusOK {
				return
			}
			got := decode[files.File](t, rr)
			if got.Filename != tt.filename || got.Content != tt.content {
				t.Errorf("file = %+v", got)
			}
		})
	}
}

func TestReadFileUnknownProject(t *testing.T) {
	fx := newFixture(t)

	if rr := fx.do(t, http.MethodGet, "/api/file/sshd?name=main.py"); rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestActions(t *testing.T) {
	fx := newFixture(t)
	fx.do(t, http.MethodPost, "/api/service/signaledge/stop")
	fx.do(t, http.MethodPost, "/api/service/signaledge/start")

	rr := fx.do(t, http.MethodGet, "/api/actions?limit=1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	got := decode[actionsResponse](t, rr)
	if got.Backend != "memory" {
		t.Errorf("backend = %q", got.Backend)
	}
	if len(got.Actions) != 1 || got.Actions[0].Action != domain.ActionStart {
		t.Errorf("actions = %+v, want newest start only", got.Actions)
	}
	if got.Counts["signaledge"] != 2 {
		t.Errorf("counts = %v, want signaledge=2", got.Counts)
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw  string
		max  int
		want int
	}{
		{"", 100, 20},
		{"5", 100, 5},
		{"-3", 100, 20},
		{"abc", 100, 20},
		{"500", 100, 100},
		{"", 10, 10},
	}
	for _, tt := range tests {
		if got := parseLimit(tt.raw, tt.max); got != tt.want {
			t.Errorf("parseLimit(%q, %d) = %d, want %d", tt.raw, tt.max, got, tt.want)
		}
	}
}

type downJournal struct{ domain.Journal }

func (downJournal) Ping(context.Context) error { return errors.New("connection refused") }

func TestReadyz(t *testing.T) {
	fx := newFixture(t)

	rr := fx.do(t, http.MethodGet, "/readyz")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := decode[readyzResponse](t, rr); !got.Ready {
		t.Errorf("ready = false, components = %+v", got.Components)
	}

	fx.deps.Journal = downJournal{}
	rr = fx.do(t, http.MethodGet, "/readyz")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	got := decode[readyzResponse](t, rr)
	if got.Components["journal"].Error != "unreachable" {
		t.Errorf("journal = %+v", got.Components["journal"])
	}
}

func TestHealthz(t *testing.T) {
	fx := newFixture(t)
	fx.deps.Version = "1.2.3"

	got := decode[healthzResponse](t, fx.do(t, http.MethodGet, "/healthz"))
	if got.Status != "ok" || got.Projects != 2 || got.Version != "1.2.3" {
		t.Errorf("healthz = %+v", got)
	}
	if got.UptimeSeconds != 60 {
		t.Errorf("uptime = %v, want 60", got.UptimeSeconds)
	}
}
