package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/placementos/placementos/internal/bootstrap"
	"github.com/placementos/placementos/internal/eventbus"
	"github.com/placementos/placementos/internal/pkg/config"
	"github.com/placementos/placementos/internal/repository"
	"github.com/placementos/placementos/internal/service"
	"github.com/placementos/placementos/internal/testutil"
)

func newTestServer(t *testing.T) (*httptest.Server, *bootstrap.Core) {
	t.Helper()

	db := testutil.OpenTestDB(t)
	cfg := config.Default()
	cfg.Server.UserID = "test-user"

	core := &bootstrap.Core{
		Cfg: cfg,
		DB:  &repository.Database{DB: db},
		Hub: eventbus.NewHub(),
	}
	core.Repos.Activity = repository.NewActivityRepository(db)
	core.Repos.Stats = repository.NewStatsRepository(db)
	core.Repos.Application = repository.NewApplicationRepository(db)
	core.Repos.Interview = repository.NewInterviewRepository(db)
	core.Repos.Document = repository.NewDocumentRepository(db)
	core.Repos.Resume = repository.NewResumeRepository(db)
	core.Repos.Flashcard = repository.NewFlashcardRepository(db)
	core.Repos.Event = repository.NewEventRepository(db)
	core.Repos.Snippet = repository.NewSnippetRepository(db)
	core.Repos.Expense = repository.NewExpenseRepository(db)
	core.Repos.Roadmap = repository.NewRoadmapRepository(db)
	core.Repos.Profile = repository.NewProfileRepository(db)

	core.Services.Streak = service.NewStreakService(core.Repos.Stats)
	core.Services.Activity = service.NewActivityService(core.Repos.Activity, core.Services.Streak, core.Hub)
	core.Services.Stats = service.NewStatsService(
		core.Repos.Application,
		core.Repos.Interview,
		core.Repos.Flashcard,
		core.Repos.Resume,
		core.Repos.Activity,
		core.Repos.Event,
		core.Repos.Stats,
		core.Services.Streak,
		service.DefaultScorePolicy{},
	)
	core.Services.Export = service.NewExportService(
		core.Repos.Application,
		core.Repos.Event,
		core.Repos.Flashcard,
		core.Repos.Roadmap,
		core.Repos.Interview,
		core.Repos.Document,
		core.Repos.Snippet,
		core.Repos.Expense,
		core.Repos.Resume,
		core.Repos.Profile,
		core.Repos.Activity,
	)

	api := newAPI(core)
	mux := http.NewServeMux()
	mux.HandleFunc("/health", api.handleHealth)
	api.registerJSONRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, core
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url, body string, out any) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]any
	if code := getJSON(t, srv.URL+"/health", &body); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestLogActivityAndStats(t *testing.T) {
	srv, _ := newTestServer(t)

	code := postJSON(t, srv.URL+"/api/activities", `{"category":"email","description":"跟进 HR"}`, nil)
	if code != http.StatusCreated {
		t.Fatalf("log activity status = %d, want 201", code)
	}

	var stats service.Stats
	if code := getJSON(t, srv.URL+"/api/stats", &stats); code != http.StatusOK {
		t.Fatalf("stats status = %d, want 200", code)
	}
	if stats.Streak != 1 {
		t.Errorf("streak = %d, want 1", stats.Streak)
	}
	// 一条近期活动 = 1 分
	if stats.PlacementProbability != 1 {
		t.Errorf("probability = %d, want 1", stats.PlacementProbability)
	}
}

func TestLogActivityRejectsUnknownCategory(t *testing.T) {
	srv, _ := newTestServer(t)

	if code := postJSON(t, srv.URL+"/api/activities", `{"category":"gaming"}`, nil); code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestCreateApplicationLogsActivity(t *testing.T) {
	srv, _ := newTestServer(t)

	code := postJSON(t, srv.URL+"/api/applications", `{"company":"Acme","position":"后端"}`, nil)
	if code != http.StatusCreated {
		t.Fatalf("create application status = %d, want 201", code)
	}

	var activities []map[string]any
	if code := getJSON(t, srv.URL+"/api/activities", &activities); code != http.StatusOK {
		t.Fatalf("list activities status = %d, want 200", code)
	}
	if len(activities) != 1 || activities[0]["category"] != "application" {
		t.Errorf("expected one application activity, got %v", activities)
	}
}

func TestUpdateApplicationRejectsUnknownStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	postJSON(t, srv.URL+"/api/applications", `{"company":"Acme"}`, nil)
	code := postJSON(t, srv.URL+"/api/applications/update", `{"id":1,"status":"ghosted"}`, nil)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestWriteRejectedInSafeMode(t *testing.T) {
	srv, core := newTestServer(t)
	core.DB.SafeMode = true
	core.DB.MigrationError = "migration exploded"

	code := postJSON(t, srv.URL+"/api/applications", `{"company":"Acme"}`, nil)
	if code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	if code := postJSON(t, srv.URL+"/api/stats", `{}`, nil); code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", code)
	}
}

func TestKnowledgeSearchDisabledWithoutEmbedder(t *testing.T) {
	srv, _ := newTestServer(t)

	if code := getJSON(t, srv.URL+"/api/knowledge/search?q=tcp", nil); code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}
