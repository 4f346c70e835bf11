package cli

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prcritic/prcritic/internal/config"
	"github.com/prcritic/prcritic/internal/event"
	"github.com/prcritic/prcritic/internal/github"
	"github.com/prcritic/prcritic/internal/review"
)

func resetFlags() {
	flagProvider = ""
	flagModel = ""
	flagExclude = ""
	flagMaxComments = 0
	flagDryRun = false
	flagFormat = "text"
	flagOut = ""
	flagNoRedact = false
	flagOwner = ""
	flagRepo = ""
	exitCode = ExitSuccess
}

func TestBuildOverrides(t *testing.T) {
	defer resetFlags()
	resetFlags()

	flagProvider = "anthropic"
	flagMaxComments = 4

	m := buildOverrides()
	if m["provider"] != "anthropic" {
		t.Errorf("provider override = %q", m["provider"])
	}
	if m["maxComments"] != "4" {
		t.Errorf("maxComments override = %q", m["maxComments"])
	}
	if _, ok := m["model"]; ok {
		t.Error("unset flag should not appear in overrides")
	}
}

func TestReviewDiff_EmptyDiff(t *testing.T) {
	defer resetFlags()
	resetFlags()

	logger := log.New(io.Discard, "", 0)
	cfg := config.Default()

	comments, err := reviewDiff(context.Background(), "", cfg, review.PRContext{}, logger)
	if err != nil {
		t.Fatalf("reviewDiff error: %v", err)
	}
	if comments != nil {
		t.Errorf("comments = %v, want nil for empty diff", comments)
	}
}

const testDiff = `diff --git a/main.go b/main.go
index 0000001..0000002 100644
--- a/main.go
+++ b/main.go
@@ -8,4 +8,5 @@ func main() {
 	a := 1
 	b := 2
+	c := a + b
+	fmt.Println(c)
 }
`

// fakeGitHub serves just enough of the REST API for one PR.
func fakeGitHub(t *testing.T, posted *github.ReviewRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/repos/acme/widgets/pulls/7":
			if strings.Contains(r.Header.Get("Accept"), "diff") {
				io.WriteString(w, testDiff)
				return
			}
			io.WriteString(w, `{"title":"Add sum","body":"Prints the sum.","head":{"sha":"headsha"}}`)
		case r.Method == "POST" && r.URL.Path == "/repos/acme/widgets/pulls/7/reviews":
			if posted == nil {
				t.Error("unexpected review post")
			} else if err := json.NewDecoder(r.Body).Decode(posted); err != nil {
				t.Errorf("decode posted review: %v", err)
			}
			io.WriteString(w, `{"id":1}`)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(404)
		}
	}))
}

// fakeOpenAI answers every completion with one finding on line 11.
func fakeOpenAI(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reply := `{"reviews": [{"lineNumber": "11", "reviewComment": "Use log.Println instead of fmt.Println."}]}`
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
			"usage": map[string]int{"total_tokens": 100},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Cache.Enabled = false
	return cfg
}

func TestReviewPR_DryRun(t *testing.T) {
	defer resetFlags()
	resetFlags()

	gh := fakeGitHub(t, nil)
	defer gh.Close()
	ai := fakeOpenAI(t)
	defer ai.Close()

	t.Setenv("GITHUB_API_URL", gh.URL)
	t.Setenv("GITHUB_TOKEN", "test-token")
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("PRCRITIC_OPENAI_BASE_URL", ai.URL)

	outPath := filepath.Join(t.TempDir(), "report.json")
	flagDryRun = true
	flagFormat = "json"
	flagOut = outPath

	client, err := github.NewClient()
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	ev := event.Event{Action: event.ActionOpened, Owner: "acme", Repo: "widgets", Number: 7}
	reviewPR(context.Background(), client, ev, testConfig(), log.New(io.Discard, "", 0))

	if exitCode != ExitSuccess {
		t.Fatalf("exitCode = %d, want %d", exitCode, ExitSuccess)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	var report struct {
		Comments []review.Comment `json:"comments"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("parsing report: %v", err)
	}
	if len(report.Comments) != 1 {
		t.Fatalf("comments count = %d, want 1", len(report.Comments))
	}
	// Line 11 is the fourth patch line of the hunk.
	if report.Comments[0].Position != 4 {
		t.Errorf("Position = %d, want 4", report.Comments[0].Position)
	}
	if report.Comments[0].Path != "main.go" {
		t.Errorf("Path = %q", report.Comments[0].Path)
	}
}

func TestReviewPR_Posts(t *testing.T) {
	defer resetFlags()
	resetFlags()

	var posted github.ReviewRequest
	gh := fakeGitHub(t, &posted)
	defer gh.Close()
	ai := fakeOpenAI(t)
	defer ai.Close()

	t.Setenv("GITHUB_API_URL", gh.URL)
	t.Setenv("GITHUB_TOKEN", "test-token")
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("PRCRITIC_OPENAI_BASE_URL", ai.URL)

	client, err := github.NewClient()
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	ev := event.Event{Action: event.ActionOpened, Owner: "acme", Repo: "widgets", Number: 7}
	reviewPR(context.Background(), client, ev, testConfig(), log.New(io.Discard, "", 0))

	if exitCode != ExitSuccess {
		t.Fatalf("exitCode = %d, want %d", exitCode, ExitSuccess)
	}
	if posted.Event != "COMMENT" {
		t.Errorf("posted.Event = %q, want COMMENT", posted.Event)
	}
	if posted.CommitID != "headsha" {
		t.Errorf("posted.CommitID = %q, want headsha", posted.CommitID)
	}
	if len(posted.Comments) != 1 || posted.Comments[0].Position != 4 {
		t.Errorf("posted.Comments = %+v", posted.Comments)
	}
}

func TestRunCmd_UnsupportedAction(t *testing.T) {
	defer resetFlags()
	resetFlags()

	path := filepath.Join(t.TempDir(), "event.json")
	payload := `{"action":"closed","number":7,"repository":{"full_name":"acme/widgets"}}`
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatalf("writing event: %v", err)
	}
	t.Setenv("GITHUB_EVENT_PATH", path)

	if err := runCmd.RunE(runCmd, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if exitCode != ExitSuccess {
		t.Errorf("exitCode = %d, want %d for unsupported action", exitCode, ExitSuccess)
	}
}

func TestRunCmd_MissingEventPath(t *testing.T) {
	defer resetFlags()
	resetFlags()

	t.Setenv("GITHUB_EVENT_PATH", "")
	if err := runCmd.RunE(runCmd, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if exitCode != ExitUsageError {
		t.Errorf("exitCode = %d, want %d", exitCode, ExitUsageError)
	}
}
