package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func releaseServer(t *testing.T, got *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/repos/Samasaur1/DiceKit/releases" {
			http.Error(w, "unexpected "+r.Method+" "+r.URL.Path, http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "token secret" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
			return
		}
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"html_url":"https://github.com/Samasaur1/DiceKit/releases/tag/v0.4.0","draft":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupReleaseProject(t *testing.T, api string) string {
	t.Helper()
	root := setupProject(t)
	writeFile(t, filepath.Join(root, ".pkgrel.yaml"),
		"github:\n  api: "+api+"\n  owner: Samasaur1\n  repo: DiceKit\n")
	return root
}

func TestReleasePublishOnly(t *testing.T) {
	var body map[string]any
	srv := releaseServer(t, &body)
	root := setupReleaseProject(t, srv.URL)
	t.Setenv("GH_TOKEN", "secret")

	out, err := runCmd(t, "", "release", "--root", root, "--skip-git", "--yes", "-m", "Dice pools")
	if err != nil {
		t.Fatalf("release: %v\n%s", err, out)
	}
	if body["tag_name"] != "v0.4.0" || body["name"] != "Version 0.4.0: Dice pools" || body["target_commitish"] != "master" {
		t.Fatalf("unexpected payload %v", body)
	}
	if body["draft"] != true || body["prerelease"] != true {
		t.Fatalf("expected draft prerelease, got %v", body)
	}
	if !strings.HasPrefix(body["body"].(string), "- Dice pools\n\n\n[See changelog](") {
		t.Fatalf("unexpected body %q", body["body"])
	}
	if !strings.Contains(out, "API call successful") || !strings.Contains(out, "publish it at https://github.com/Samasaur1/DiceKit/releases/tag/v0.4.0") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out, err = runCmd(t, "", "history", "--root", root, "--kind", "release")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "\trelease\tok\tVersion 0.4.0: Dice pools\t0.4.0") || !strings.Contains(out, "releases/tag/v0.4.0") {
		t.Fatalf("release missing from history:\n%s", out)
	}
}

func TestReleaseTokenFromDotEnv(t *testing.T) {
	var body map[string]any
	srv := releaseServer(t, &body)
	root := setupReleaseProject(t, srv.URL)
	t.Setenv("GH_TOKEN", "")
	writeFile(t, filepath.Join(root, ".env"), "PKGREL_TEST_TOKEN=secret\n")
	writeFile(t, filepath.Join(root, ".pkgrel.yaml"),
		"github:\n  api: "+srv.URL+"\n  owner: Samasaur1\n  repo: DiceKit\n  token_env: PKGREL_TEST_TOKEN\n")
	t.Cleanup(func() { _ = os.Unsetenv("PKGREL_TEST_TOKEN") })

	if out, err := runCmd(t, "", "release", "--root", root, "--skip-git", "--yes", "-m", "x"); err != nil {
		t.Fatalf("release: %v\n%s", err, out)
	}
	if body["tag_name"] != "v0.4.0" {
		t.Fatalf("release not created, payload %v", body)
	}
}

func TestReleaseAPIError(t *testing.T) {
	var body map[string]any
	srv := releaseServer(t, &body)
	root := setupReleaseProject(t, srv.URL)
	t.Setenv("GH_TOKEN", "wrong")

	_, err := runCmd(t, "", "release", "--root", root, "--skip-git", "--yes", "-m", "x")
	if err == nil || !strings.Contains(err.Error(), "Bad credentials") {
		t.Fatalf("expected API error, got %v", err)
	}
	out, _ := runCmd(t, "", "history", "--root", root)
	if !strings.Contains(out, "\trelease\tfailed\t") {
		t.Fatalf("failed release not journaled:\n%s", out)
	}
}

func TestReleaseNonInteractiveDeclines(t *testing.T) {
	var body map[string]any
	srv := releaseServer(t, &body)
	root := setupReleaseProject(t, srv.URL)
	t.Setenv("GH_TOKEN", "secret")

	out, err := runCmd(t, "", "release", "--root", root, "--skip-git", "-m", "x")
	if err == nil || !strings.Contains(err.Error(), "aborted") {
		t.Fatalf("expected abort without --yes, got %v", err)
	}
	if !strings.Contains(out, "non-interactive") || body != nil {
		t.Fatalf("release should not be created:\n%s", out)
	}
}

func TestReleaseDryRun(t *testing.T) {
	root := setupReleaseProject(t, "http://127.0.0.1:1")
	t.Setenv("GH_TOKEN", "")

	out, err := runCmd(t, "", "release", "--root", root, "--skip-git", "--dry-run", "-m", "x")
	if err != nil {
		t.Fatalf("release --dry-run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "POST /repos/Samasaur1/DiceKit/releases") || !strings.Contains(out, `"name": "Version 0.4.0: x"`) {
		t.Fatalf("expected payload preview:\n%s", out)
	}
}
