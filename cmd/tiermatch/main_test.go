package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kailas-cloud/tiermatch"
)

var fixtures = filepath.Join("..", "..", "testdata", "fixtures.yaml")

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiermatch.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, cfgBody string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--no-color", "--config", writeConfig(t, cfgBody)}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeRecords(t *testing.T, out string) []record {
	t.Helper()
	var recs []record
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("invalid JSON output: %v\nGot: %s", err, out)
	}
	return recs
}

func TestSearchOrgs_JSON(t *testing.T) {
	out, _, err := execute(t, "", "search", "orgs", "maju", "--data", fixtures, "--json")
	if err != nil {
		t.Fatalf("search orgs failed: %v", err)
	}

	recs := decodeRecords(t, out)
	if len(recs) != 2 {
		t.Fatalf("results = %d, want 2: %s", len(recs), out)
	}
	if recs[0].ID != 1 || recs[1].ID != 3 {
		t.Errorf("order = [%d %d], want [1 3]", recs[0].ID, recs[1].ID)
	}
	for _, r := range recs {
		if r.MatchType != tiermatch.ExactWordMatch || r.Kind != "direct" {
			t.Errorf("org %d: match type %v kind %q", r.ID, r.MatchType, r.Kind)
		}
	}
}

func TestSearchWorkers_Dependent(t *testing.T) {
	out, _, err := execute(t, "", "search", "workers", "siti", "--data", fixtures, "--json")
	if err != nil {
		t.Fatalf("search workers failed: %v", err)
	}

	recs := decodeRecords(t, out)
	if len(recs) != 3 {
		t.Fatalf("results = %d, want 3: %s", len(recs), out)
	}
	if recs[0].Name != "Siti Rahma" || recs[0].MatchType != tiermatch.ExactWordMatch {
		t.Errorf("first result = %q (%v)", recs[0].Name, recs[0].MatchType)
	}
	last := recs[2]
	if last.Kind != "projected" || last.Rank != 12 {
		t.Errorf("last result kind %q rank %d, want projected rank 12", last.Kind, last.Rank)
	}
	if last.Name != "Siti Aminah (wife of Budi Santoso)" {
		t.Errorf("last result name = %q", last.Name)
	}
	if last.Projection == nil || last.Projection.Passport != "B7654321" {
		t.Errorf("projection = %+v", last.Projection)
	}
}

func TestSearchTxns_Table(t *testing.T) {
	out, _, err := execute(t, "", "search", "txns", "inv", "--data", fixtures)
	if err != nil {
		t.Fatalf("search txns failed: %v", err)
	}

	i3 := strings.Index(out, "INV-2025-0003")
	i2 := strings.Index(out, "INV-2025-0002")
	i1 := strings.Index(out, "INV-2025-0001")
	if i1 < 0 || i2 < 0 || i3 < 0 {
		t.Fatalf("missing transactions in output:\n%s", out)
	}
	if i3 >= i2 || i2 >= i1 {
		t.Errorf("expected most recent first:\n%s", out)
	}
	if !strings.Contains(out, "ExactWordMatch") {
		t.Errorf("missing tier column:\n%s", out)
	}
}

func TestSearch_LimitFlagOverridesConfig(t *testing.T) {
	cfg := "match:\n  limit: 2\n"

	out, _, err := execute(t, cfg, "search", "txns", "inv", "--data", fixtures, "--json")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(decodeRecords(t, out)); n != 2 {
		t.Errorf("config limit: results = %d, want 2", n)
	}

	out, _, err = execute(t, cfg, "search", "txns", "inv", "--data", fixtures, "--json", "--limit", "1")
	if err != nil {
		t.Fatal(err)
	}
	recs := decodeRecords(t, out)
	if len(recs) != 1 || recs[0].Name != "INV-2025-0003" {
		t.Errorf("flag limit: results = %+v", recs)
	}
}

func TestSearch_ShortQuery(t *testing.T) {
	out, _, err := execute(t, "", "search", "orgs", "a", "--data", fixtures, "--json")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("expected empty JSON array, got %q", out)
	}

	out, _, err = execute(t, "", "search", "orgs", "a", "--data", fixtures)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No matches") {
		t.Errorf("expected no matches message, got %q", out)
	}
}

func TestSearch_DatasetFromConfig(t *testing.T) {
	abs, err := filepath.Abs(fixtures)
	if err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "dataset:\n  path: "+abs+"\n", "search", "orgs", "sinar", "--json")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	recs := decodeRecords(t, out)
	if len(recs) != 1 || recs[0].ID != 2 {
		t.Errorf("results = %+v", recs)
	}
}

func TestSearch_Errors(t *testing.T) {
	if _, _, err := execute(t, "", "search", "orgs", "maju"); err == nil {
		t.Error("expected error without a dataset")
	}
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	if _, _, err := execute(t, "", "search", "orgs", "maju", "--data", missing); err == nil {
		t.Error("expected error for missing dataset")
	}
	if _, _, err := execute(t, "", "search", "orgs", "--data", fixtures); err == nil {
		t.Error("expected error without a query")
	}
	if _, _, err := execute(t, "normalizer:\n  mode: stem\n", "search", "orgs", "maju", "--data", fixtures); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestSearch_MetricsDump(t *testing.T) {
	_, stderr, err := execute(t, "metrics:\n  enabled: true\n", "search", "orgs", "maju", "--data", fixtures, "--json")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"tiermatch_search_requests_total", "tiermatch_search_duration_seconds"} {
		if !strings.Contains(stderr, name) {
			t.Errorf("metrics dump missing %s:\n%s", name, stderr)
		}
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	for _, field := range []string{"commit:", "built:", "go version:", "platform:"} {
		if !strings.Contains(out, field) {
			t.Errorf("version output missing %q field. Got:\n%s", field, out)
		}
	}

	out, _, err = execute(t, "", "version", "--json")
	if err != nil {
		t.Fatalf("version --json failed: %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("invalid JSON output: %v\nGot: %s", err, out)
	}
	for _, key := range []string{"version", "commit", "built", "goVersion", "platform"} {
		if _, ok := info[key]; !ok {
			t.Errorf("JSON output missing key %q. Got: %v", key, info)
		}
	}

	out, _, err = execute(t, "", "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 1 {
		t.Errorf("expected 1 line, got %q", out)
	}
}
