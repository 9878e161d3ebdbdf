package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderVersionPretty(t *testing.T) {
	var sb strings.Builder
	renderVersionPretty(&sb, versionInfo{Version: "1.2.3", GitCommit: "abc123"}, true, true)
	out := sb.String()
	if !strings.Contains(out, "fern 1.2.3") {
		t.Fatalf("missing version line:\n%s", out)
	}
	if !strings.Contains(out, "commit: abc123") {
		t.Fatalf("missing commit line:\n%s", out)
	}
	if !strings.Contains(out, "built:  unknown") {
		t.Fatalf("missing build date fallback:\n%s", out)
	}
}

func TestRenderVersionJSONOmitsHiddenFields(t *testing.T) {
	var sb strings.Builder
	if err := renderVersionJSON(&sb, versionInfo{Version: "1.2.3", GitCommit: "abc123"}, false, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(sb.String()), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload["tool"] != "fern" || payload["version"] != "1.2.3" {
		t.Fatalf("payload: %v", payload)
	}
	if _, ok := payload["git_commit"]; ok {
		t.Fatal("git_commit should be omitted")
	}
}
