package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/forge/internal/errors"
)

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"forge.json": `{"document": "index.html", "into": "#app", "archetypes": ["cards.yaml"]}`,
		"index.html": `<html><body><main id="app"></main></body></html>`,
		"cards.yaml": "archetypes:\n  card:\n    tag: div\n    options: {class: card, text: hi}\n  note:\n    tag: p\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	dir := writeProject(t)

	out, err := run(t, "render", "-c", dir, "--archetype", "card", "--archetype", "card")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<main id="app"><div class="card">hi</div><div class="card">hi</div></main>`
	if !strings.Contains(out, want) {
		t.Errorf("output = %s, want it to contain %s", out, want)
	}
}

func TestRender_IntoFlag(t *testing.T) {
	dir := writeProject(t)

	out, err := run(t, "render", "-c", dir, "-a", "note", "--into", "body")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<main id="app"></main><p></p></body>`) {
		t.Errorf("output = %s", out)
	}
}

func TestRender_Errors(t *testing.T) {
	dir := writeProject(t)

	_, err := run(t, "render", "-c", dir, "-a", "missing")
	if !errors.Is(err, errors.ErrUnknownArchetype) {
		t.Errorf("unknown archetype err = %v", err)
	}

	_, err = run(t, "render", "-c", dir, "-a", "card", "--into", "#nope")
	if !errors.Is(err, errors.ErrParentNotFound) {
		t.Errorf("missing parent err = %v", err)
	}

	_, err = run(t, "render", "-c", t.TempDir())
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("missing config err = %v", err)
	}
}

func TestArchetypes(t *testing.T) {
	dir := writeProject(t)

	out, err := run(t, "archetypes", "-c", dir)
	if err != nil {
		t.Fatalf("archetypes: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "card") || !strings.HasSuffix(lines[2], "p") {
		t.Errorf("output = %q", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q", out)
	}
}
