package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/hocon"
)

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument("port: 8080")
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if doc.Text() != "port: 8080" {
		t.Errorf("Text() = %q, want %q", doc.Text(), "port: 8080")
	}
	want := hocon.Object(hocon.KeyValue("port", hocon.Number(8080)))
	if diff := cmp.Diff(want, doc.Tree()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDocumentParseFailure(t *testing.T) {
	doc, err := NewDocument("{port: 8080")
	if err == nil {
		t.Fatal("NewDocument succeeded on malformed input, want error")
	}
	if doc != nil {
		t.Errorf("got document %v alongside error", doc)
	}
	var parseErr *hocon.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("error is %T, want *hocon.ParseError", err)
	}
}

func TestOpenLookupClose(t *testing.T) {
	ws := New(".")

	doc, err := ws.Open("a.conf", "name = app")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := ws.Lookup("a.conf"); got != doc {
		t.Errorf("Lookup returned %v, want the opened document", got)
	}

	want, err := hocon.Parse("name = app")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(want, doc.Tree()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	ws.Close("a.conf")
	if got := ws.Lookup("a.conf"); got != nil {
		t.Errorf("Lookup after Close returned %v, want nil", got)
	}
}

func TestCloseUnknownId(t *testing.T) {
	ws := New(".")
	ws.Close("never-opened.conf")
	if ws.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ws.Len())
	}
}

func TestReopenSameTextYieldsIdenticalTree(t *testing.T) {
	ws := New(".")
	text := "include file(\"base.conf\")\nserver { port: 8080 }"

	first, err := ws.Open("a.conf", text)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	second, err := ws.Open("a.conf", text)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	if diff := cmp.Diff(first.Tree(), second.Tree()); diff != "" {
		t.Errorf("re-opened tree differs (-first +second):\n%s", diff)
	}
}

func TestOpenReplacesDocument(t *testing.T) {
	ws := New(".")
	if _, err := ws.Open("a.conf", "a: 1"); err != nil {
		t.Fatalf("first Open: %v", err)
	}
	doc, err := ws.Open("a.conf", "a: 2")
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	if got := ws.Lookup("a.conf"); got != doc {
		t.Error("Lookup returned the old document after replacement")
	}
	if got := doc.Text(); got != "a: 2" {
		t.Errorf("Text() = %q, want %q", got, "a: 2")
	}
	if ws.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ws.Len())
	}
}

func TestFailedOpenKeepsPreviousDocument(t *testing.T) {
	ws := New(".")
	doc, err := ws.Open("a.conf", "a: 1")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := ws.Open("a.conf", "{a: 1"); err == nil {
		t.Fatal("Open succeeded on malformed input, want error")
	}
	if got := ws.Lookup("a.conf"); got != doc {
		t.Error("failed Open replaced the document")
	}
}

func TestFailedOpenAddsNothing(t *testing.T) {
	ws := New(".")
	if _, err := ws.Open("a.conf", "{a: 1"); err == nil {
		t.Fatal("Open succeeded on malformed input, want error")
	}
	if got := ws.Lookup("a.conf"); got != nil {
		t.Errorf("Lookup returned %v, want nil", got)
	}
	if ws.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ws.Len())
	}
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.conf"), "name = app")
	writeFile(t, filepath.Join(dir, "extra.hocon"), "a: 1")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a config")
	writeFile(t, filepath.Join(dir, "broken.conf"), "{a: 1")

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(sub, "nested.conf"), "b: 2")

	ws := New(dir)
	if err := ws.ScanAll(); err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	for _, path := range []string{
		filepath.Join(dir, "app.conf"),
		filepath.Join(dir, "extra.hocon"),
		filepath.Join(sub, "nested.conf"),
	} {
		if ws.Lookup(path) == nil {
			t.Errorf("Lookup(%q) = nil after ScanAll", path)
		}
	}
	if ws.Lookup(filepath.Join(dir, "notes.txt")) != nil {
		t.Error("ScanAll opened a non-config file")
	}
	if ws.Lookup(filepath.Join(dir, "broken.conf")) != nil {
		t.Error("ScanAll opened a malformed file")
	}
	if ws.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ws.Len())
	}
}

func TestScanFileMissing(t *testing.T) {
	ws := New(".")
	if err := ws.ScanFile(filepath.Join(t.TempDir(), "absent.conf")); err == nil {
		t.Error("ScanFile succeeded on a missing file, want error")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
