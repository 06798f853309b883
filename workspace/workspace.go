package workspace

import (
	"os"
	"path/filepath"
	"sync"
)

// Workspace tracks the open configuration documents of an editing session,
// keyed by an opaque id. The language server uses file paths as ids.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	docs    map[string]*Document
}

func New(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		docs:    make(map[string]*Document),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// Open parses text and installs the resulting document under id, replacing
// any previous one. On a parse failure the workspace is left untouched: a
// previous document under id stays, and a new id is not created.
func (w *Workspace) Open(id, text string) (*Document, error) {
	doc, err := NewDocument(text)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[id] = doc
	return doc, nil
}

func (w *Workspace) Close(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, id)
}

// Lookup returns the document under id, or nil if none is open.
func (w *Workspace) Lookup(id string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[id]
}

func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.docs)
}

// ScanFile reads the file at path and opens it under its path.
func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = w.Open(path, string(content))
	return err
}

// ScanAll opens every configuration file under the workspace root. Files
// that cannot be read or parsed are skipped.
func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if isConfigFile(path) {
			w.ScanFile(path)
		}
		return nil
	})
}

func isConfigFile(path string) bool {
	switch filepath.Ext(path) {
	case ".conf", ".hocon":
		return true
	}
	return false
}
