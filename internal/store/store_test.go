package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// setupFileStore returns a Store over a fresh file in a temp directory.
func setupFileStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip_storage.json")
	return Open(path), path
}

func seeded(indexed []string, keyed map[string]string) *Store {
	return New(NewMemoryBackend(&Data{IndexedStorage: indexed, KeyStorage: keyed}))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s, path := setupFileStore(t)

	d, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.IndexedStorage) != 0 || len(d.KeyStorage) != 0 {
		t.Errorf("Load = %+v, want empty store", d)
	}
	if d.IndexedStorage == nil || d.KeyStorage == nil {
		t.Error("empty store has nil collections")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Load created the store file")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "{not json"},
		{"wrong list shape", `{"indexed_storage": 5, "key_storage": {}}`},
		{"wrong map shape", `{"indexed_storage": [], "key_storage": ["a"]}`},
		{"top level array", `["a", "b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, path := setupFileStore(t)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := s.Load()
			var corrupt *CorruptStoreError
			if !errors.As(err, &corrupt) {
				t.Fatalf("Load error = %v, want CorruptStoreError", err)
			}
			if corrupt.Path != path {
				t.Errorf("Path = %q, want %q", corrupt.Path, path)
			}
		})
	}
}

func TestLoadLegacyFile(t *testing.T) {
	s, path := setupFileStore(t)
	legacy := `{
    "indexed_storage": ["a"],
    "key_storage": {"k": "v"},
    "temp_storage": null
}`
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	if err := s.AppendIndexed("b"); err != nil {
		t.Fatalf("AppendIndexed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "temp_storage") {
		t.Errorf("legacy field survived a save:\n%s", raw)
	}
	d, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(d.IndexedStorage, []string{"a", "b"}) {
		t.Errorf("IndexedStorage = %v", d.IndexedStorage)
	}
	if d.KeyStorage["k"] != "v" {
		t.Errorf("KeyStorage = %v", d.KeyStorage)
	}
}

func TestLoadNullAndBlank(t *testing.T) {
	for _, content := range []string{"", "  \n", `{"indexed_storage": null, "key_storage": null}`} {
		s, path := setupFileStore(t)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		d, err := s.Load()
		if err != nil {
			t.Fatalf("Load(%q): %v", content, err)
		}
		if d.IndexedStorage == nil || d.KeyStorage == nil {
			t.Errorf("Load(%q) left nil collections", content)
		}
	}
}

func TestSaveFormat(t *testing.T) {
	s, path := setupFileStore(t)
	if err := s.AppendIndexed("a<b>"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetKeyed("k", "v"); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
    "indexed_storage": [
        "a<b>"
    ],
    "key_storage": {
        "k": "v"
    }
}
`
	if string(raw) != want {
		t.Errorf("file contents:\n%s\nwant:\n%s", raw, want)
	}

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".clip-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "store.json")
	s := Open(path)
	if err := s.AppendIndexed("x"); err != nil {
		t.Fatalf("AppendIndexed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("store file not created: %v", err)
	}
}

func TestSaveIOError(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the parent directory should be
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	s := Open(filepath.Join(blocker, "store.json"))

	err := s.AppendIndexed("x")
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("AppendIndexed error = %v, want IOError", err)
	}
}

func TestAppendOrder(t *testing.T) {
	s, _ := setupFileStore(t)
	for _, v := range []string{"a", "b", "c"} {
		if err := s.AppendIndexed(v); err != nil {
			t.Fatal(err)
		}
	}
	d, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d.IndexedStorage, []string{"a", "b", "c"}) {
		t.Errorf("IndexedStorage = %v", d.IndexedStorage)
	}
}

func TestKeyOverwrite(t *testing.T) {
	s, _ := setupFileStore(t)
	if err := s.SetKeyed("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetKeyed("k", "v2"); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetKeyed("k")
	if err != nil {
		t.Fatal(err)
	}
	if got != "v2" {
		t.Errorf("GetKeyed = %q, want v2", got)
	}
	d, _ := s.Load()
	if len(d.KeyStorage) != 1 {
		t.Errorf("KeyStorage has %d entries, want 1", len(d.KeyStorage))
	}
}

func TestGetIndexed(t *testing.T) {
	s := seeded([]string{"a", "b", "c"}, nil)

	tests := []struct {
		index   int
		want    string
		wantErr bool
	}{
		{0, "a", false},
		{2, "c", false},
		{-1, "c", false},
		{-3, "a", false},
		{3, "", true},
		{-4, "", true},
	}

	for _, tt := range tests {
		got, err := s.GetIndexed(tt.index)
		if tt.wantErr {
			var idxErr *InvalidIndexError
			if !errors.As(err, &idxErr) {
				t.Errorf("GetIndexed(%d) error = %v, want InvalidIndexError", tt.index, err)
				continue
			}
			if idxErr.Index != tt.index || idxErr.Length != 3 {
				t.Errorf("InvalidIndexError = %+v", idxErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("GetIndexed(%d): %v", tt.index, err)
			continue
		}
		if got != tt.want {
			t.Errorf("GetIndexed(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestGetKeyedMissing(t *testing.T) {
	s := seeded(nil, nil)
	_, err := s.GetKeyed("missing")
	var keyErr *InvalidKeyError
	if !errors.As(err, &keyErr) {
		t.Fatalf("GetKeyed error = %v, want InvalidKeyError", err)
	}
	if keyErr.Key != "missing" {
		t.Errorf("Key = %q", keyErr.Key)
	}
}

func TestRemoveIndexed(t *testing.T) {
	tests := []struct {
		index int
		want  []string
	}{
		{1, []string{"a", "c"}},
		{0, []string{"b", "c"}},
		{-1, []string{"a", "b"}},
	}
	for _, tt := range tests {
		s := seeded([]string{"a", "b", "c"}, nil)
		if err := s.RemoveIndexed(tt.index); err != nil {
			t.Fatalf("RemoveIndexed(%d): %v", tt.index, err)
		}
		d, _ := s.Load()
		if !reflect.DeepEqual(d.IndexedStorage, tt.want) {
			t.Errorf("RemoveIndexed(%d) left %v, want %v", tt.index, d.IndexedStorage, tt.want)
		}
	}
}

func TestRemoveIndexedEmpty(t *testing.T) {
	mem := NewMemoryBackend(nil)
	s := New(mem)
	err := s.RemoveIndexed(0)
	var idxErr *InvalidIndexError
	if !errors.As(err, &idxErr) {
		t.Fatalf("RemoveIndexed error = %v, want InvalidIndexError", err)
	}
	if mem.Saves != 0 {
		t.Errorf("failed remove saved %d times", mem.Saves)
	}
}

func TestRemoveKeyed(t *testing.T) {
	mem := NewMemoryBackend(&Data{KeyStorage: map[string]string{"a": "1", "b": "2"}})
	s := New(mem)

	if err := s.RemoveKeyed("a"); err != nil {
		t.Fatalf("RemoveKeyed: %v", err)
	}
	d, _ := s.Load()
	if !reflect.DeepEqual(d.KeyStorage, map[string]string{"b": "2"}) {
		t.Errorf("KeyStorage = %v", d.KeyStorage)
	}

	err := s.RemoveKeyed("a")
	var keyErr *InvalidKeyError
	if !errors.As(err, &keyErr) {
		t.Fatalf("second RemoveKeyed error = %v, want InvalidKeyError", err)
	}
	if mem.Saves != 1 {
		t.Errorf("Saves = %d, want 1", mem.Saves)
	}
}

func TestClear(t *testing.T) {
	tests := []struct {
		scope       Scope
		wantIndexed []string
		wantKeyed   map[string]string
	}{
		{ScopeAll, []string{}, map[string]string{}},
		{ScopeKeyed, []string{"a"}, map[string]string{}},
		{ScopeIndexed, []string{}, map[string]string{"k": "v"}},
	}

	for _, tt := range tests {
		t.Run(tt.scope.String(), func(t *testing.T) {
			s := seeded([]string{"a"}, map[string]string{"k": "v"})
			if err := s.Clear(tt.scope); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			d, _ := s.Load()
			if !reflect.DeepEqual(d.IndexedStorage, tt.wantIndexed) {
				t.Errorf("IndexedStorage = %v, want %v", d.IndexedStorage, tt.wantIndexed)
			}
			if !reflect.DeepEqual(d.KeyStorage, tt.wantKeyed) {
				t.Errorf("KeyStorage = %v, want %v", d.KeyStorage, tt.wantKeyed)
			}
		})
	}
}

func TestClearAllRecoversCorruptFile(t *testing.T) {
	s, path := setupFileStore(t)
	if err := os.WriteFile(path, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(ScopeKeyed); err == nil {
		t.Error("partial clear of corrupt store succeeded")
	}
	if err := s.Clear(ScopeAll); err != nil {
		t.Fatalf("Clear(ScopeAll): %v", err)
	}
	if _, err := s.Load(); err != nil {
		t.Errorf("Load after clear: %v", err)
	}
}

func TestFileLockReleased(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	b := NewFileBackend(path)

	unlock, err := b.Lock(true)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if err := unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	// A second exclusive lock must not block once the first is released
	unlock, err = b.Lock(true)
	if err != nil {
		t.Fatalf("second Lock: %v", err)
	}
	if err := unlock(); err != nil {
		t.Fatalf("second unlock: %v", err)
	}
	if _, err := os.Stat(b.LockPath()); err != nil {
		t.Errorf("lock file missing: %v", err)
	}
}
