package discover

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFilesFindsPythonSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.py"))
	writeFile(t, filepath.Join(dir, "a.py"))
	writeFile(t, filepath.Join(dir, "pkg", "mod.py"))
	writeFile(t, filepath.Join(dir, "readme.md"))

	got, err := Files(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.py", "b.py", filepath.Join("pkg", "mod.py")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}
}

func TestFilesSkipsKnownDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.py"))
	writeFile(t, filepath.Join(dir, "__pycache__", "cached.py"))
	writeFile(t, filepath.Join(dir, "mypkg.egg-info", "meta.py"))
	writeFile(t, filepath.Join(dir, ".venv", "lib.py"))
	writeFile(t, filepath.Join(dir, ".hidden", "h.py"))
	writeFile(t, filepath.Join(dir, ".hidden.py"))

	got, err := Files(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"keep.py"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}
}

func TestFilesHonorsGitignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.py"))
	writeFile(t, filepath.Join(dir, "generated.py"))
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("generated.py\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Files(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"keep.py"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}

	// useGitignore=false must return the ignored file too.
	got, err = Files(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	want = []string{"generated.py", "keep.py"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Files without gitignore = %v, want %v", got, want)
	}
}
