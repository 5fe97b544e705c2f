package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestReport(t *testing.T) (*Report, string) {
	t.Helper()

	dest := filepath.Join(t.TempDir(), "report.zip")
	conf := ReporterConfig{Destination: dest}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	return r, dest
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReportArchiveContents(t *testing.T) {
	r, dest := newTestReport(t)

	src := filepath.Join(t.TempDir(), "post.xml")
	if err := os.WriteFile(src, []byte("<fscode/>"), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	r.Store("source/post.xml", src)
	r.StoreData("problems/post.txt", []byte("<table>: bad"))
	r.StoreData("problems/post.txt", []byte("<image>: bad"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	files := readArchive(t, dest)
	if files["source/post.xml"] != "<fscode/>" {
		t.Errorf("stored file content mismatch: %q", files["source/post.xml"])
	}
	if files["problems/post.txt"] != "<table>: bad" {
		t.Errorf("stored data mismatch: %q", files["problems/post.txt"])
	}
	versioned := 0
	for name := range files {
		if strings.HasPrefix(name, "problems/post.txt-") {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("expected repeated data to be versioned, got %d versions", versioned)
	}
	if !strings.Contains(files["MANIFEST"], "source/post.xml") {
		t.Errorf("manifest misses stored file:\n%s", files["MANIFEST"])
	}
}

func TestReportClose_RemovesCopies(t *testing.T) {
	r, dest := newTestReport(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "out.html"), []byte("<b>x</b>"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if err := r.StoreCopy("output", dir); err != nil {
		t.Fatalf("StoreCopy() error: %v", err)
	}
	if len(r.temps) != 1 {
		t.Fatalf("expected single temporary copy, got %d", len(r.temps))
	}
	copied := r.temps[0]

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if _, err := os.Stat(copied); !os.IsNotExist(err) {
		t.Errorf("expected temporary copy to be removed")
	}
	// original must survive
	if _, err := os.Stat(filepath.Join(dir, "out.html")); err != nil {
		t.Errorf("original file should not be removed: %v", err)
	}

	files := readArchive(t, dest)
	if files["output/out.html"] != "<b>x</b>" {
		t.Errorf("copied directory is not in report: %v", files)
	}
}

func TestReportStoreCopy_Missing(t *testing.T) {
	r, _ := newTestReport(t)
	defer r.Close()

	if err := r.StoreCopy("missing", filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing path")
	}
	if len(r.temps) != 0 {
		t.Error("no temporary copy expected for missing path")
	}
}

func TestReportStore_OverwritePanics(t *testing.T) {
	r, _ := newTestReport(t)
	defer r.Close()

	r.Store("final.log", "/tmp/a.log")
	r.Store("final.log", "/tmp/a.log")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on overwrite with different path")
		}
	}()
	r.Store("final.log", "/tmp/b.log")
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	// all methods are safe on nil report
	r.Store("x", "y")
	r.StoreData("x", nil)
	if err := r.StoreCopy("x", "y"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("expected empty name for nil report")
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
