package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"fsc/config"
	"fsc/markup"
	"fsc/state"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<fscode>
<title>Sample Post</title>
<macro:toc/>
<h1>First</h1>
<p>Some <b>bold</b> text.</p>
<h2>Second</h2>
<table border="oops"><row><cell>x</cell></row></table>
</fscode>`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	t.Cleanup(func() { env.Close() })
	return ctx, env
}

func testBuilder(t *testing.T, env *state.LocalEnv) *markup.Builder {
	t.Helper()
	opts, err := env.MarkupOptions()
	if err != nil {
		t.Fatalf("markup options: %v", err)
	}
	return markup.NewBuilder(env.Tags, opts, env.Log)
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

type zipEntry struct {
	name    string
	content []byte
	nonUTF8 bool
}

func writeZip(t *testing.T, path string, entries ...zipEntry) {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, e := range entries {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: e.name, Method: zip.Deflate, NonUTF8: e.nonUTF8})
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write(e.content); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finalize zip: %v", err)
	}
	writeFile(t, path, buf.Bytes())
}

func encodeAs(t *testing.T, data []byte, enc srcEncoding) []byte {
	t.Helper()
	var tr transform.Transformer
	switch enc {
	case encUnknown:
		return data
	case encUTF8:
		return append([]byte{0xEF, 0xBB, 0xBF}, data...)
	case encUTF16BigEndian:
		tr = unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	case encUTF16LittleEndian:
		tr = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	case encUTF32BigEndian:
		tr = utf32.UTF32(utf32.BigEndian, utf32.UseBOM).NewEncoder()
	case encUTF32LittleEndian:
		tr = utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewEncoder()
	default:
		t.Fatalf("unsupported encoding: %v", enc)
	}
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, tr)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("encode sample: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("finalize encoded sample: %v", err)
	}
	return buf.Bytes()
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected output %s: %v", path, err)
	}
	return string(data)
}
