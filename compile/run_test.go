package compile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"inkc/common"
	"inkc/config"
	"inkc/hlir"
	"inkc/state"
	"inkc/syntax"
)

func testContext(t *testing.T, format common.OutputFmt) (context.Context, *state.LocalEnv) {
	t.Helper()
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Cfg = &config.Config{
		Version: 1,
		Compiler: config.CompilerConfig{
			Resolve: true,
			Output:  config.OutputConfig{Format: format, NameTemplate: "{{ .Name }}"},
		},
	}
	env.Log = zaptest.NewLogger(t)
	env.Format = format
	return ctx, env
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestProcess_File(t *testing.T) {
	ctx, env := testContext(t, common.OutputFmtYaml)
	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{"doc.ink": headerDoc})

	opts := Options{Resolve: true}
	if err := process(ctx, filepath.Join(src, "doc.ink"), dst, opts, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "doc.yaml"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.Contains(string(data), "source: doc.ink") {
		t.Errorf("unexpected output:\n%s", data)
	}

	t.Run("existing output", func(t *testing.T) {
		err := process(ctx, filepath.Join(src, "doc.ink"), dst, opts, env.Log)
		if !errors.Is(err, ErrOutputExists) {
			t.Fatalf("process() error = %v, want ErrOutputExists", err)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		env.Overwrite = true
		defer func() { env.Overwrite = false }()
		if err := process(ctx, filepath.Join(src, "doc.ink"), dst, opts, env.Log); err != nil {
			t.Fatalf("process() error = %v", err)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		if err := process(ctx, filepath.Join(src, "absent.ink"), dst, opts, env.Log); err == nil {
			t.Error("expected error for missing source")
		}
	})
}

func TestProcess_Dir(t *testing.T) {
	ctx, env := testContext(t, common.OutputFmtTree)
	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{
		"ch2.ink":         `document { text { "two" } }`,
		"ch10.ink":        `document { text { "ten" } }`,
		"broken.ink":      `document { text { "open" }`,
		"notes/a.ink":     `document { unknown(1) }`,
		"notes/b.ink":     `document { text (class = "note") { "b" } }`,
		"notes/readme.md": `not a document`,
	})

	err := process(ctx, src, dst, Options{Resolve: true}, env.Log)
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("errors = %d, want 2: %v", len(errs), err)
	}
	if !errors.Is(errs[0], syntax.ErrSyntax) || !strings.HasPrefix(errs[0].Error(), "broken.ink") {
		t.Errorf("first error = %v", errs[0])
	}
	if !errors.Is(errs[1], hlir.ErrNaming) {
		t.Errorf("second error = %v", errs[1])
	}

	for _, name := range []string{"ch2.txt", "ch10.txt", filepath.Join("notes", "b.txt")} {
		if _, err := os.Stat(filepath.Join(dst, name)); err != nil {
			t.Errorf("output %s missing: %v", name, err)
		}
	}
	for _, name := range []string{"broken.txt", filepath.Join("notes", "a.txt"), filepath.Join("notes", "readme.txt")} {
		if _, err := os.Stat(filepath.Join(dst, name)); err == nil {
			t.Errorf("unexpected output %s", name)
		}
	}
}

func TestProcess_EmptyDir(t *testing.T) {
	ctx, env := testContext(t, common.OutputFmtYaml)
	if err := process(ctx, t.TempDir(), t.TempDir(), Options{}, env.Log); err != nil {
		t.Errorf("process() error = %v", err)
	}
}

func TestProcess_Stylesheet(t *testing.T) {
	ctx, env := testContext(t, common.OutputFmtYaml)
	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{
		"doc.ink":   `document { text (id = "t") { "x" } }`,
		"theme.css": `#t { color: teal }`,
	})
	if err := env.LoadStylesheet(filepath.Join(src, "theme.css")); err != nil {
		t.Fatal(err)
	}

	if err := process(ctx, filepath.Join(src, "doc.ink"), dst, Options{Resolve: true}, zap.NewNop()); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "doc.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "color: teal") {
		t.Errorf("external stylesheet not applied:\n%s", data)
	}
}

func TestProcess_Report(t *testing.T) {
	ctx, env := testContext(t, common.OutputFmtYaml)
	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{"doc.ink": headerDoc})

	conf := config.ReporterConfig{Destination: filepath.Join(t.TempDir(), "report.zip")}
	rpt, err := conf.Prepare()
	if err != nil {
		t.Fatal(err)
	}
	env.Rpt = rpt

	if err := process(ctx, filepath.Join(src, "doc.ink"), dst, Options{Resolve: true}, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("report Close() error = %v", err)
	}
	fi, err := os.Stat(rpt.Name())
	if err != nil || fi.Size() == 0 {
		t.Errorf("report was not written: %v", err)
	}
}
