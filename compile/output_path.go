package compile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"inkc/config"
	"inkc/hlir"
	"inkc/state"
)

// ErrOutputExists is returned when destination is present and overwrite was
// not requested.
var ErrOutputExists = errors.New("output file already exists")

// nameValues is available to output name template.
type nameValues struct {
	Name   string
	ID     string
	Format string
}

// buildOutputPath returns output file path for the source "src" relative to
// the original input. Input directory structure is kept under "dst". Name
// comes from the configured template, falling back to the source base name.
func buildOutputPath(m *hlir.Module, src, dst string, env *state.LocalEnv) string {
	out := &env.Cfg.Compiler.Output
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	dir := filepath.Join(dst, filepath.Dir(src))

	name, err := expandNameTemplate(out.NameTemplate, nameValues{Name: base, ID: m.ID.String(), Format: env.Format.String()})
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.String("template", out.NameTemplate), zap.Error(err))
		name = ""
	}
	if len(strings.TrimSpace(name)) == 0 {
		name = base
	}

	segments := strings.Split(filepath.ToSlash(name), "/")
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, dir)
	for i, s := range segments {
		if len(s) == 0 {
			continue
		}
		s = cleanSegment(s, out.Transliterate)
		if i == len(segments)-1 {
			s += env.Format.Ext()
		}
		parts = append(parts, s)
	}
	return filepath.Join(parts...)
}

func expandNameTemplate(text string, values nameValues) (string, error) {
	if len(text) == 0 {
		return "", nil
	}
	tmpl, err := template.New(string(config.OutputNameTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", config.OutputNameTemplateFieldName, err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func cleanSegment(s string, transliterate bool) string {
	if transliterate {
		s = slug.Make(s)
	}
	return config.CleanFileName(s)
}

// prepareDestination makes sure output may be written at path.
func prepareDestination(path string, overwrite bool, log *zap.Logger) error {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
		log.Warn("Overwriting existing file", zap.String("file", path))
		return os.Remove(path)
	case !os.IsNotExist(err):
		return err
	}
	return os.MkdirAll(filepath.Dir(path), 0755)
}
