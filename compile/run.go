package compile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"inkc/common"
	"inkc/state"
)

// SourceExt is extension of compiled documents.
const SourceExt = ".ink"

// Run is the compile subcommand.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if err := env.ApplyCompilerConfig(&env.Cfg.Compiler); err != nil {
		return err
	}
	if cmd.IsSet("to") {
		format, err := common.ParseOutputFmt(cmd.String("to"))
		if err != nil {
			log.Warn("Unknown output format requested, keeping configured one", zap.Stringer("format", env.Format), zap.Error(err))
		} else {
			env.Format = format
		}
	}
	if path := cmd.String("stylesheet"); len(path) > 0 {
		if err := env.LoadStylesheet(path); err != nil {
			return err
		}
	}
	env.Overwrite = cmd.Bool("overwrite")

	opts := Options{Resolve: env.Cfg.Compiler.Resolve && !cmd.Bool("no-resolve")}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", env.Format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, opts, log)
}

// process handles compilation independently of CLI framework. Source is
// either a single document or a directory.
func process(ctx context.Context, src, dst string, opts Options, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	if len(env.Stylesheet) > 0 {
		opts.Rules = LoadRules(env.Stylesheet, env.StylesheetPath, log)
		if err := env.Rpt.StoreCopy("stylesheet/"+filepath.Base(env.StylesheetPath), env.StylesheetPath); err != nil {
			log.Warn("Unable to store stylesheet in report", zap.Error(err))
		}
	}

	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	switch {
	case fi.IsDir():
		return processDir(ctx, src, dst, opts, log)
	case fi.Mode().IsRegular():
		return processFile(ctx, src, filepath.Base(src), dst, opts, log)
	}
	return fmt.Errorf("unexpected path mode for (%s)", src)
}

// processDir compiles every document under dir in natural order. A failing
// document does not stop the rest, all failures are returned together.
func processDir(ctx context.Context, dir, dst string, opts Options, log *zap.Logger) error {
	var sources []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() || !strings.EqualFold(filepath.Ext(path), SourceExt) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		sources = append(sources, rel)
		return nil
	})
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
		return nil
	}
	slices.SortFunc(sources, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})

	var errs error
	for _, rel := range sources {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		if err := processFile(ctx, filepath.Join(dir, rel), rel, dst, opts, log); err != nil {
			log.Error("Unable to process file", zap.String("file", rel), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", rel, err))
		}
	}
	return errs
}

// processFile compiles single document. "src" is the path relative to the
// original input (base name when a single file was requested).
func processFile(ctx context.Context, path, src, dst string, opts Options, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Compilation starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Compilation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("compilation panic: %v", r)
		} else if rerr == nil {
			log.Info("Compilation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read source: %w", err)
	}
	if err := env.Rpt.StoreCopy("source/"+filepath.ToSlash(src), path); err != nil {
		log.Warn("Unable to store source in report", zap.Error(err))
	}

	m, err := Compile(src, data, opts, log)
	if err != nil {
		return err
	}
	if env.Rpt != nil {
		env.Rpt.StoreData("ir/"+filepath.ToSlash(src)+".txt", []byte(m.Dump()))
	}

	outputName = buildOutputPath(m, src, dst, env)
	if err := prepareDestination(outputName, env.Overwrite, log); err != nil {
		return err
	}

	out, err := Render(m, filepath.ToSlash(src), env.Format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputName, out, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", m.ID, env.Format.Ext()), outputName)
	}
	return nil
}
