package state

import (
	"fmt"
	"os"
	"time"

	"inkc/common"
	"inkc/config"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		Format: common.OutputFmtYaml,
	}
}

// ApplyCompilerConfig takes compile defaults from configuration. Flags
// processed later by the compile command override them.
func (e *LocalEnv) ApplyCompilerConfig(cfg *config.CompilerConfig) error {
	e.Format = cfg.Output.Format
	return e.LoadStylesheet(cfg.StylesheetPath)
}

// LoadStylesheet reads external stylesheet, empty path clears it.
func (e *LocalEnv) LoadStylesheet(path string) error {
	if len(path) == 0 {
		e.StylesheetPath, e.Stylesheet = "", nil
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet '%s': %w", path, err)
	}
	e.StylesheetPath, e.Stylesheet = path, data
	return nil
}
