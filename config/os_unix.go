//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// badFileName replaces names which are empty after cleaning.
const badFileName = "_bad_file_name_"

// CleanFileName removes characters which may not appear in a single path
// segment. Leading dots are dropped so output never becomes hidden.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(string(os.PathSeparator)+string(os.PathListSeparator), sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimLeft(strings.TrimSpace(out), ".")
	if len(out) == 0 {
		return badFileName
	}
	return out
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
