// Package common keeps enums shared by configuration and command line so the
// two never import each other.
package common

//go:generate go tool go-enum --marshal --names --nocase

// Specification of requested output type.
// ENUM(yaml, tree)
type OutputFmt int

// Ext returns file extension for the produced output.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtYaml:
		return ".yaml"
	case OutputFmtTree:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
