package types

import "fmt"

// RunMode selects between previewing planned actions and executing
// them. List mode performs zero filesystem mutations.
type RunMode string

const (
	ModeList RunMode = "list"
	ModeRun  RunMode = "run"
)

// ParseRunMode parses a user-supplied mode string.
func ParseRunMode(s string) (RunMode, error) {
	switch s {
	case "list":
		return ModeList, nil
	case "run":
		return ModeRun, nil
	default:
		return "", fmt.Errorf("invalid mode %q: must be 'list' or 'run'", s)
	}
}

// IsDryRun reports whether the mode forbids filesystem mutations.
func (m RunMode) IsDryRun() bool {
	return m != ModeRun
}
