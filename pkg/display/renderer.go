// Package display renders pipeline results for humans. Rendering is
// strictly one-way: nothing in the core depends on anything here, and
// a run with no renderer attached behaves identically.
package display

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/undupe/pkg/commands/dedupecmd"
	"github.com/arthur-debert/undupe/pkg/commands/renamecmd"
	"github.com/arthur-debert/undupe/pkg/types"
)

// Limits caps how many rows the tables show before eliding.
type Limits struct {
	MaxGroups     int
	MaxOperations int
}

// Renderer turns pipeline results into displayable text
type Renderer interface {
	RenderDuplicateGroups(groups []*types.DuplicateGroup) string
	RenderRenameOperations(operations []types.RenameOperation) string
	RenderDedupeSummary(result *dedupecmd.Result) string
	RenderRenameSummary(result *renamecmd.Result) string
}

// NewRenderer returns a renderer for the resolved format.
func NewRenderer(format Format, limits Limits) Renderer {
	if format == FormatTerminal {
		return &TerminalRenderer{limits: limits}
	}
	return &TextRenderer{limits: limits}
}

// TerminalRenderer renders rich output through pterm.
type TerminalRenderer struct {
	limits Limits
}

// RenderDuplicateGroups renders the keep/remove table, capped at the
// configured number of groups.
func (r *TerminalRenderer) RenderDuplicateGroups(groups []*types.DuplicateGroup) string {
	data := pterm.TableData{{"Keep", "Remove", "Size", "Hash"}}

	shown := groups
	if len(shown) > r.limits.MaxGroups {
		shown = shown[:r.limits.MaxGroups]
	}
	for _, group := range shown {
		data = append(data, []string{
			KeepStyle.Sprint(group.Keep()),
			RemoveStyle.Sprint(summarizePaths(group.Duplicates(), 3)),
			HumanBytes(group.Size),
			shortHash(group.Hash),
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// pterm only fails on malformed table data; fall back to plain.
		return (&TextRenderer{limits: r.limits}).RenderDuplicateGroups(groups)
	}
	if len(groups) > r.limits.MaxGroups {
		out += "\n" + MutedStyle.Sprintf("... and %d more groups ...", len(groups)-r.limits.MaxGroups)
	}
	return out
}

// RenderRenameOperations renders the planned rename table.
func (r *TerminalRenderer) RenderRenameOperations(operations []types.RenameOperation) string {
	data := pterm.TableData{{"Original Path", "New Path", "Reason"}}

	shown := operations
	if len(shown) > r.limits.MaxOperations {
		shown = shown[:r.limits.MaxOperations]
	}
	for _, op := range shown {
		data = append(data, []string{
			RemoveStyle.Sprint(op.Source),
			KeepStyle.Sprint(op.Target),
			op.Reason,
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return (&TextRenderer{limits: r.limits}).RenderRenameOperations(operations)
	}
	if len(operations) > r.limits.MaxOperations {
		out += "\n" + MutedStyle.Sprintf("... and %d more ...", len(operations)-r.limits.MaxOperations)
	}
	return out
}

// RenderDedupeSummary renders the end-of-run summary for dedupe.
func (r *TerminalRenderer) RenderDedupeSummary(result *dedupecmd.Result) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Sprint("Summary") + "\n")
	fmt.Fprintf(&b, "Mode: %s\n", string(result.Mode))
	fmt.Fprintf(&b, "Execution time: %.2fs\n", result.Duration.Seconds())
	fmt.Fprintf(&b, "Duplicate groups found: %d\n", len(result.Groups))
	fmt.Fprintf(&b, "Total duplicate files: %d\n", result.TotalDuplicates())
	fmt.Fprintf(&b, "Space that can be saved: %s\n", HumanBytes(result.WastedBytes()))

	if result.Mode == types.ModeRun {
		b.WriteString(SuccessStyle.Sprintf("Successfully moved: %d", result.Outcome.Succeeded) + "\n")
		if result.Outcome.Failed > 0 {
			b.WriteString(FailureStyle.Sprintf("Failed to move: %d", result.Outcome.Failed) + "\n")
		}
		fmt.Fprintf(&b, "Space actually saved: %s\n", HumanBytes(result.Outcome.BytesAffected))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderRenameSummary renders the end-of-run summary for rename.
func (r *TerminalRenderer) RenderRenameSummary(result *renamecmd.Result) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Sprint("Summary") + "\n")
	fmt.Fprintf(&b, "Mode: %s\n", string(result.Mode))
	fmt.Fprintf(&b, "Execution time: %.2fs\n", result.Duration.Seconds())
	fmt.Fprintf(&b, "Duplicate filename groups: %d\n", len(result.Groups))
	fmt.Fprintf(&b, "Total files to rename: %d\n", len(result.Operations))

	if result.Mode == types.ModeRun {
		b.WriteString(SuccessStyle.Sprintf("Successfully renamed: %d", result.Outcome.Succeeded) + "\n")
		if result.Outcome.Failed > 0 {
			b.WriteString(FailureStyle.Sprintf("Failed to rename: %d", result.Outcome.Failed) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// TextRenderer renders plain output for pipes and NO_COLOR terminals.
type TextRenderer struct {
	limits Limits
}

func (r *TextRenderer) RenderDuplicateGroups(groups []*types.DuplicateGroup) string {
	var b strings.Builder

	shown := groups
	if len(shown) > r.limits.MaxGroups {
		shown = shown[:r.limits.MaxGroups]
	}
	for _, group := range shown {
		fmt.Fprintf(&b, "keep %s (%s, %s)\n", group.Keep(), HumanBytes(group.Size), shortHash(group.Hash))
		for _, dup := range group.Duplicates() {
			fmt.Fprintf(&b, "  remove %s\n", dup)
		}
	}
	if len(groups) > r.limits.MaxGroups {
		fmt.Fprintf(&b, "... and %d more groups ...\n", len(groups)-r.limits.MaxGroups)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *TextRenderer) RenderRenameOperations(operations []types.RenameOperation) string {
	var b strings.Builder

	shown := operations
	if len(shown) > r.limits.MaxOperations {
		shown = shown[:r.limits.MaxOperations]
	}
	for _, op := range shown {
		fmt.Fprintf(&b, "%s -> %s (%s)\n", op.Source, op.Target, op.Reason)
	}
	if len(operations) > r.limits.MaxOperations {
		fmt.Fprintf(&b, "... and %d more ...\n", len(operations)-r.limits.MaxOperations)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *TextRenderer) RenderDedupeSummary(result *dedupecmd.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode: %s\n", string(result.Mode))
	fmt.Fprintf(&b, "execution time: %.2fs\n", result.Duration.Seconds())
	fmt.Fprintf(&b, "duplicate groups: %d\n", len(result.Groups))
	fmt.Fprintf(&b, "duplicate files: %d\n", result.TotalDuplicates())
	fmt.Fprintf(&b, "space reclaimable: %s\n", HumanBytes(result.WastedBytes()))
	if result.Mode == types.ModeRun {
		fmt.Fprintf(&b, "moved: %d\nfailed: %d\n", result.Outcome.Succeeded, result.Outcome.Failed)
		fmt.Fprintf(&b, "space saved: %s\n", HumanBytes(result.Outcome.BytesAffected))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *TextRenderer) RenderRenameSummary(result *renamecmd.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode: %s\n", string(result.Mode))
	fmt.Fprintf(&b, "execution time: %.2fs\n", result.Duration.Seconds())
	fmt.Fprintf(&b, "filename groups: %d\n", len(result.Groups))
	fmt.Fprintf(&b, "files to rename: %d\n", len(result.Operations))
	if result.Mode == types.ModeRun {
		fmt.Fprintf(&b, "renamed: %d\nfailed: %d\n", result.Outcome.Succeeded, result.Outcome.Failed)
	}
	return strings.TrimRight(b.String(), "\n")
}

// HumanBytes formats a byte count for display.
func HumanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// summarizePaths joins up to max paths, eliding the rest.
func summarizePaths(paths []string, max int) string {
	if len(paths) <= max {
		return strings.Join(paths, "\n")
	}
	head := strings.Join(paths[:max], "\n")
	return fmt.Sprintf("%s\n... and %d more", head, len(paths)-max)
}

// shortHash truncates a digest for table display.
func shortHash(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16] + "..."
}
