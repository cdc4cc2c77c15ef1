package display

import (
	"github.com/pterm/pterm"
)

// ProgressObserver implements types.Observer with pterm progress bars.
// It is handed to the pipeline by the CLI; headless callers simply
// pass a nil observer instead.
type ProgressObserver struct {
	title string
	bar   *pterm.ProgressbarPrinter
}

// NewProgressObserver creates a progress observer for one pipeline run.
func NewProgressObserver(title string) *ProgressObserver {
	return &ProgressObserver{title: title}
}

// FilesDiscovered starts the bar once the total is known.
func (p *ProgressObserver) FilesDiscovered(count int) {
	if count == 0 {
		return
	}
	bar, err := pterm.DefaultProgressbar.
		WithTotal(count).
		WithTitle(p.title).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		return
	}
	p.bar = bar
}

// FileHashed advances the bar by one file.
func (p *ProgressObserver) FileHashed(path string) {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// ActionCompleted reports executed moves and renames.
func (p *ProgressObserver) ActionCompleted(description string, err error) {
	if err != nil {
		pterm.Error.Printfln("%s: %v", description, err)
	}
}

// Stop tears the bar down; safe to call when no bar was started.
func (p *ProgressObserver) Stop() {
	if p.bar != nil {
		_, _ = p.bar.Stop()
		p.bar = nil
	}
}
