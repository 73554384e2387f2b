package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v2"
)

// console prints user-facing progress and the run summary. Colors are decided
// per instance; nothing global is touched.
type console struct {
	out      io.Writer
	progress io.Writer // progress bar destination, usually stderr

	label *color.Color
	good  *color.Color
	warn  *color.Color
	bad   *color.Color
	value *color.Color

	showProgress bool
}

func newConsole(out, progress io.Writer, noColor, noProgress bool) *console {
	colored := !noColor && os.Getenv("NO_COLOR") == "" && isTerminal(out)
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return &console{
		out:          out,
		progress:     progress,
		label:        mk(color.FgBlue),
		good:         mk(color.FgGreen),
		warn:         mk(color.FgYellow),
		bad:          mk(color.FgRed),
		value:        mk(color.FgCyan),
		showProgress: !noProgress && isTerminal(progress),
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *console) step(label, format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", c.label.Sprint(label), fmt.Sprintf(format, args...))
}

// Fatal prints a fatal setup error.
func (c *console) Fatal(err error) {
	fmt.Fprintf(c.out, "%s %v\n", c.bad.Sprint("Error:"), err)
}

// Warn prints a non-fatal problem, such as a failed clipboard copy.
func (c *console) Warn(format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", c.warn.Sprint("Warning:"), fmt.Sprintf(format, args...))
}

// fileProgress advances once per finished file.
type fileProgress interface {
	Add(n int) error
	Finish() error
}

type noProgress struct{}

func (noProgress) Add(int) error { return nil }
func (noProgress) Finish() error { return nil }

// Progress returns a progress bar over total files, or a no-op when output is
// not a terminal.
func (c *console) Progress(total int) fileProgress {
	if !c.showProgress || total == 0 {
		return noProgress{}
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(c.progress),
		progressbar.OptionSetDescription("Processing files"),
	)
}

// Summary prints the counts, the output location and up to errorsShown errors.
func (c *console) Summary(rep Report, output string, errorsShown int) {
	fmt.Fprintf(c.out, "\n%s\n", c.good.Sprint("Summary:"))
	fmt.Fprintf(c.out, "  Files processed: %s\n", c.good.Sprint(rep.Stats.Processed))
	fmt.Fprintf(c.out, "  Files skipped: %s\n", c.warn.Sprint(rep.Stats.Skipped))
	fmt.Fprintf(c.out, "  Errors: %s\n", c.bad.Sprint(rep.Stats.Errors))
	fmt.Fprintf(c.out, "  Total size: %s\n", c.value.Sprint(humanSize(rep.Stats.TotalBytes)))
	if rep.Stats.TokensCounted {
		fmt.Fprintf(c.out, "  Total tokens: %s\n", c.value.Sprint(rep.Stats.TotalTokens))
	}
	fmt.Fprintf(c.out, "\nAll files combined into %s\n", c.good.Sprint(output))

	samples := rep.ErrorSamples(errorsShown)
	if len(samples) == 0 {
		return
	}
	fmt.Fprintf(c.out, "\n%s\n", c.bad.Sprint("Some files had errors:"))
	for i, e := range samples {
		fmt.Fprintf(c.out, "  %d. %s: %s\n", i+1, e.Path, e.Detail)
	}
	if more := len(rep.Errors) - len(samples); more > 0 {
		fmt.Fprintf(c.out, "  ... and %d more errors\n", more)
	}
}

// Tree prints the tree of processed files.
func (c *console) Tree(tree string) {
	fmt.Fprintf(c.out, "\n%s\n%s", c.label.Sprint("Processed files:"), tree)
}
