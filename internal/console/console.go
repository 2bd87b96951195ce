// Package console prints status lines, spinners and tables for the
// non-interactive commands.
package console

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/Tiliavir/autoprep/internal/grid"
	"github.com/Tiliavir/autoprep/internal/model"
)

// Highlight colours.
var (
	BrightCyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	BrightGreen  = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	BoldRed      = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Console writes user-facing output. Status lines and spinners go to the
// error stream so piped report output stays clean.
type Console struct {
	out   io.Writer
	quiet bool
}

// New creates a Console writing tables to out. A quiet console prints no
// spinners or status lines, only tables.
func New(out io.Writer, quiet bool) *Console {
	return &Console{out: out, quiet: quiet}
}

// Default returns a Console on stdout.
func Default() *Console {
	return New(os.Stdout, false)
}

// LogInfo prints an informational line.
func (c *Console) LogInfo(format string, a ...any) {
	if !c.quiet {
		pterm.Info.WithWriter(os.Stderr).Printfln(format, a...)
	}
}

// LogWarning prints a warning line.
func (c *Console) LogWarning(format string, a ...any) {
	if !c.quiet {
		pterm.Warning.WithWriter(os.Stderr).Printfln(format, a...)
	}
}

// LogError prints an error line. It is shown even on a quiet console.
func (c *Console) LogError(format string, a ...any) {
	pterm.Error.WithWriter(os.Stderr).Printfln(format, a...)
}

// LogSuccess prints a success line.
func (c *Console) LogSuccess(format string, a ...any) {
	if !c.quiet {
		pterm.Success.WithWriter(os.Stderr).Printfln(format, a...)
	}
}

// StatusHandle controls a running spinner.
type StatusHandle interface {
	Update(message string)
	Success(message string)
	Fail(message string)
}

type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

type noopStatus struct{}

func (noopStatus) Update(string)  {}
func (noopStatus) Success(string) {}
func (noopStatus) Fail(string)    {}

// Status starts a spinner with the given message.
func (c *Console) Status(message string) StatusHandle {
	if c.quiet {
		return noopStatus{}
	}
	spinner, err := pterm.DefaultSpinner.WithWriter(os.Stderr).WithRemoveWhenDone(false).Start(message)
	if err != nil {
		return noopStatus{}
	}
	return &statusHandle{spinner: spinner}
}

func (h *statusHandle) Update(message string) {
	h.spinner.UpdateText(message)
}

func (h *statusHandle) Success(message string) {
	h.spinner.Success(message)
}

func (h *statusHandle) Fail(message string) {
	h.spinner.Fail(message)
}

// TableData converts rows into pterm table data with the header first.
func TableData(rows []model.Row) pterm.TableData {
	data := pterm.TableData{append([]string(nil), grid.Header...)}
	for _, r := range rows {
		data = append(data, []string{r.Member, r.Hours, r.Minutes})
	}
	return data
}

// RenderTable renders the weekly table to the console output.
func (c *Console) RenderTable(rows []model.Row) error {
	s, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithRightAlignment().
		WithData(TableData(rows)).
		Srender()
	if err != nil {
		return err
	}
	_, err = io.WriteString(c.out, s+"\n")
	return err
}
