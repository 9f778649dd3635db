package diff

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/goto/salt/log"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/goto/folio/client/cmd/internal/logger"
	"github.com/goto/folio/internal/lib/linediff"
)

const (
	defaultColWidth = 60
	tabWidth        = 4
)

type diffCommand struct {
	logger log.Logger
	fs     afero.Fs

	noColor  bool
	colWidth int
}

// NewDiffCommand initializes command to compare two drafts side by side
func NewDiffCommand() *cobra.Command {
	d := &diffCommand{
		logger: logger.NewClientLogger(),
		fs:     afero.NewReadOnlyFs(afero.NewOsFs()),
	}

	cmd := &cobra.Command{
		Use:   "diff <old-file> <new-file>",
		Short: "Compare two drafts side by side",
		Long: heredoc.Doc(`
			Compare two drafts line by line, the same way revisions are compared
			on the blog. Deleted lines are struck through in red, inserted lines
			are green and modified lines are yellow on both sides.`),
		Example: "folio diff draft-1.md draft-2.md [--no-color]",
		Args:    cobra.ExactArgs(2),
		RunE:    d.RunE,
	}
	cmd.Flags().BoolVar(&d.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().IntVarP(&d.colWidth, "width", "w", defaultColWidth, "Maximum width of each side")
	return cmd
}

func (d *diffCommand) RunE(cmd *cobra.Command, args []string) error {
	oldContent, err := afero.ReadFile(d.fs, args[0])
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", args[0], err)
	}
	newContent, err := afero.ReadFile(d.fs, args[1])
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", args[1], err)
	}
	if d.colWidth <= 0 {
		return errors.New("width should be positive")
	}

	result := linediff.RenderWith(linediff.Align(string(oldContent), string(newContent)), expandTabs)

	out := cmd.OutOrStdout()
	d.printTable(out, args[0], args[1], result, newPalette(d.colorEnabled(out)))

	d.logger.Info("%s (%s -> %s)", result.Summary,
		humanize.Bytes(uint64(len(oldContent))), humanize.Bytes(uint64(len(newContent))))
	return nil
}

func (d *diffCommand) colorEnabled(out io.Writer) bool {
	if d.noColor {
		return false
	}
	f, ok := out.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func (d *diffCommand) printTable(out io.Writer, oldName, newName string, result linediff.Result, p palette) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{oldName, newName})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColWidth(d.colWidth)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(true)

	for i := range result.Left.Lines {
		table.Append([]string{
			p.cell(result.Left.Lines[i]),
			p.cell(result.Right.Lines[i]),
		})
	}
	table.Render()
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

type palette map[linediff.Style]*color.Color

func newPalette(enabled bool) palette {
	p := palette{
		linediff.StyleDeletion: color.New(color.FgRed, color.CrossedOut),
		linediff.StyleAddition: color.New(color.FgGreen),
		linediff.StyleModified: color.New(color.FgYellow),
	}
	for _, c := range p {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) cell(line linediff.RenderedLine) string {
	if line.Number == 0 {
		return ""
	}

	text := fmt.Sprintf("%4d  %s", line.Number, line.Text)
	if c, ok := p[line.Style]; ok {
		return c.Sprint(text)
	}
	return text
}
