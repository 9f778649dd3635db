package toc

import (
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/salt/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/goto/folio/client/cmd/internal/logger"
	"github.com/goto/folio/core/blog"
	"github.com/goto/folio/ext/markdown"
)

type tocCommand struct {
	logger log.Logger
	fs     afero.Fs
}

// NewTOCCommand initializes command to preview the table of contents of a draft
func NewTOCCommand() *cobra.Command {
	t := &tocCommand{
		logger: logger.NewClientLogger(),
		fs:     afero.NewReadOnlyFs(afero.NewOsFs()),
	}

	cmd := &cobra.Command{
		Use:   "toc <file>",
		Short: "Preview the table of contents of a markdown draft",
		Long: heredoc.Doc(`
			Render a markdown draft the way the blog does and print its
			headings as a tree, each with the anchor it links to.`),
		Example: "folio toc draft.md",
		Args:    cobra.ExactArgs(1),
		RunE:    t.RunE,
	}
	return cmd
}

func (t *tocCommand) RunE(_ *cobra.Command, args []string) error {
	content, err := afero.ReadFile(t.fs, args[0])
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", args[0], err)
	}

	_, headings, err := markdown.NewRenderer().Render(string(content))
	if err != nil {
		return err
	}
	if len(headings) == 0 {
		t.logger.Warn("no headings found in %s", args[0])
		return nil
	}

	t.logger.Info(Tree(filepath.Base(args[0]), headings).String())
	return nil
}

// Tree nests every heading below the closest preceding heading of a lower level
func Tree(root string, headings []blog.Heading) treeprint.Tree {
	tree := treeprint.NewWithRoot(root)

	type branch struct {
		level int
		node  treeprint.Tree
	}
	var stack []branch
	for _, h := range headings {
		for len(stack) > 0 && stack[len(stack)-1].level >= h.Level {
			stack = stack[:len(stack)-1]
		}

		parent := tree
		if len(stack) > 0 {
			parent = stack[len(stack)-1].node
		}
		node := parent.AddBranch(fmt.Sprintf("%s #%s", h.Text, h.ID))
		stack = append(stack, branch{level: h.Level, node: node})
	}
	return tree
}
