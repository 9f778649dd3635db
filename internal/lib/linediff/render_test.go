package linediff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goto/folio/internal/lib/linediff"
)

func TestRender(t *testing.T) {
	t.Run("counts nothing for identical texts", func(t *testing.T) {
		result := linediff.Render(linediff.Align(tenLines, tenLines))

		assert.Equal(t, 0, result.Additions())
		assert.Equal(t, 0, result.Deletions())
		assert.Equal(t, "+0 additions, -0 deletions", result.Summary)
		for _, line := range append(result.Left.Lines, result.Right.Lines...) {
			assert.Equal(t, linediff.StyleNone, line.Style)
		}
	})
	t.Run("counts additions for pure insertion and leaves the left pane blank", func(t *testing.T) {
		result := linediff.Render(linediff.Align("", "a\nb"))

		assert.Equal(t, 2, result.Additions())
		assert.Equal(t, 0, result.Deletions())
		assert.Len(t, result.Left.Lines, 2)
		for _, line := range result.Left.Lines {
			assert.Empty(t, line.Text)
			assert.Equal(t, linediff.StyleNone, line.Style)
		}
		assert.Equal(t, []linediff.RenderedLine{
			{Style: linediff.StyleAddition, Text: "a", Number: 1},
			{Style: linediff.StyleAddition, Text: "b", Number: 2},
		}, result.Right.Lines)
	})
	t.Run("counts deletions for pure deletion", func(t *testing.T) {
		result := linediff.Render(linediff.Align("a\nb", ""))

		assert.Equal(t, 0, result.Additions())
		assert.Equal(t, 2, result.Deletions())
		assert.Equal(t, linediff.StyleDeletion, result.Left.Lines[0].Style)
		assert.Equal(t, linediff.StyleNone, result.Right.Lines[0].Style)
		assert.Equal(t, "+0 additions, -2 deletions", result.Summary)
	})
	t.Run("renders an appended line as one addition", func(t *testing.T) {
		result := linediff.Render(linediff.Align("Hello\nWorld", "Hello\nWorld\nFoo"))

		assert.Equal(t, 1, result.Additions())
		assert.Equal(t, 0, result.Deletions())
		assert.Equal(t, "+1 additions, -0 deletions", result.Summary)

		assert.Equal(t, linediff.StyleNone, result.Left.Lines[0].Style)
		assert.Equal(t, linediff.StyleNone, result.Left.Lines[1].Style)
		assert.Equal(t, linediff.StyleNone, result.Right.Lines[0].Style)
		assert.Equal(t, linediff.StyleNone, result.Right.Lines[1].Style)
		assert.Equal(t, linediff.StyleAddition, result.Right.Lines[2].Style)
		assert.Equal(t, "Foo", result.Right.Lines[2].Text)
	})
	t.Run("does not count modified lines", func(t *testing.T) {
		result := linediff.Render(linediff.Align("line1", "line1-changed"))

		assert.Equal(t, 0, result.Additions())
		assert.Equal(t, 0, result.Deletions())
		assert.Equal(t, linediff.StyleModified, result.Left.Lines[0].Style)
		assert.Equal(t, linediff.StyleModified, result.Right.Lines[0].Style)
		assert.Equal(t, "+0 additions, -0 deletions", result.Summary)
	})
	t.Run("counts only the unpaired part of a change block", func(t *testing.T) {
		result := linediff.Render(linediff.Align("keep\nold 1\nold 2\nold 3", "keep\nnew 1\nnew 2"))

		assert.Equal(t, 0, result.Additions())
		assert.Equal(t, 1, result.Deletions())
		assert.Equal(t, "+0 additions, -1 deletions", result.Summary)
	})
	t.Run("escapes markup in both panes", func(t *testing.T) {
		result := linediff.Render(linediff.Align("<b>bold</b>", "<script>alert('x')</script>"))

		assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", result.Left.Lines[0].Text)
		assert.Equal(t, "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;", result.Right.Lines[0].Text)
		assert.NotContains(t, result.Right.Lines[0].Text, "<script>")
	})
	t.Run("keeps both panes as long as the model", func(t *testing.T) {
		inputs := [][2]string{
			{"", ""},
			{"a\nb\nc", "c\nb\na"},
			{tenLines, "x\n" + tenLines + "y"},
			{"1\n2\n3\n4", "2\n4\n6"},
		}
		for _, in := range inputs {
			model := linediff.Align(in[0], in[1])
			result := linediff.Render(model)

			assert.Len(t, result.Left.Lines, model.Len())
			assert.Len(t, result.Right.Lines, model.Len())
			assert.Equal(t, linediff.SideOld, result.Left.Side)
			assert.Equal(t, linediff.SideNew, result.Right.Side)
		}
	})
	t.Run("panics when model sides differ in length", func(t *testing.T) {
		model := linediff.NewModel(
			[]linediff.Line{{Text: "a", Side: linediff.SideOld, Number: 1}},
			nil,
		)

		assert.Panics(t, func() { linediff.Render(model) })
	})
}

func TestRenderWith(t *testing.T) {
	t.Run("uses the given escaper", func(t *testing.T) {
		result := linediff.RenderWith(linediff.Align("a<b", "a<c"), strings.ToUpper)

		assert.Equal(t, "A<B", result.Left.Lines[0].Text)
		assert.Equal(t, "A<C", result.Right.Lines[0].Text)
		assert.Equal(t, linediff.StyleModified, result.Right.Lines[0].Style)
	})
}

func TestStyle(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "", linediff.StyleNone.String())
		assert.Equal(t, "deletion", linediff.StyleDeletion.String())
		assert.Equal(t, "addition", linediff.StyleAddition.String())
		assert.Equal(t, "modified", linediff.StyleModified.String())
	})
}
