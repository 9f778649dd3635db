package v1beta1

import (
	"strings"

	"github.com/goto/folio/internal/lib/linediff"
)

var styleClasses = map[linediff.Style]string{
	linediff.StyleNone:     "",
	linediff.StyleDeletion: "bg-red-100 text-red-800 line-through",
	linediff.StyleAddition: "bg-green-100 text-green-800",
	linediff.StyleModified: "bg-yellow-100 text-yellow-800",
}

// PaneHTML wraps the already escaped lines of a pane into a pre block
func PaneHTML(pane linediff.Pane) string {
	var sb strings.Builder
	sb.WriteString("<pre class='p-3 rounded whitespace-pre-wrap'>\n")
	for _, line := range pane.Lines {
		sb.WriteString("<div class='")
		sb.WriteString(styleClasses[line.Style])
		sb.WriteString("'>")
		sb.WriteString(line.Text)
		sb.WriteString("</div>\n")
	}
	sb.WriteString("</pre>\n")
	return sb.String()
}

func toDiffResponse(result linediff.Result) diffResponse {
	return diffResponse{
		LeftHTML:  PaneHTML(result.Left),
		RightHTML: PaneHTML(result.Right),
		Summary:   result.Summary,
	}
}
