package linediff

import (
	"fmt"
	"html"
)

type Style int

const (
	StyleNone Style = iota
	StyleDeletion
	StyleAddition
	StyleModified
)

func (s Style) String() string {
	switch s {
	case StyleDeletion:
		return "deletion"
	case StyleAddition:
		return "addition"
	case StyleModified:
		return "modified"
	default:
		return ""
	}
}

type RenderedLine struct {
	Style  Style
	Text   string // escaped
	Number int
}

// Pane is one rendered side. Count holds deletions for the old pane and
// additions for the new pane.
type Pane struct {
	Side  Side
	Lines []RenderedLine
	Count int
}

type Result struct {
	Left    Pane
	Right   Pane
	Summary string
}

func (r Result) Additions() int {
	return r.Right.Count
}

func (r Result) Deletions() int {
	return r.Left.Count
}

// Escaper prepares raw line text for the output format.
type Escaper func(string) string

// Render renders both panes with HTML escaped text.
func Render(m Model) Result {
	return RenderWith(m, html.EscapeString)
}

// RenderWith renders both panes, passing every line through escape. It panics
// when the sides of m differ in length.
func RenderWith(m Model, escape Escaper) Result {
	if len(m.old) != len(m.new) {
		panic(fmt.Sprintf("linediff: model sides differ in length: %d old, %d new", len(m.old), len(m.new)))
	}

	left := renderPane(SideOld, m.old, escape)
	right := renderPane(SideNew, m.new, escape)

	return Result{
		Left:    left,
		Right:   right,
		Summary: Summary(right.Count, left.Count),
	}
}

func Summary(additions, deletions int) string {
	return fmt.Sprintf("+%d additions, -%d deletions", additions, deletions)
}

func renderPane(side Side, lines []Line, escape Escaper) Pane {
	counted, countedStyle := Deleted, StyleDeletion
	if side == SideNew {
		counted, countedStyle = Inserted, StyleAddition
	}

	pane := Pane{
		Side:  side,
		Lines: make([]RenderedLine, len(lines)),
	}
	for i, line := range lines {
		style := StyleNone
		switch {
		case line.Imaginary:
		case line.Change == counted:
			style = countedStyle
			pane.Count++
		case line.Change == Modified:
			style = StyleModified
		}

		pane.Lines[i] = RenderedLine{
			Style:  style,
			Text:   escape(line.Text),
			Number: line.Number,
		}
	}

	return pane
}
