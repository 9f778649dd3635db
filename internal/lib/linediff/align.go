// Package linediff aligns two texts line by line for side by side display.
//
// Align computes the alignment with a Myers shortest edit script, which yields
// a longest common subsequence of lines. Render turns the aligned model into two
// styled panes and a summary. Neither keeps state, so both are safe for
// concurrent use.
//
// Inside a change block (the deletions and insertions between two unchanged
// lines) the i-th deleted line is paired with the i-th inserted line and both are
// Modified. Lines left over after pairing are Deleted or Inserted, and the other
// side of their row is an imaginary padding line.
package linediff

import "strings"

type ChangeType int

const (
	Unchanged ChangeType = iota
	Inserted
	Deleted
	Modified
)

func (c ChangeType) String() string {
	switch c {
	case Unchanged:
		return "unchanged"
	case Inserted:
		return "inserted"
	case Deleted:
		return "deleted"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

type Side int

const (
	SideOld Side = iota
	SideNew
)

func (s Side) String() string {
	if s == SideNew {
		return "new"
	}
	return "old"
}

// Line is one side of an aligned row.
type Line struct {
	Text   string
	Change ChangeType
	Side   Side

	// Number is the 1-based position in the source text, 0 for imaginary lines
	Number int
	// Imaginary lines pad a row whose other side has no counterpart. They carry
	// the change type of the row and empty text.
	Imaginary bool
}

// Model holds both sides of an alignment. Row i of Old and row i of New are
// displayed next to each other.
type Model struct {
	old []Line
	new []Line
}

// NewModel builds a model from precomputed sides. Render panics when the sides
// differ in length.
func NewModel(old, new []Line) Model {
	return Model{old: old, new: new}
}

func (m Model) Old() []Line {
	return append([]Line(nil), m.old...)
}

func (m Model) New() []Line {
	return append([]Line(nil), m.new...)
}

func (m Model) Len() int {
	return len(m.old)
}

// SplitLines splits text on "\n" after normalizing "\r\n". Empty text has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// Align computes the side by side alignment of oldText and newText.
func Align(oldText, newText string) Model {
	src := SplitLines(oldText)
	dst := SplitLines(newText)

	b := &modelBuilder{src: src, dst: dst}
	var dels, ins []int

	srcIndex, dstIndex := 0, 0
	for _, op := range shortestEditScript(src, dst) {
		switch op {
		case opEqual:
			b.flush(dels, ins)
			dels, ins = nil, nil

			b.addRow(
				Line{Text: src[srcIndex], Change: Unchanged, Side: SideOld, Number: srcIndex + 1},
				Line{Text: dst[dstIndex], Change: Unchanged, Side: SideNew, Number: dstIndex + 1},
			)
			srcIndex++
			dstIndex++
		case opDelete:
			dels = append(dels, srcIndex)
			srcIndex++
		case opInsert:
			ins = append(ins, dstIndex)
			dstIndex++
		}
	}
	b.flush(dels, ins)

	return Model{old: b.old, new: b.new}
}

type modelBuilder struct {
	src, dst []string
	old, new []Line
}

func (b *modelBuilder) addRow(oldLine, newLine Line) {
	b.old = append(b.old, oldLine)
	b.new = append(b.new, newLine)
}

// flush emits the rows of one change block, dels and ins hold line indexes
func (b *modelBuilder) flush(dels, ins []int) {
	paired := min(len(dels), len(ins))

	for i := 0; i < paired; i++ {
		oldText, newText := b.src[dels[i]], b.dst[ins[i]]
		change := Modified
		if oldText == newText {
			change = Unchanged
		}
		b.addRow(
			Line{Text: oldText, Change: change, Side: SideOld, Number: dels[i] + 1},
			Line{Text: newText, Change: change, Side: SideNew, Number: ins[i] + 1},
		)
	}

	for _, idx := range dels[paired:] {
		b.addRow(
			Line{Text: b.src[idx], Change: Deleted, Side: SideOld, Number: idx + 1},
			Line{Change: Deleted, Side: SideNew, Imaginary: true},
		)
	}

	for _, idx := range ins[paired:] {
		b.addRow(
			Line{Change: Inserted, Side: SideOld, Imaginary: true},
			Line{Text: b.dst[idx], Change: Inserted, Side: SideNew, Number: idx + 1},
		)
	}
}
