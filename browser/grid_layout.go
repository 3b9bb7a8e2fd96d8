package browser

import (
	"math"

	"fyne.io/fyne/v2"
)

// Metrics are the fixed sizes a grid cell is built from.
type Metrics struct {
	IconSize   int
	GridWidth  int
	GridHeight int
	Padding    int
	Border     int
}

// DefaultMetrics matches the stock panel look.
func DefaultMetrics() Metrics {
	return Metrics{
		IconSize:   DefaultIconSize,
		GridWidth:  120,
		GridHeight: 60,
		Padding:    5,
		Border:     1,
	}
}

// ItemSize is the content box of one grid item.
func (m Metrics) ItemSize() fyne.Size {
	w := m.GridWidth + m.Border*2 + m.Padding*2
	h := m.GridHeight + m.Border*2 + m.Padding
	return fyne.NewSize(float32(w), float32(h))
}

// Footprint is the natural cell size: the item plus its side padding,
// rounded up to even numbers so content can be centered symmetrically.
func (m Metrics) Footprint() fyne.Size {
	item := m.ItemSize()
	w := int(item.Width) + m.Padding*2
	h := int(item.Height)
	return fyne.NewSize(float32(roundUpEven(w)), float32(roundUpEven(h)))
}

func roundUpEven(v int) int {
	if v%2 != 0 {
		return v + 1
	}
	return v
}

// GridLayout is the cell geometry for one grid width.
type GridLayout struct {
	CellWidth  float32
	CellHeight float32
	PerRow     int
	// Slack is the width left over after PerRow natural cells.
	Slack float32
	// Extra is the width added to every cell to absorb Slack.
	Extra float32
	// LeftPad shifts cell content right to stay centered in a widened cell.
	LeftPad float32
}

// InteriorWidth is the width usable by cells inside a grid of the given
// outer width: minus the vertical scrollbar and a one unit border.
func InteriorWidth(containerWidth, scrollBarWidth float32) float32 {
	w := containerWidth - scrollBarWidth - 1
	if w < 0 {
		return 0
	}
	return w
}

// ComputeLayout spreads the slack of a row evenly across its cells so the
// grid fills available exactly. When all count items fit on a single row
// there is nothing to fill and cells keep their footprint.
func ComputeLayout(available float32, footprint fyne.Size, count int) GridLayout {
	l := GridLayout{
		CellWidth:  footprint.Width,
		CellHeight: footprint.Height,
		PerRow:     1,
	}
	if footprint.Width <= 0 || available <= 0 {
		return l
	}

	perRow := int(math.Floor(float64(available / footprint.Width)))
	if perRow < 1 {
		return l
	}
	l.PerRow = perRow

	if float32(count)*footprint.Width <= available {
		return l
	}

	l.Slack = available - float32(perRow)*footprint.Width
	l.Extra = l.Slack / float32(perRow)
	l.CellWidth = footprint.Width + l.Extra
	l.LeftPad = leftPad(l.Extra)
	return l
}

// leftPad halves the rounded extra width, dropping a unit first when it is
// odd so both sides get the same amount.
func leftPad(extra float32) float32 {
	add := int(math.Round(float64(extra)))
	if add%2 != 0 {
		add--
	}
	return float32(add / 2)
}
