package browser

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// centeredOffset is the scroll offset that centers a row of height rowHeight
// starting at rowTop in a viewport, clamped to the scrollable range.
func centeredOffset(rowTop, rowHeight, viewport, content float32) float32 {
	offset := rowTop - (viewport-rowHeight)/2
	maxOffset := content - viewport
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// nameView projects the filtered set onto a widget.List of labels.
type nameView struct {
	list *widget.List
	ctrl *Controller

	current   int
	syncing   bool
	rowHeight float32
}

func newNameView(ctrl *Controller) *nameView {
	v := &nameView{ctrl: ctrl, current: -1}
	v.list = widget.NewList(
		func() int { return ctrl.Len() },
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Truncation = fyne.TextTruncateEllipsis
			return l
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(ctrl.Name(id))
		},
	)
	v.list.OnSelected = func(id widget.ListItemID) {
		v.current = id
		if v.syncing {
			return
		}
		ctrl.OnItemActivated(NameView, id)
	}
	v.list.OnUnselected = func(id widget.ListItemID) {
		if v.current == id {
			v.current = -1
		}
	}
	return v
}

func (v *nameView) Reload() {
	v.list.Refresh()
}

func (v *nameView) SetCurrent(row int) {
	v.syncing = true
	defer func() { v.syncing = false }()

	if row < 0 {
		v.list.UnselectAll()
		v.current = -1
		return
	}
	v.list.Select(row)
}

func (v *nameView) Current() (int, bool) {
	return v.current, v.current >= 0
}

func (v *nameView) ScrollToCenter(row int) {
	if row < 0 || row >= v.ctrl.Len() {
		return
	}
	viewport := v.list.Size().Height
	if viewport <= 0 {
		v.list.ScrollTo(row)
		return
	}

	if v.rowHeight == 0 {
		v.rowHeight = widget.NewLabel("A").MinSize().Height
	}
	pad := v.list.Theme().Size(theme.SizeNamePadding)
	stepY := v.rowHeight + pad
	content := float32(v.ctrl.Len())*stepY - pad
	v.list.ScrollToOffset(centeredOffset(float32(row)*stepY, v.rowHeight, viewport, content))
}

// iconView projects the filtered set onto a widget.GridWrap of thumbnails.
type iconView struct {
	grid  *widget.GridWrap
	ctrl  *Controller
	cache *IconCache

	layout   GridLayout
	iconSize float32
	natural  fyne.Size

	current int
	syncing bool
}

func newIconView(ctrl *Controller, cache *IconCache, metrics Metrics) *iconView {
	footprint := metrics.Footprint()
	v := &iconView{
		ctrl:     ctrl,
		cache:    cache,
		iconSize: float32(metrics.IconSize),
		natural:  footprint,
		layout:   GridLayout{CellWidth: footprint.Width, CellHeight: footprint.Height, PerRow: 1},
		current:  -1,
	}
	v.grid = widget.NewGridWrap(
		func() int { return ctrl.Len() },
		func() fyne.CanvasObject { return newIconCell(v) },
		func(id widget.GridWrapItemID, o fyne.CanvasObject) {
			cell := o.(*iconCell)
			name := ctrl.Name(int(id))
			rec, _ := cache.Record(name)
			cell.set(name, rec)
		},
	)
	v.grid.OnSelected = func(id widget.GridWrapItemID) {
		v.current = int(id)
		if v.syncing {
			return
		}
		ctrl.OnItemActivated(IconView, int(id))
	}
	v.grid.OnUnselected = func(id widget.GridWrapItemID) {
		if v.current == int(id) {
			v.current = -1
		}
	}
	return v
}

func (v *iconView) Reload() {
	v.grid.Refresh()
}

func (v *iconView) SetCurrent(row int) {
	v.syncing = true
	defer func() { v.syncing = false }()

	if row < 0 {
		v.grid.UnselectAll()
		v.current = -1
		return
	}
	v.grid.Select(widget.GridWrapItemID(row))
}

func (v *iconView) Current() (int, bool) {
	return v.current, v.current >= 0
}

func (v *iconView) ScrollToCenter(row int) {
	count := v.ctrl.Len()
	if row < 0 || row >= count {
		return
	}
	viewport := v.grid.Size().Height
	if viewport <= 0 {
		v.grid.ScrollTo(widget.GridWrapItemID(row))
		return
	}

	cols := v.grid.ColumnCount()
	if cols < 1 {
		cols = 1
	}
	pad := v.grid.Theme().Size(theme.SizeNamePadding)
	stepY := v.layout.CellHeight + pad
	rows := (count + cols - 1) / cols
	content := float32(rows)*stepY - pad
	v.grid.ScrollToOffset(centeredOffset(float32(row/cols)*stepY, v.layout.CellHeight, viewport, content))
}

// setLayout applies new cell geometry and reports whether it changed.
func (v *iconView) setLayout(l GridLayout) bool {
	if l == v.layout {
		return false
	}
	v.layout = l
	v.grid.Refresh()
	return true
}

// cellSize is the MinSize of every grid cell. GridWrap adds its own
// padding between cells, so it is taken out of the computed width.
func (v *iconView) cellSize() fyne.Size {
	pad := theme.Padding()
	w := v.layout.CellWidth - pad
	if w < v.iconSize {
		w = v.iconSize
	}
	return fyne.NewSize(w, v.layout.CellHeight)
}

// refreshName redraws the cell showing name, if it is visible.
func (v *iconView) refreshName(name string) {
	if row, ok := v.ctrl.Row(name); ok {
		v.grid.RefreshItem(widget.GridWrapItemID(row))
	}
}

// iconCell shows a thumbnail above its centered name.
type iconCell struct {
	widget.BaseWidget
	view *iconView

	thumb *canvas.Image
	label *widget.Label
	name  string
}

func newIconCell(v *iconView) *iconCell {
	c := &iconCell{
		view:  v,
		thumb: canvas.NewImageFromImage(nil),
		label: widget.NewLabel(""),
	}
	c.thumb.FillMode = canvas.ImageFillContain
	c.thumb.ScaleMode = canvas.ImageScaleSmooth
	c.thumb.Hide()
	c.label.Alignment = fyne.TextAlignCenter
	c.label.Truncation = fyne.TextTruncateEllipsis
	c.ExtendBaseWidget(c)
	return c
}

func (c *iconCell) set(name string, rec *Record) {
	c.name = name
	c.label.SetText(name)

	var img image.Image
	if rec != nil {
		img = rec.Thumbnail()
	}
	if img == nil {
		c.thumb.Image = nil
		c.thumb.Hide()
	} else {
		c.thumb.Image = img
		c.thumb.Show()
	}
	c.thumb.Refresh()
}

func (c *iconCell) CreateRenderer() fyne.WidgetRenderer {
	return &iconCellRenderer{cell: c}
}

type iconCellRenderer struct {
	cell *iconCell
}

func (r *iconCellRenderer) Layout(size fyne.Size) {
	v := r.cell.view
	pad := theme.Padding()
	icon := fyne.NewSquareSize(v.iconSize)

	// Content is laid out for the natural footprint and shifted right by
	// the layout's left pad, which keeps it centered in a widened cell.
	x := v.layout.LeftPad + (v.natural.Width-pad-icon.Width)/2
	if x < 0 || x+icon.Width > size.Width {
		x = (size.Width - icon.Width) / 2
	}
	r.cell.thumb.Resize(icon)
	r.cell.thumb.Move(fyne.NewPos(x, pad))

	labelTop := icon.Height + pad*1.5
	r.cell.label.Resize(fyne.NewSize(size.Width, size.Height-labelTop))
	r.cell.label.Move(fyne.NewPos(0, labelTop))
}

func (r *iconCellRenderer) MinSize() fyne.Size {
	return r.cell.view.cellSize()
}

func (r *iconCellRenderer) Refresh() {
	r.cell.thumb.Refresh()
	r.cell.label.Refresh()
}

func (r *iconCellRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.cell.thumb, r.cell.label}
}

func (r *iconCellRenderer) Destroy() {}

// filterEntry commits its text on Enter and when it loses focus.
type filterEntry struct {
	widget.Entry
	onCommit func(text string)
}

func newFilterEntry(onCommit func(text string)) *filterEntry {
	e := &filterEntry{onCommit: onCommit}
	e.ExtendBaseWidget(e)
	e.OnSubmitted = func(string) { e.commit() }
	return e
}

func (e *filterEntry) FocusLost() {
	e.Entry.FocusLost()
	e.commit()
}

func (e *filterEntry) commit() {
	if e.onCommit != nil {
		e.onCommit(e.Text)
	}
}
