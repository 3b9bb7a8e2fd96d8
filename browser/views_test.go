package browser

import (
	"errors"
	"image"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
)

func TestCenteredOffset(t *testing.T) {
	cases := []struct {
		name                               string
		rowTop, rowHeight, viewport, total float32
		want                               float32
	}{
		{"middle", 500, 20, 100, 2000, 460},
		{"clamped at top", 10, 20, 100, 2000, 0},
		{"clamped at bottom", 1980, 20, 100, 2000, 1900},
		{"content shorter than viewport", 20, 20, 100, 60, 0},
	}
	for _, tc := range cases {
		if got := centeredOffset(tc.rowTop, tc.rowHeight, tc.viewport, tc.total); got != tc.want {
			t.Errorf("%s: centeredOffset = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIconCell_ShowsThumbnailOnlyWhenReady(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	ctrl := NewController(nil, zerolog.Nop())
	view := newIconView(ctrl, NewIconCache(nil, nil, pngOnly, zerolog.Nop()), DefaultMetrics())
	cell := newIconCell(view)

	ready := &Record{Name: "add.png"}
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	ready.thumb.Store(&thumbnail{img: img})
	ready.state.Store(int32(Ready))

	cell.set(ready.Name, ready)
	if !cell.thumb.Visible() || cell.thumb.Image != img {
		t.Fatal("ready record should show its thumbnail")
	}
	if cell.label.Text != "add.png" {
		t.Fatalf("expected label add.png, got %q", cell.label.Text)
	}

	cell.set("bad.png", &Record{Name: "bad.png"})
	if cell.thumb.Visible() || cell.thumb.Image != nil {
		t.Fatal("unrendered record should hide the thumbnail")
	}
	if !cell.label.Visible() || cell.label.Text != "bad.png" {
		t.Fatalf("unrendered record should keep its label, got %q", cell.label.Text)
	}

	cell.set("gone.png", nil)
	if cell.thumb.Visible() || cell.label.Text != "gone.png" {
		t.Fatal("missing record should show the name without a thumbnail")
	}
}

func visibleCells(p *Panel) map[string]*iconCell {
	cells := make(map[string]*iconCell)
	for _, o := range test.LaidOutObjects(p.window.Canvas().Content()) {
		if c, ok := o.(*iconCell); ok && c.name != "" {
			cells[c.name] = c
		}
	}
	return cells
}

func TestPanel_ThumbnailsReachVisibleCells(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	gate := make(chan struct{})
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	renderer := funcRenderer(func(name string) (image.Image, error) {
		<-gate
		if name == "bad.png" {
			return nil, errors.New("cannot decode")
		}
		return img, nil
	})

	p, err := NewManager(a, zerolog.Nop()).Show(Options{
		Source:     pngCatalog(t, "add.png", "bad.png", "remove.png"),
		Renderer:   renderer,
		Extensions: pngOnly,
		StartDelay: time.Millisecond,
		Logger:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("show panel: %v", err)
	}
	// The pass is parked on the gate; let layout and resize callbacks finish.
	time.Sleep(2 * resizeDebounce)

	var before map[string]*iconCell
	onMain(func() { before = visibleCells(p) })
	if len(before) != 3 {
		t.Fatalf("expected 3 laid out cells, got %d", len(before))
	}
	for name, c := range before {
		if c.thumb.Visible() {
			t.Fatalf("%s shows a thumbnail before rendering", name)
		}
	}

	close(gate)
	p.Cache().Wait()

	onMain(func() {
		cells := visibleCells(p)
		for _, name := range []string{"add.png", "remove.png"} {
			c, ok := cells[name]
			if !ok {
				t.Errorf("%s: no cell", name)
				continue
			}
			if !c.thumb.Visible() || c.thumb.Image == nil {
				t.Errorf("%s: thumbnail not shown after the pass", name)
			}
		}
		bad, ok := cells["bad.png"]
		if !ok {
			t.Error("bad.png: no cell")
			return
		}
		if bad.thumb.Visible() {
			t.Error("bad.png: failed render should not show a thumbnail")
		}
		if !bad.label.Visible() || bad.label.Text != "bad.png" {
			t.Errorf("bad.png: label should stay, got %q", bad.label.Text)
		}
	})
}

func TestPanel_FilterCommitsOnFocusLoss(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	p := showTestPanel(t, NewManager(a, zerolog.Nop()), "add.png", "remove.png", "rename.png")

	var (
		count int
		path  string
	)
	onMain(func() {
		c := p.window.Canvas()
		c.Focus(p.entry)
		p.entry.SetText("ren")
		c.Focus(p.names.list)

		count = p.Controller().Len()
		path = p.Path()
	})
	if count != 1 {
		t.Fatalf("expected 1 match after focus loss, got %d", count)
	}
	if path != ":/rename.png" {
		t.Fatalf("expected :/rename.png, got %q", path)
	}
}
