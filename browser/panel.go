package browser

import (
	"fmt"
	"image/color"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/alexballas/resourcebrowser/internal/logging"
)

// Options describe one panel instance.
type Options struct {
	Title string
	// Source provides the resource names and their bytes.
	Source Source
	// Renderer draws thumbnails. Defaults to an ImageRenderer over Source.
	Renderer   Renderer
	Extensions []string
	Metrics    Metrics
	WindowSize fyne.Size
	// StartDelay defers the thumbnail pass so the first paint is not blocked.
	StartDelay time.Duration
	// Dir is the local folder behind Source, used for the window icon.
	Dir    string
	Logger zerolog.Logger

	// set by Manager when it can rebuild the panel for another folder
	openFolder func(dir string)
}

func (o *Options) applyDefaults() {
	if o.Title == "" {
		o.Title = lang.L(defaultTitle)
	}
	if len(o.Extensions) == 0 {
		o.Extensions = []string{".png", ".svg"}
	}
	if o.Metrics == (Metrics{}) {
		o.Metrics = DefaultMetrics()
	}
	if o.WindowSize.IsZero() {
		o.WindowSize = fyne.NewSize(1030, 590)
	}
	if o.StartDelay <= 0 {
		o.StartDelay = defaultStartDelay
	}
	if o.Renderer == nil && o.Source != nil {
		o.Renderer = NewImageRenderer(o.Source, o.Metrics.IconSize)
	}
}

// Panel is one open resource browser window.
type Panel struct {
	opts   Options
	log    zerolog.Logger
	window fyne.Window

	cache  *IconCache
	filter *Filter
	ctrl   *Controller

	names *nameView
	icons *iconView
	entry *filterEntry
	path  *widget.Label

	footprint fyne.Size
	disposed  atomic.Bool
}

func newPanel(app fyne.App, opts Options) (*Panel, error) {
	if opts.Source == nil {
		return nil, ErrNoCatalog
	}
	opts.applyDefaults()

	p := &Panel{
		opts:      opts,
		log:       logging.Component(opts.Logger, "panel"),
		footprint: opts.Metrics.Footprint(),
	}

	p.cache = NewIconCache(opts.Source, opts.Renderer, opts.Extensions, logging.Component(opts.Logger, "icons"))
	if _, err := p.cache.Load("*"); err != nil {
		// An unreadable catalog still opens, just empty.
		p.log.Error().Err(err).Msg("catalog query failed")
	}

	p.filter = NewFilter(opts.Source, opts.Extensions)
	p.filter.Restrict(p.cache.Names())
	p.ctrl = NewController(p.filter, logging.Component(opts.Logger, "controller"))
	p.names = newNameView(p.ctrl)
	p.icons = newIconView(p.ctrl, p.cache, opts.Metrics)
	p.ctrl.Attach(p.names, p.icons)

	p.path = widget.NewLabel("")
	p.path.Selectable = true
	p.path.Truncation = fyne.TextTruncateEllipsis
	p.ctrl.OnPublish(p.path.SetText)
	p.ctrl.OnRebuilt(p.relayout)

	p.entry = newFilterEntry(func(text string) {
		if err := p.Dispatch(FilterEdited{Text: text}); err != nil {
			p.log.Debug().Err(err).Msg("filter not applied")
		}
	})

	p.cache.Subscribe(func(name string) {
		if p.disposed.Load() {
			return
		}
		fyne.Do(func() {
			if !p.disposed.Load() {
				p.icons.refreshName(name)
			}
		})
	})

	p.window = app.NewWindow(opts.Title)
	p.window.SetContent(p.makeUI())
	p.window.Resize(opts.WindowSize)
	p.applyFolderIcon()

	p.ctrl.Rebuild(p.cache.Names())
	return p, nil
}

func minWidth(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(w, 0))
	return container.NewStack(spacer, obj)
}

func (p *Panel) makeUI() fyne.CanvasObject {
	filterRow := fyne.CanvasObject(widget.NewForm(widget.NewFormItem(lang.L("Filter:"), p.entry)))
	if p.opts.openFolder != nil {
		openBtn := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
			chooseFolder(p.window, p.opts.openFolder)
		})
		filterRow = container.NewBorder(nil, nil, nil, openBtn, filterRow)
	}
	namePane := minWidth(namePaneWidth, container.NewBorder(filterRow, nil, nil, nil, p.names.list))

	pathRow := container.NewHBox(layout.NewSpacer(),
		widget.NewForm(widget.NewFormItem(lang.L("Path:"), minWidth(pathFieldWidth, p.path))))
	gridArea := container.New(&resizeLayout{
		internal: layout.NewStackLayout(),
		onResize: func() {
			if !p.disposed.Load() {
				_ = p.Dispatch(Resized{})
			}
		},
	}, p.icons.grid)
	iconPane := minWidth(iconPaneMinWidth, container.NewBorder(pathRow, nil, nil, nil, gridArea))

	return container.NewBorder(nil, nil, namePane, nil, iconPane)
}

// Dispatch routes a user event to the controller or the grid layout.
func (p *Panel) Dispatch(ev Event) error {
	switch e := ev.(type) {
	case FilterEdited:
		return p.ctrl.OnFilterChanged(e.Text)
	case ItemActivated:
		p.ctrl.OnItemActivated(e.View, e.Row)
		return nil
	case Resized:
		p.relayout()
		return nil
	default:
		return fmt.Errorf("unhandled event %T", ev)
	}
}

// relayout reflows the grid for its current width and item count, then
// keeps the selection in view.
func (p *Panel) relayout() {
	scrollBar := p.icons.grid.Theme().Size(theme.SizeNameScrollBar)
	available := InteriorWidth(p.icons.grid.Size().Width, scrollBar)
	l := ComputeLayout(available, p.footprint, p.ctrl.Len())
	if p.icons.setLayout(l) {
		p.log.Trace().
			Float32("available", available).
			Int("per_row", l.PerRow).
			Float32("extra", l.Extra).
			Msg("grid reflowed")
	}
	if row, ok := p.icons.Current(); ok {
		p.icons.ScrollToCenter(row)
	}
}

func (p *Panel) show() {
	p.window.CenterOnScreen()
	p.window.Show()
	p.window.Canvas().Focus(p.names.list)
	p.cache.Start(p.opts.StartDelay)
}

// Close closes the window. The thumbnail pass, if still running, is left
// to finish on its own and its results are dropped.
func (p *Panel) Close() {
	if p.disposed.Swap(true) {
		return
	}
	p.window.Close()
}

func (p *Panel) dispose() {
	p.disposed.Store(true)
}

// Closed reports whether the panel has been disposed.
func (p *Panel) Closed() bool {
	return p.disposed.Load()
}

func (p *Panel) Window() fyne.Window {
	return p.window
}

func (p *Panel) Controller() *Controller {
	return p.ctrl
}

func (p *Panel) Cache() *IconCache {
	return p.cache
}

// Path is the text shown in the path display.
func (p *Panel) Path() string {
	return p.path.Text
}

// Layout is the grid geometry currently applied.
func (p *Panel) Layout() GridLayout {
	return p.icons.layout
}
