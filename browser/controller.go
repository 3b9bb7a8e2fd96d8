package browser

import (
	"github.com/rs/zerolog"
)

// Projection is a view rendered from the controller's filtered set.
// Row i of every projection refers to the same name.
type Projection interface {
	// Reload re-reads the filtered set.
	Reload()
	// SetCurrent marks row as current without reporting an activation.
	// A negative row clears it.
	SetCurrent(row int)
	// Current reports the view's selected row, if any.
	Current() (int, bool)
	// ScrollToCenter brings row into view, centered when possible.
	ScrollToCenter(row int)
}

// ControllerState tracks whether a filter change is being applied.
type ControllerState int

const (
	Idle ControllerState = iota
	Filtering
)

// Controller keeps the name list and icon grid in lock-step. The filtered
// set it holds is the single source of truth for both views. All methods
// must be called from the UI goroutine.
type Controller struct {
	filter *Filter
	views  [2]Projection
	log    zerolog.Logger

	filtered []string
	rows     map[string]int
	selected string
	path     string
	state    ControllerState

	onPublish []func(path string)
	onRebuilt []func()
}

func NewController(filter *Filter, log zerolog.Logger) *Controller {
	return &Controller{
		filter: filter,
		log:    log,
		rows:   make(map[string]int),
	}
}

// Attach connects the two views. It must precede the first Rebuild.
func (c *Controller) Attach(names, icons Projection) {
	c.views[NameView] = names
	c.views[IconView] = icons
}

// OnPublish registers a listener for the path display text.
func (c *Controller) OnPublish(fn func(path string)) {
	c.onPublish = append(c.onPublish, fn)
}

// OnRebuilt registers fn to run after every rebuild.
func (c *Controller) OnRebuilt(fn func()) {
	c.onRebuilt = append(c.onRebuilt, fn)
}

// Len is the number of rows in both views.
func (c *Controller) Len() int {
	return len(c.filtered)
}

// Name returns the name at row, or "" when out of range.
func (c *Controller) Name(row int) string {
	if row < 0 || row >= len(c.filtered) {
		return ""
	}
	return c.filtered[row]
}

// Row returns the row currently showing name.
func (c *Controller) Row(name string) (int, bool) {
	row, ok := c.rows[name]
	return row, ok
}

// Names returns a copy of the filtered set.
func (c *Controller) Names() []string {
	return append([]string(nil), c.filtered...)
}

func (c *Controller) Selected() (string, bool) {
	return c.selected, c.selected != ""
}

// Path is the text last published to the path display.
func (c *Controller) Path() string {
	return c.path
}

func (c *Controller) State() ControllerState {
	return c.state
}

// OnFilterChanged applies text and rebuilds the views if the filtered set
// changed. A query error leaves both views empty and is returned.
func (c *Controller) OnFilterChanged(text string) error {
	if c.filter == nil {
		return ErrNoCatalog
	}

	c.state = Filtering
	defer func() { c.state = Idle }()

	names, changed, err := c.filter.Apply(text)
	if !changed {
		return nil
	}
	if err != nil {
		c.log.Warn().Err(err).Str("filter", text).Msg("filter query failed")
		c.Rebuild(nil)
		return err
	}
	c.Rebuild(names)
	return nil
}

// Rebuild clears both views and repopulates them from set. The previous
// selection is kept when it is still present, otherwise the first row is
// selected. An empty set clears the selection.
func (c *Controller) Rebuild(set []string) {
	c.filtered = nil
	c.rows = make(map[string]int, len(set))
	for _, v := range c.views {
		if v == nil {
			continue
		}
		v.SetCurrent(-1)
		v.Reload()
	}
	c.publish("")

	if len(set) == 0 {
		c.selected = ""
		c.rebuilt()
		return
	}

	c.filtered = append(make([]string, 0, len(set)), set...)
	for i, name := range c.filtered {
		if _, dup := c.rows[name]; !dup {
			c.rows[name] = i
		}
	}

	index := 0
	if row, ok := c.rows[c.selected]; ok && c.selected != "" {
		index = row
	}
	// The fallback row becomes the remembered selection, so it stays
	// selected when a later rebuild brings the old name back.
	c.selected = c.filtered[index]

	for _, v := range c.views {
		if v == nil {
			continue
		}
		v.Reload()
		v.SetCurrent(index)
		v.ScrollToCenter(index)
	}
	c.publish(PathPrefix + c.selected)
	c.rebuilt()
}

// OnItemActivated mirrors the activating view's current row onto the other
// view. It does nothing when the activating view has no selection.
func (c *Controller) OnItemActivated(view ViewID, row int) {
	src := c.views[view]
	if src == nil {
		return
	}
	current, ok := src.Current()
	if !ok || current < 0 || current >= len(c.filtered) {
		return
	}
	if current != row {
		c.log.Debug().Int("row", row).Int("current", current).Stringer("view", view).Msg("activation row differs from selection")
	}

	if dst := c.views[view.other()]; dst != nil {
		dst.SetCurrent(current)
		dst.ScrollToCenter(current)
	}

	c.selected = c.filtered[current]
	c.publish(PathPrefix + c.selected)
}

func (c *Controller) publish(path string) {
	c.path = path
	for _, fn := range c.onPublish {
		fn(path)
	}
}

func (c *Controller) rebuilt() {
	for _, fn := range c.onRebuilt {
		fn()
	}
}
