package browser

import (
	"errors"
	"time"
)

// ViewID names one of the two synchronized views.
type ViewID int

const (
	// NameView is the plain list of resource names.
	NameView ViewID = iota
	// IconView is the thumbnail grid.
	IconView
)

func (v ViewID) other() ViewID {
	if v == NameView {
		return IconView
	}
	return NameView
}

func (v ViewID) String() string {
	if v == NameView {
		return "names"
	}
	return "icons"
}

const (
	// PathPrefix is prepended to a resource name in the path display.
	PathPrefix = ":/"

	defaultTitle      = "Resource Browser"
	defaultStartDelay = time.Millisecond
	namePaneWidth     = 280
	pathFieldWidth    = 280
	iconPaneMinWidth  = 312
)

var (
	// ErrNoCatalog is returned when a panel is built without a catalog.
	ErrNoCatalog = errors.New("no catalog configured")
	// ErrNotFound is returned by Open for names the catalog does not hold.
	ErrNotFound = errors.New("resource not found")
	// ErrUnsupportedFormat is returned by the renderer for undecodable resources.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrAlreadyStarted is returned by Load once the background pass has begun.
	ErrAlreadyStarted = errors.New("icon cache already started")
)

// Event is a user interaction routed through Panel.Dispatch.
type Event interface {
	isEvent()
}

// FilterEdited is sent when the filter field commits its text.
type FilterEdited struct {
	Text string
}

// ItemActivated is sent when the user picks a row in one of the views.
type ItemActivated struct {
	View ViewID
	Row  int
}

// Resized is sent when the icon grid changes size.
type Resized struct{}

func (FilterEdited) isEvent()  {}
func (ItemActivated) isEvent() {}
func (Resized) isEvent()       {}
