package browser

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/rs/zerolog"
)

// FolderFactory builds panel options for a local folder picked by the user.
type FolderFactory func(dir string) (Options, error)

// Manager keeps at most one panel open. Showing a new panel closes the
// previous one first.
type Manager struct {
	app     fyne.App
	log     zerolog.Logger
	current *Panel
	folders FolderFactory
}

func NewManager(app fyne.App, log zerolog.Logger) *Manager {
	return &Manager{app: app, log: log}
}

// SetFolderFactory enables the open folder button on panels shown afterwards.
func (m *Manager) SetFolderFactory(fn FolderFactory) {
	m.folders = fn
}

// Show builds a panel from opts, closes any open one, then shows the new
// panel and starts its thumbnail pass.
func (m *Manager) Show(opts Options) (*Panel, error) {
	if m.folders != nil && opts.openFolder == nil {
		opts.openFolder = m.openFolder
	}
	p, err := newPanel(m.app, opts)
	if err != nil {
		return nil, fmt.Errorf("build panel: %w", err)
	}

	p.window.SetOnClosed(func() {
		p.dispose()
		if m.current == p {
			m.current = nil
		}
	})
	// The driver quits once no window is left open.
	old := m.current
	m.current = p
	if old != nil {
		old.Close()
	}
	p.show()

	m.log.Info().
		Str("title", p.opts.Title).
		Int("resources", p.ctrl.Len()).
		Msg("panel opened")
	return p, nil
}

// Current returns the open panel, or nil.
func (m *Manager) Current() *Panel {
	return m.current
}

// Close closes the open panel, if any.
func (m *Manager) Close() {
	p := m.current
	if p == nil {
		return
	}
	m.current = nil
	p.Close()
}

func (m *Manager) openFolder(dir string) {
	opts, err := m.folders(dir)
	if err == nil {
		_, err = m.Show(opts)
	}
	if err != nil {
		m.log.Error().Err(err).Str("dir", dir).Msg("open folder failed")
		if m.current != nil {
			dialog.ShowError(err, m.current.window)
		}
	}
}
