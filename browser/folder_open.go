//go:build !flatpak

package browser

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// chooseFolder asks for a directory and hands its local path to onChosen.
// Cancelling does nothing.
func chooseFolder(win fyne.Window, onChosen func(dir string)) {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if dir == nil {
			return
		}
		onChosen(dir.Path())
	}, win)
}
