//go:build flatpak && !windows && !android && !ios && !wasm && !js

package browser

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/storage"

	"github.com/rymdport/portal"
	"github.com/rymdport/portal/filechooser"
)

// chooseFolder goes through the desktop portal, the only file access a
// sandboxed build has.
func chooseFolder(win fyne.Window, onChosen func(dir string)) {
	options := &filechooser.OpenFileOptions{
		AcceptLabel: lang.L("Open"),
		Directory:   true,
	}
	windowHandle := windowHandleForPortal(win)

	go func() {
		uris, err := filechooser.OpenFile(windowHandle, lang.L("Open")+" "+lang.L("Folder"), options)
		if err != nil {
			fyne.Do(func() { dialog.ShowError(err, win) })
			return
		}
		if len(uris) == 0 {
			return
		}

		uri, err := storage.ParseURI(uris[0])
		fyne.Do(func() {
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			onChosen(uri.Path())
		})
	}()
}

func windowHandleForPortal(window fyne.Window) string {
	native, ok := window.(driver.NativeWindow)
	if !ok {
		return ""
	}

	windowHandle := ""
	native.RunNative(func(context any) {
		if x11, ok := context.(driver.X11WindowContext); ok {
			windowHandle = portal.FormatX11WindowHandle(x11.WindowHandle)
		}
	})
	return windowHandle
}
