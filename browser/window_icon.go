package browser

import (
	"fyne.io/fyne/v2/storage"
	"github.com/FyshOS/fancyfs"
)

// applyFolderIcon uses the folder's own artwork, when it has any, as the
// window icon.
func (p *Panel) applyFolderIcon() {
	if p.opts.Dir == "" {
		return
	}
	details, err := fancyfs.DetailsForFolder(storage.NewFileURI(p.opts.Dir))
	if err != nil || details == nil || details.BackgroundResource == nil {
		return
	}
	p.window.SetIcon(details.BackgroundResource)
}
