package browser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Catalog answers wildcard queries over resource names.
// "*" means every resource and "<prefix>*" those starting with prefix.
type Catalog interface {
	Query(pattern string) ([]string, error)
}

// Opener gives access to the bytes of a named resource.
type Opener interface {
	Open(name string) (io.ReadCloser, error)
}

// Source is a catalog whose resources can also be opened.
type Source interface {
	Catalog
	Opener
}

// matchName reports whether name matches the glob pattern, ignoring case.
func matchName(pattern, name string) (bool, error) {
	return path.Match(strings.ToLower(pattern), strings.ToLower(name))
}

func matchAll(pattern string, names []string) ([]string, error) {
	// Validate once so an empty catalog still reports a malformed pattern.
	if _, err := matchName(pattern, ""); err != nil {
		return nil, err
	}

	var matched []string
	for _, name := range names {
		ok, err := matchName(pattern, name)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// isSupported reports whether name carries one of the given extensions.
func isSupported(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// supportedNames keeps the names with a supported extension, in order.
func supportedNames(names, extensions []string) []string {
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if isSupported(name, extensions) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// ResourceCatalog serves a fixed, ordered set of fyne resources.
type ResourceCatalog struct {
	order  []string
	byName map[string]fyne.Resource
}

// NewResourceCatalog keeps the given order. Later duplicates are ignored.
func NewResourceCatalog(resources ...fyne.Resource) *ResourceCatalog {
	c := &ResourceCatalog{byName: make(map[string]fyne.Resource, len(resources))}
	for _, res := range resources {
		if res == nil {
			continue
		}
		if _, dup := c.byName[res.Name()]; dup {
			continue
		}
		c.byName[res.Name()] = res
		c.order = append(c.order, res.Name())
	}
	return c
}

func (c *ResourceCatalog) Query(pattern string) ([]string, error) {
	return matchAll(pattern, c.order)
}

func (c *ResourceCatalog) Open(name string) (io.ReadCloser, error) {
	res, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(res.Content())), nil
}

var themeIcons = []fyne.ThemeIconName{
	theme.IconNameAccount,
	theme.IconNameCancel,
	theme.IconNameCheckButton,
	theme.IconNameCheckButtonChecked,
	theme.IconNameComputer,
	theme.IconNameConfirm,
	theme.IconNameContentAdd,
	theme.IconNameContentClear,
	theme.IconNameContentCopy,
	theme.IconNameContentCut,
	theme.IconNameContentPaste,
	theme.IconNameContentRedo,
	theme.IconNameContentRemove,
	theme.IconNameContentUndo,
	theme.IconNameDelete,
	theme.IconNameDocument,
	theme.IconNameDocumentCreate,
	theme.IconNameDocumentPrint,
	theme.IconNameDocumentSave,
	theme.IconNameDownload,
	theme.IconNameError,
	theme.IconNameFile,
	theme.IconNameFileApplication,
	theme.IconNameFileAudio,
	theme.IconNameFileImage,
	theme.IconNameFileText,
	theme.IconNameFileVideo,
	theme.IconNameFolder,
	theme.IconNameFolderNew,
	theme.IconNameFolderOpen,
	theme.IconNameGrid,
	theme.IconNameHelp,
	theme.IconNameHistory,
	theme.IconNameHome,
	theme.IconNameInfo,
	theme.IconNameList,
	theme.IconNameLogin,
	theme.IconNameLogout,
	theme.IconNameMailAttachment,
	theme.IconNameMailCompose,
	theme.IconNameMailForward,
	theme.IconNameMailReply,
	theme.IconNameMailReplyAll,
	theme.IconNameMailSend,
	theme.IconNameMediaFastForward,
	theme.IconNameMediaFastRewind,
	theme.IconNameMediaPause,
	theme.IconNameMediaPlay,
	theme.IconNameMediaRecord,
	theme.IconNameMediaReplay,
	theme.IconNameMediaSkipNext,
	theme.IconNameMediaSkipPrevious,
	theme.IconNameMediaStop,
	theme.IconNameMenu,
	theme.IconNameMenuExpand,
	theme.IconNameMoreHorizontal,
	theme.IconNameMoreVertical,
	theme.IconNameMoveDown,
	theme.IconNameMoveUp,
	theme.IconNameNavigateBack,
	theme.IconNameNavigateNext,
	theme.IconNameQuestion,
	theme.IconNameRadioButton,
	theme.IconNameRadioButtonChecked,
	theme.IconNameSearch,
	theme.IconNameSearchReplace,
	theme.IconNameSettings,
	theme.IconNameStorage,
	theme.IconNameUpload,
	theme.IconNameViewFullScreen,
	theme.IconNameViewRefresh,
	theme.IconNameViewRestore,
	theme.IconNameViewZoomFit,
	theme.IconNameViewZoomIn,
	theme.IconNameViewZoomOut,
	theme.IconNameVisibility,
	theme.IconNameVisibilityOff,
	theme.IconNameVolumeDown,
	theme.IconNameVolumeMute,
	theme.IconNameVolumeUp,
	theme.IconNameWarning,
}

// renamedResource gives a resource a catalog name. Content is read on
// demand, so themed icons are only colored once an app is running.
type renamedResource struct {
	fyne.Resource
	name string
}

func (r renamedResource) Name() string {
	return r.name
}

// ThemeCatalog exposes the default fyne theme icons as "<icon>.svg" resources.
func ThemeCatalog() *ResourceCatalog {
	th := theme.DefaultTheme()
	resources := make([]fyne.Resource, 0, len(themeIcons))
	for _, name := range themeIcons {
		res := th.Icon(name)
		if res == nil {
			continue
		}
		resources = append(resources, renamedResource{Resource: res, name: string(name) + ".svg"})
	}
	return NewResourceCatalog(resources...)
}

// FSCatalog lists the regular files at the root of a file system.
type FSCatalog struct {
	fsys fs.FS
	dir  string
}

// NewFSCatalog serves the files of a local directory.
func NewFSCatalog(dir string) (*FSCatalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open catalog dir: %s is not a directory", dir)
	}
	return &FSCatalog{fsys: os.DirFS(dir), dir: dir}, nil
}

// NewFSCatalogFS serves the files at the root of fsys.
func NewFSCatalogFS(fsys fs.FS) *FSCatalog {
	return &FSCatalog{fsys: fsys}
}

// Dir is the local directory backing the catalog, if any.
func (c *FSCatalog) Dir() string {
	return c.dir
}

func (c *FSCatalog) Query(pattern string) ([]string, error) {
	entries, err := fs.ReadDir(c.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return matchAll(pattern, names)
}

func (c *FSCatalog) Open(name string) (io.ReadCloser, error) {
	f, err := c.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}

// FuzzyCatalog answers "<query>*" with a case-insensitive fuzzy
// subsequence match over the base catalog instead of a prefix glob.
type FuzzyCatalog struct {
	base Source
}

func NewFuzzyCatalog(base Source) *FuzzyCatalog {
	return &FuzzyCatalog{base: base}
}

func (c *FuzzyCatalog) Query(pattern string) ([]string, error) {
	all, err := c.base.Query("*")
	if err != nil {
		return nil, err
	}
	term := strings.TrimSuffix(pattern, "*")
	if term == "" {
		return all, nil
	}
	var matched []string
	for _, name := range all {
		if fuzzy.MatchFold(term, name) {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

func (c *FuzzyCatalog) Open(name string) (io.ReadCloser, error) {
	return c.base.Open(name)
}
