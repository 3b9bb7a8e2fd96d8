package browser

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ThumbnailState is the render progress of one record.
type ThumbnailState int32

const (
	Unrendered ThumbnailState = iota
	Rendering
	Ready
)

func (s ThumbnailState) String() string {
	switch s {
	case Rendering:
		return "rendering"
	case Ready:
		return "ready"
	default:
		return "unrendered"
	}
}

type thumbnail struct {
	img image.Image
}

// Record is one catalog entry. Its thumbnail is written once by the
// background pass; everything else is fixed at load time.
type Record struct {
	Name string

	state atomic.Int32
	thumb atomic.Pointer[thumbnail]
}

// Label is the display text of the record.
func (r *Record) Label() string {
	return r.Name
}

func (r *Record) State() ThumbnailState {
	return ThumbnailState(r.state.Load())
}

// Thumbnail returns the rendered image, or nil until the record is Ready.
func (r *Record) Thumbnail() image.Image {
	if r.State() != Ready {
		return nil
	}
	if t := r.thumb.Load(); t != nil {
		return t.img
	}
	return nil
}

// IconCache owns the unfiltered catalog and renders each record's
// thumbnail once on a background goroutine.
type IconCache struct {
	catalog    Catalog
	renderer   Renderer
	extensions []string
	log        zerolog.Logger

	records []*Record
	byName  map[string]*Record

	subLock sync.Mutex
	subs    []func(name string)

	started   atomic.Bool
	startOnce sync.Once
	done      chan struct{}
}

func NewIconCache(catalog Catalog, renderer Renderer, extensions []string, log zerolog.Logger) *IconCache {
	return &IconCache{
		catalog:    catalog,
		renderer:   renderer,
		extensions: extensions,
		log:        log,
		byName:     make(map[string]*Record),
		done:       make(chan struct{}),
	}
}

// Load queries the catalog and builds one Unrendered record per supported
// name, in query order. An empty pattern means "*".
func (c *IconCache) Load(pattern string) ([]*Record, error) {
	if c.started.Load() {
		return nil, ErrAlreadyStarted
	}
	if c.catalog == nil {
		return nil, ErrNoCatalog
	}
	if pattern == "" {
		pattern = "*"
	}

	names, err := c.catalog.Query(pattern)
	if err != nil {
		return nil, fmt.Errorf("load catalog %q: %w", pattern, err)
	}
	names = supportedNames(names, c.extensions)

	c.records = make([]*Record, 0, len(names))
	c.byName = make(map[string]*Record, len(names))
	for _, name := range names {
		if _, dup := c.byName[name]; dup {
			continue
		}
		rec := &Record{Name: name}
		c.records = append(c.records, rec)
		c.byName[name] = rec
	}

	c.log.Debug().Int("records", len(c.records)).Str("pattern", pattern).Msg("catalog loaded")
	return c.records, nil
}

// Records returns the catalog in load order.
func (c *IconCache) Records() []*Record {
	return c.records
}

// Names returns the record names in load order.
func (c *IconCache) Names() []string {
	names := make([]string, len(c.records))
	for i, rec := range c.records {
		names[i] = rec.Name
	}
	return names
}

func (c *IconCache) Record(name string) (*Record, bool) {
	rec, ok := c.byName[name]
	return rec, ok
}

// Subscribe registers fn to be told when a record becomes Ready.
// fn runs on the render goroutine.
func (c *IconCache) Subscribe(fn func(name string)) {
	if fn == nil {
		return
	}
	c.subLock.Lock()
	c.subs = append(c.subs, fn)
	c.subLock.Unlock()
}

// Start schedules the render pass after delay. Only the first call counts.
func (c *IconCache) Start(delay time.Duration) {
	c.startOnce.Do(func() {
		c.started.Store(true)
		records := c.records
		time.AfterFunc(delay, func() {
			c.run(records)
		})
	})
}

// Wait blocks until the render pass is over. It returns at once if the
// pass was never started.
func (c *IconCache) Wait() {
	if !c.started.Load() {
		return
	}
	<-c.done
}

func (c *IconCache) run(records []*Record) {
	defer close(c.done)

	start := time.Now()
	failed := 0
	for _, rec := range records {
		rec.state.Store(int32(Rendering))

		img, err := c.render(rec.Name)
		if err != nil || img == nil {
			failed++
			rec.state.Store(int32(Unrendered))
			c.log.Debug().Err(err).Str("name", rec.Name).Msg("thumbnail render failed")
			continue
		}

		rec.thumb.Store(&thumbnail{img: img})
		rec.state.Store(int32(Ready))
		c.notify(rec.Name)
	}

	c.log.Debug().
		Int("records", len(records)).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("thumbnail pass finished")
}

func (c *IconCache) render(name string) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render %s: panic: %v", name, r)
		}
	}()
	return c.renderer.Render(name)
}

func (c *IconCache) notify(name string) {
	c.subLock.Lock()
	subs := make([]func(string), len(c.subs))
	copy(subs, c.subs)
	c.subLock.Unlock()

	for _, fn := range subs {
		fn(name)
	}
}
