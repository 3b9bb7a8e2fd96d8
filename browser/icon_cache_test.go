package browser

import (
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngOnly = []string{".png"}

func TestIconCache_LoadSkipsUnsupported(t *testing.T) {
	cat := pngCatalog(t, "add.png", "help.txt", "remove.png")
	cache := NewIconCache(cat, NewImageRenderer(cat, 32), pngOnly, zerolog.Nop())

	records, err := cache.Load("")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"add.png", "remove.png"}, cache.Names())

	for _, rec := range records {
		assert.Equal(t, Unrendered, rec.State())
		assert.Nil(t, rec.Thumbnail())
		assert.Equal(t, rec.Name, rec.Label())
	}
	_, ok := cache.Record("help.txt")
	assert.False(t, ok)
}

func TestIconCache_LoadErrors(t *testing.T) {
	_, err := NewIconCache(nil, nil, pngOnly, zerolog.Nop()).Load("*")
	assert.ErrorIs(t, err, ErrNoCatalog)

	_, err = NewIconCache(brokenCatalog{}, nil, pngOnly, zerolog.Nop()).Load("*")
	assert.ErrorIs(t, err, errQuery)
}

func TestIconCache_RendersEveryRecordAndNotifies(t *testing.T) {
	cat := pngCatalog(t, "add.png", "help.txt", "remove.png")
	cache := NewIconCache(cat, NewImageRenderer(cat, 32), pngOnly, zerolog.Nop())
	_, err := cache.Load("*")
	require.NoError(t, err)

	var mu sync.Mutex
	var ready []string
	cache.Subscribe(func(name string) {
		mu.Lock()
		ready = append(ready, name)
		mu.Unlock()
	})

	cache.Start(0)
	cache.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"add.png", "remove.png"}, ready)
	for _, rec := range cache.Records() {
		assert.Equal(t, Ready, rec.State(), rec.Name)
		require.NotNil(t, rec.Thumbnail(), rec.Name)
		b := rec.Thumbnail().Bounds()
		assert.Equal(t, 32, b.Dx())
		assert.Equal(t, 16, b.Dy())
	}
}

func TestIconCache_FailedRenderStaysUnrendered(t *testing.T) {
	cat := pngCatalog(t, "add.png", "bad.png", "crash.png", "remove.png")
	good := image.NewRGBA(image.Rect(0, 0, 8, 8))
	renderer := funcRenderer(func(name string) (image.Image, error) {
		switch name {
		case "bad.png":
			return nil, errors.New("boom")
		case "crash.png":
			panic("decoder exploded")
		}
		return good, nil
	})
	cache := NewIconCache(cat, renderer, pngOnly, zerolog.Nop())
	_, err := cache.Load("*")
	require.NoError(t, err)

	notified := 0
	cache.Subscribe(func(string) { notified++ })
	cache.Start(0)
	cache.Wait()

	states := map[string]ThumbnailState{}
	for _, rec := range cache.Records() {
		states[rec.Name] = rec.State()
	}
	assert.Equal(t, map[string]ThumbnailState{
		"add.png":    Ready,
		"bad.png":    Unrendered,
		"crash.png":  Unrendered,
		"remove.png": Ready,
	}, states)
	assert.Equal(t, 2, notified)
}

func TestIconCache_StartOnce(t *testing.T) {
	cat := pngCatalog(t, "add.png")
	var mu sync.Mutex
	calls := 0
	renderer := funcRenderer(func(string) (image.Image, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	})
	cache := NewIconCache(cat, renderer, pngOnly, zerolog.Nop())
	_, err := cache.Load("*")
	require.NoError(t, err)

	cache.Start(0)
	cache.Start(0)
	cache.Wait()

	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()

	_, err = cache.Load("*")
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestIconCache_WaitWithoutStart(t *testing.T) {
	cache := NewIconCache(pngCatalog(t), nil, pngOnly, zerolog.Nop())
	cache.Wait()
}
