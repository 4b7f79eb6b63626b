// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assets_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/taibuivan/hrdesk/internal/platform/assets"
)

// # Fixtures

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{G: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeBMP(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))
	return buf.Bytes()
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

// assetServer serves fixed bodies per path and counts requests.
func assetServer(t *testing.T, files map[string][]byte) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func fontConfig(base string) assets.Config {
	return assets.Config{
		RegularFontURL: base + "/regular.ttf",
		BoldFontURL:    base + "/bold.ttf",
		Timeout:        5 * time.Second,
	}
}

var fontFiles = map[string][]byte{
	"/regular.ttf": []byte("regular-font"),
	"/bold.ttf":    []byte("bold-font"),
}

// # Tests

/*
TestLoader_Load fetches both weights and a PNG logo.
*/
func TestLoader_Load(t *testing.T) {
	logo := encodePNG(t, 40, 20)
	files := map[string][]byte{"/logo.png": logo}
	for k, v := range fontFiles {
		files[k] = v
	}
	srv, _ := assetServer(t, files)

	bundle, err := assets.NewLoader(fontConfig(srv.URL)).Load(context.Background(), srv.URL+"/logo.png")
	require.NoError(t, err)

	assert.Equal(t, []byte("regular-font"), bundle.Fonts.Regular)
	assert.Equal(t, []byte("bold-font"), bundle.Fonts.Bold)
	assert.Equal(t, logo, bundle.Logo)
}

/*
TestLoader_Load_FontFailure verifies that a missing font is fatal.
*/
func TestLoader_Load_FontFailure(t *testing.T) {
	srv, _ := assetServer(t, map[string][]byte{"/regular.ttf": []byte("regular-font")})

	_, err := assets.NewLoader(fontConfig(srv.URL)).Load(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bold font")
}

/*
TestLoader_Load_LogoDegrades verifies that logo problems never fail the load.
*/
func TestLoader_Load_LogoDegrades(t *testing.T) {
	srv, _ := assetServer(t, fontFiles)
	loader := assets.NewLoader(fontConfig(srv.URL))

	tests := []struct {
		name string
		url  string
	}{
		{"NoURL", ""},
		{"NotFound", srv.URL + "/missing.png"},
		{"Unreachable", "http://127.0.0.1:1/logo.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle, err := loader.Load(context.Background(), tt.url)
			require.NoError(t, err)
			assert.Nil(t, bundle.Logo)
			assert.NotEmpty(t, bundle.Fonts.Regular)
		})
	}
}

/*
TestLoader_Logo_Normalises transcodes BMP to PNG and downscales wide images.
*/
func TestLoader_Logo_Normalises(t *testing.T) {
	srv, _ := assetServer(t, map[string][]byte{
		"/logo.bmp":  encodeBMP(t, 30, 10),
		"/wide.png":  encodePNG(t, 1200, 300),
		"/plain.txt": []byte("not an image"),
	})
	loader := assets.NewLoader(fontConfig(srv.URL))

	bmpLogo := loader.Logo(context.Background(), srv.URL+"/logo.bmp")
	cfg, format, err := image.DecodeConfig(bytes.NewReader(bmpLogo))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 30, cfg.Width)

	wide := loader.Logo(context.Background(), srv.URL+"/wide.png")
	cfg, _, err = image.DecodeConfig(bytes.NewReader(wide))
	require.NoError(t, err)
	assert.Equal(t, 480, cfg.Width)
	assert.Equal(t, 120, cfg.Height)

	// undecodable bytes are passed through for the embed step to reject
	assert.Equal(t, []byte("not an image"), loader.Logo(context.Background(), srv.URL+"/plain.txt"))
}

/*
TestLoader_Cache verifies that repeated loads are served from the cache.
*/
func TestLoader_Cache(t *testing.T) {
	srv, hits := assetServer(t, fontFiles)
	loader := assets.NewLoader(fontConfig(srv.URL), assets.WithCache(newMemCache()))

	for i := 0; i < 3; i++ {
		_, err := loader.Load(context.Background(), "")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
}

/*
TestLoader_MaxBytes rejects oversized bodies.
*/
func TestLoader_MaxBytes(t *testing.T) {
	srv, _ := assetServer(t, fontFiles)
	cfg := fontConfig(srv.URL)
	cfg.MaxBytes = 4

	_, err := assets.NewLoader(cfg).Load(context.Background(), "")
	assert.Error(t, err)
}

/*
TestLoader_FileURL reads fonts from the local filesystem.
*/
func TestLoader_FileURL(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "regular.ttf")
	bold := filepath.Join(dir, "bold.ttf")
	require.NoError(t, os.WriteFile(regular, []byte("r"), 0o600))
	require.NoError(t, os.WriteFile(bold, []byte("b"), 0o600))

	loader := assets.NewLoader(assets.Config{
		RegularFontURL: "file://" + filepath.ToSlash(regular),
		BoldFontURL:    "file://" + filepath.ToSlash(bold),
	})

	bundle, err := loader.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []byte("r"), bundle.Fonts.Regular)
	assert.Equal(t, []byte("b"), bundle.Fonts.Bold)
}
