package web

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-sheetkit/paths"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := w / 2; x < w; x++ {
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, color.RGBA{0xFF, 0, 0, 0xFF})
		}
	}
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string][]byte{
		"/www/icon.png":                 []byte("icon 1x"),
		"/www/icon@2x.png":              []byte("icon 2x"),
		"/www/Resources/README":         []byte("readme"),
		"/www/sprites/hero.yaml":        []byte("image: hero.png\ncolumns: 2\nrows: 1\nduration: 100ms\nloop: 2\ntags:\n  - {name: past, from: 1, to: 5}\n"),
		"/www/sprites/hero.png":         pngBytes(t, 8, 4),
		"/www/sprites/hero@2x.png":      pngBytes(t, 16, 8),
		"/www/sprites/ghost.json":       []byte(`{"frames": [{"frame": {"x":0,"y":0,"w":2,"h":2}}], "meta": {"image": "missing.png"}}`),
		"/www/Resources/sprites/x.json": []byte(`{"frames": `),
		"/www/sprites/bad.yaml":         []byte("columns: 1\nrows: 1\n"),
		"/www/sprites/bad.png":          []byte("not a png"),
	}
	for name, data := range files {
		require.NoError(t, afero.WriteFile(fs, name, data, 0644))
	}

	r := mux.NewRouter()
	NewHandler("/www", &paths.Resolver{Fs: fs, Display: paths.FixedDisplay(1)}).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestResHandler(t *testing.T) {
	srv := testServer(t)

	resp, body := get(t, srv, "/res/icon.png")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "icon 1x", string(body))
	assert.Equal(t, "1", resp.Header.Get("X-Resource-Scale"))

	resp, body = get(t, srv, "/res/icon.png?scale=2")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "icon 2x", string(body))
	assert.Equal(t, "2", resp.Header.Get("X-Resource-Scale"))

	resp, body = get(t, srv, "/res/icon.png?scale=3")
	assert.Equal(t, "icon 2x", string(body), "3x display falls back to 2x")

	resp, body = get(t, srv, "/res/README")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "readme", string(body))

	resp, _ = get(t, srv, "/res/missing.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, srv, "/res/icon.png?scale=zero")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFrameHandlers(t *testing.T) {
	srv := testServer(t)

	resp, body := get(t, srv, "/sheet/sprites/hero/frame/1.png?scale=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	r, _, _, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	assert.Equal(t, uint32(0xFFFF), r, "frame 1 is the red half")

	resp, body = get(t, srv, "/sheet/sprites/hero/frame/0.url")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	du, err := dataurl.DecodeString(string(body))
	require.NoError(t, err)
	assert.Equal(t, "image/png", du.MediaType.ContentType())

	resp, body = get(t, srv, "/sheet/sprites/hero/rect/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"x": 0.5, "y": 0, "w": 0.5, "h": 1}`, string(body))

	resp, _ = get(t, srv, "/sheet/sprites/hero/frame/2.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = get(t, srv, "/sheet/sprites/nobody/frame/0.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = get(t, srv, "/sheet/sprites/ghost/frame/0.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = get(t, srv, "/sheet/sprites/x/frame/0.png")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// Tag ranges past the grid and undecodable images are reported as
	// unprocessable rather than as server failures.
	resp, _ = get(t, srv, "/sheet/sprites/hero/frame/0.png?tag=past")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp, _ = get(t, srv, "/sheet/sprites/bad/frame/0.png")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestInfoHandler(t *testing.T) {
	srv := testServer(t)
	resp, body := get(t, srv, "/sheet/sprites/hero/info?scale=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{
		"width": 16, "height": 8, "loop_count": 2,
		"frames": [
			{"rect": [0, 0, 8, 8], "contents": {"x": 0, "y": 0, "w": 0.5, "h": 1}, "duration_ms": 100},
			{"rect": [8, 0, 8, 8], "contents": {"x": 0.5, "y": 0, "w": 0.5, "h": 1}, "duration_ms": 100}
		]
	}`, string(body))
}

func TestGIFHandler(t *testing.T) {
	srv := testServer(t)
	for _, q := range []string{"", "?quantizer=mediancut"} {
		resp, body := get(t, srv, "/sheet/sprites/hero.gif"+q)
		require.Equal(t, http.StatusOK, resp.StatusCode, q)
		assert.Equal(t, "image/gif", resp.Header.Get("Content-Type"))
		g, err := gif.DecodeAll(bytes.NewReader(body))
		require.NoError(t, err)
		assert.Len(t, g.Image, 2)
		assert.Equal(t, 1, g.LoopCount)
	}
}

func TestSplitResource(t *testing.T) {
	for in, want := range map[string][2]string{
		"icon.png":         {"", "icon.png"},
		"sprites/hero.png": {"sprites", "hero.png"},
		"a/b/c":            {"a/b", "c"},
		"a..b.png":         {"", "a..b.png"},
		"x/..hidden":       {"x", "..hidden"},
	} {
		sub, base, err := splitResource(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, [2]string{sub, base}, in)
	}
	for _, in := range []string{"../etc/passwd", "a/../../b", "a/../b", "..", "a//b", "a/./b"} {
		_, _, err := splitResource(in)
		assert.Error(t, err, in)
	}
}
