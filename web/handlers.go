// Package web serves scaled resources and sprite sheet frames over HTTP.
package web

import (
	"bytes"
	"fmt"
	"image/gif"
	"image/png"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-sheetkit/manifest"
	"badc0de.net/pkg/go-sheetkit/paths"
	"badc0de.net/pkg/go-sheetkit/sheet"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// manifestExts lists the manifest extensions tried for a sheet name, in order.
var manifestExts = []string{"json", "yaml", "yml"}

// Handler serves the resources of a single bundle.
//
// Every request resolves paths again, so files may change while the server
// runs. Clients pick the scale they want with ?scale=N; without it the
// resolver's display decides.
type Handler struct {
	bundle   *paths.Bundle
	resolver *paths.Resolver
}

// NewHandler constructs a web handler serving resources under root, probing
// the filesystem through r (paths.Default if nil).
func NewHandler(root string, r *paths.Resolver) *Handler {
	if r == nil {
		r = paths.Default
	}
	return &Handler{
		bundle:   &paths.Bundle{Path: root, Resolver: r},
		resolver: r,
	}
}

// forRequest returns a bundle whose resolver honours the request's ?scale=.
func (h *Handler) forRequest(r *http.Request) (*paths.Bundle, *paths.Resolver, error) {
	res := h.resolver
	if s := r.URL.Query().Get("scale"); s != "" {
		scale, err := strconv.Atoi(s)
		if err != nil || scale < 1 || scale > 16 {
			return nil, nil, errors.Errorf("bad scale %q", s)
		}
		rc := *h.resolver
		rc.Display = paths.FixedDisplay(scale)
		res = &rc
	}
	return &paths.Bundle{Path: h.bundle.Path, Resolver: res}, res, nil
}

// splitResource turns "sprites/hero.png" into its directory and base name,
// rejecting attempts to leave the bundle.
func splitResource(file string) (subpath, base string, err error) {
	clean := path.Clean("/" + file)
	if clean != "/"+file {
		return "", "", errors.Errorf("bad resource path %q", file)
	}
	subpath, base = path.Split(strings.TrimPrefix(clean, "/"))
	return strings.TrimSuffix(subpath, "/"), base, nil
}

func (h *Handler) resHandler(w http.ResponseWriter, r *http.Request) {
	b, res, err := h.forRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	subpath, base, err := splitResource(mux.Vars(r)["file"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ext := path.Ext(base)
	name := strings.TrimSuffix(base, ext)

	p, ok := b.PathForScaledResourceInDirectory(name, ext, subpath)
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, err := res.FileSystem().Open(p)
	if err != nil {
		glog.Errorf("web: opening resolved resource %q: %v", p, err)
		http.Error(w, "failed to open resource", http.StatusInternalServerError)
		return
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil || st.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("X-Resource-Scale", strconv.Itoa(paths.ScaleOf(p)))
	w.Header().Set("ETag", fmt.Sprintf(`W/"res:%s:%d:%d"`, filepath.Base(p), st.Size(), st.ModTime().UnixNano()))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeContent(w, r, filepath.Base(p), st.ModTime(), f)
}

// loadSheet finds the manifest for the sheet named in the request, and loads it.
func (h *Handler) loadSheet(w http.ResponseWriter, r *http.Request) (*sheet.Sheet, bool) {
	b, res, err := h.forRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	subpath, name, err := splitResource(mux.Vars(r)["name"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	var manifestPath string
	for _, ext := range manifestExts {
		if p, ok := b.PathForScaledResourceInDirectory(name, ext, subpath); ok {
			manifestPath = p
			break
		}
	}
	if manifestPath == "" {
		http.NotFound(w, r)
		return nil, false
	}

	l := &manifest.Loader{Resolver: res}
	s, err := l.Load(manifestPath, r.URL.Query().Get("tag"))
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return s, true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch errors.Cause(err) {
	case paths.ErrNotFound, sheet.ErrIndexOutOfBounds, manifest.ErrNoSuchTag:
		http.Error(w, err.Error(), http.StatusNotFound)
	case sheet.ErrInvalidArgument:
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		glog.Errorf("web: %s: %v", r.URL.Path, err)
		http.Error(w, "failed to load sheet", http.StatusInternalServerError)
	}
}

func frameIndex(r *http.Request) int {
	// The route only matches digits.
	idx, _ := strconv.Atoi(mux.Vars(r)["idx"])
	return idx
}

func (h *Handler) frameHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	img, err := s.Frame(frameIndex(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, img); err != nil {
		glog.Errorf("web: encoding frame png: %v", err)
	}
}

func (h *Handler) frameURLHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	img, err := s.Frame(frameIndex(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	dataurl.New(buf.Bytes(), "image/png").WriteTo(w)
}

type rectJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type frameJSON struct {
	Rect       [4]int   `json:"rect"` // x, y, w, h in pixels
	Contents   rectJSON `json:"contents"`
	DurationMS float64  `json:"duration_ms"`
}

type sheetJSON struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	LoopCount int         `json:"loop_count"`
	Frames    []frameJSON `json:"frames"`
}

func toRectJSON(r sheet.Rect) rectJSON {
	return rectJSON{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		glog.Errorf("web: encoding json: %v", err)
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (h *Handler) rectHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	cr, err := s.ContentsRect(frameIndex(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, toRectJSON(cr))
}

func (h *Handler) infoHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	out := sheetJSON{
		Width:     s.Bounds().Dx(),
		Height:    s.Bounds().Dy(),
		LoopCount: s.LoopCount(),
	}
	for i, f := range s.Frames() {
		rr := f.Rect.Sub(s.Bounds().Min)
		out.Frames = append(out.Frames, frameJSON{
			Rect:       [4]int{rr.Min.X, rr.Min.Y, rr.Dx(), rr.Dy()},
			Contents:   toRectJSON(s.MustContentsRect(i)),
			DurationMS: float64(f.Duration.Microseconds()) / 1000,
		})
	}
	writeJSON(w, out)
}

func (h *Handler) gifHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSheet(w, r)
	if !ok {
		return
	}
	o := &sheet.GIFOptions{}
	if r.URL.Query().Get("quantizer") == "mediancut" {
		o.Quantizer = sheet.MedianCutQuantizer{}
	}
	g, err := sheet.ToGIF(s, o)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(http.StatusOK)
	if err := gif.EncodeAll(w, g); err != nil {
		glog.Errorf("web: encoding gif: %v", err)
	}
}

// RegisterRoutes adds the handler's routes to r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/res/{file:.+}", h.resHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/sheet/{name:.+}/frame/{idx:[0-9]+}.png", h.frameHandler).Methods(http.MethodGet)
	r.HandleFunc("/sheet/{name:.+}/frame/{idx:[0-9]+}.url", h.frameURLHandler).Methods(http.MethodGet)
	r.HandleFunc("/sheet/{name:.+}/rect/{idx:[0-9]+}", h.rectHandler).Methods(http.MethodGet)
	r.HandleFunc("/sheet/{name:.+}/info", h.infoHandler).Methods(http.MethodGet)
	r.HandleFunc("/sheet/{name:.+}.gif", h.gifHandler).Methods(http.MethodGet)
}
