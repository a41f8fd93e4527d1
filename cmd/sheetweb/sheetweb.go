// Command sheetweb serves scaled resources and sprite sheets from a bundle
// directory over HTTP.
//
//	GET /res/{file}                        best scaled variant of file
//	GET /sheet/{name}.gif                  the sheet as an animated gif
//	GET /sheet/{name}/info                 frame layout as json
//	GET /sheet/{name}/frame/{idx}.png      a single frame
//	GET /sheet/{name}/frame/{idx}.url      a single frame as a data url
//	GET /sheet/{name}/rect/{idx}           contents rect of a frame as json
//
// All endpoints take ?scale=N to override the display scale; sheet endpoints
// also take ?tag=name.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "golang.org/x/net/trace"

	"badc0de.net/pkg/go-sheetkit/paths"
	"badc0de.net/pkg/go-sheetkit/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for sheetweb")
	bundlePath    = flag.String("bundle_path", "", "bundle directory to serve; defaults to the directory of the executable")
	accessLog     = flag.Bool("access_log", true, "whether to log requests to stderr")
	banner        = flag.Bool("banner", true, "whether to print the startup banner")
)

func main() {
	paths.SetupDisplayScaleFlag("display_scale")
	flagutil.Parse()

	root := *bundlePath
	if root == "" {
		b, err := paths.ExecutableBundle()
		if err != nil {
			glog.Exitf("sheetweb: %v", err)
		}
		root = b.Path
	}

	if *banner {
		figure.NewFigure("sheetweb", "", true).Print()
		fmt.Println()
	}
	glog.Infof("sheetweb: serving bundle %q on %s, preferred scales %v", root, *listenAddress, paths.PreferredScales())

	r := mux.NewRouter()
	web.NewHandler(root, nil).RegisterRoutes(r)
	// golang.org/x/net/trace registers /debug/requests and /debug/events.
	r.PathPrefix("/debug/").Handler(http.DefaultServeMux)

	var h http.Handler = r
	if *accessLog {
		h = handlers.LoggingHandler(os.Stderr, r)
	}
	glog.Fatal(http.ListenAndServe(*listenAddress, h))
}
