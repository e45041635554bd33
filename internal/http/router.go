package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
)

// Handler mounts all the handlers at the appropriate routes and adds any required middleware.
func (h *Handler) Handler() http.Handler {
	// Artist names may contain "/", sent as %2F in /albums/{artist_name}.
	r := mux.NewRouter().UseEncodedPath()

	r.Use(httputils.TimeoutMiddleware(1 * time.Minute))
	r.Use(httputils.RequestIDMiddleware)
	r.Use(httputils.RealIPMiddleware)
	r.Use(httputils.LimitReaderMiddleware(1 << 20))
	r.Use(httputils.LoggingMiddleware(h.Logger))
	r.Use(httputils.RecoverMiddleware(h.Logger, httputils.InternalServerErrorHandler(h.Logger)))
	r.Use(httputils.MaxConnectionsMiddleware(5000, httputils.ServiceUnavailableHandler(h.Logger)))
	r.Use(httputils.ConcurrentLimitMiddleware(250, httputils.ServiceUnavailableHandler(h.Logger)))

	r.MethodNotAllowedHandler = httputils.MethodNotAllowedHandler(h.Logger)
	r.NotFoundHandler = httputils.NotFoundHandler(h.Logger)

	versionHandler := httputils.VersionHandler(h.AppName, h.Version, h.Logger)
	r.Methods("GET").Path("/").Name("root").Handler(versionHandler)
	r.Methods("GET").Path("/version").Name("version").Handler(versionHandler)

	route(r, "GET", "/artists/", "list_artists", h.ListArtists)
	route(r, "POST", "/artists/", "create_artist", h.CreateArtist)
	route(r, "DELETE", "/artists/{id}", "delete_artist", h.DeleteArtist)
	route(r, "POST", "/albums/", "create_album", h.CreateAlbum)
	route(r, "GET", "/albums/{artist_name}", "list_albums", h.ListAlbums)

	h.router = r
	return r
}

// route registers fn for path both with and without its trailing slash.
func route(r *mux.Router, method, path, name string, fn http.HandlerFunc) {
	r.Methods(method).Path(path).Name(name).HandlerFunc(fn)
	if alt := strings.TrimSuffix(path, "/"); alt != path {
		r.Methods(method).Path(alt).HandlerFunc(fn)
	} else {
		r.Methods(method).Path(path + "/").HandlerFunc(fn)
	}
}
