package http

import (
	"net/http"

	"music-catalog/internal"
	cl "music-catalog/pkg/catalog"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

type Handler struct {
	AppName string
	Version string
	router  *mux.Router
	Logger  tools.Logger
	Catalog internal.Catalog
}

// writeCatalogError logs err and writes it with the status code matching
// its cause: 404 for missing entities, 409 for uniqueness conflicts, 500
// for anything else.
func (h *Handler) writeCatalogError(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := http.StatusInternalServerError
	msg := "error handling request"
	switch errors.Cause(err) {
	case cl.ErrNotFound:
		code = http.StatusNotFound
		msg = "entity not found"
	case cl.ErrConflict:
		code = http.StatusConflict
		msg = "entity already exists"
	}

	h.Logger.Error("["+op+"] "+msg,
		"request_id", requestid.Get(r.Context()),
		"details", err.Error(),
	)
	_ = httputils.WriteJSONError(w, r.URL.Query(), err.Error(), code)
}

func (h *Handler) writeBadRequest(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.Logger.Error("["+op+"] error parsing request",
		"request_id", requestid.Get(r.Context()),
		"details", err.Error(),
	)
	_ = httputils.WriteJSONError(w, r.URL.Query(), err.Error(), http.StatusBadRequest)
}
