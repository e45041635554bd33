package http

import (
	"net/http"
	"strings"
	"unicode/utf8"

	cl "music-catalog/pkg/catalog"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	httputils "github.com/twitsprout/tools/http"
)

// maxNameLength matches the VARCHAR(50) name columns.
const maxNameLength = 50

// ListArtists writes every artist as a JSON array.
func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	res, err := h.Catalog.ListArtists(r.Context())
	if err != nil {
		h.writeCatalogError(w, r, "ListArtists", err)
		return
	}

	_ = httputils.WriteJSON(w, r.URL.Query(), res, http.StatusOK)
}

// CreateArtist creates an artist from a {"name": ...} body.
func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	req, err := parseCreateArtistRequest(r)
	if err != nil {
		h.writeBadRequest(w, r, "CreateArtist", err)
		return
	}

	res, err := h.Catalog.CreateArtist(r.Context(), req)
	if err != nil {
		h.writeCatalogError(w, r, "CreateArtist", err)
		return
	}

	_ = httputils.WriteJSON(w, r.URL.Query(), res, http.StatusCreated)
}

// DeleteArtist deletes the artist named by the {id} path segment.
func (h *Handler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.Catalog.DeleteArtist(r.Context(), id)
	if err != nil {
		h.writeCatalogError(w, r, "DeleteArtist", err)
		return
	}

	_ = httputils.WriteJSON(w, r.URL.Query(), cl.DeleteArtistRes{ID: id}, http.StatusOK)
}

func parseCreateArtistRequest(r *http.Request) (cl.CreateArtistRequest, error) {
	var req cl.CreateArtistRequest
	if err := httputils.ReadJSON(r.Body, &req); err != nil {
		return req, err
	}
	if err := validateName(req.Name); err != nil {
		return req, errors.Wrap(err, "[parseCreateArtistRequest]")
	}
	return req, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return cl.ErrMissingName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return cl.ErrNameTooLong
	}
	return nil
}
