package http

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	cl "music-catalog/pkg/catalog"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	httputils "github.com/twitsprout/tools/http"
	"gopkg.in/guregu/null.v3"
)

// CreateAlbum creates an album for the artist named in the body.
func (h *Handler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	req, err := parseCreateAlbumRequest(r)
	if err != nil {
		h.writeBadRequest(w, r, "CreateAlbum", err)
		return
	}

	res, err := h.Catalog.CreateAlbum(r.Context(), req)
	if err != nil {
		h.writeCatalogError(w, r, "CreateAlbum", err)
		return
	}

	_ = httputils.WriteJSON(w, r.URL.Query(), res, http.StatusCreated)
}

// ListAlbums writes the albums of the {artist_name} artist that satisfy the
// optional min_price, max_price, min_date and max_date query bounds.
func (h *Handler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	artistName, f, err := parseListAlbumsRequest(r)
	if err != nil {
		h.writeBadRequest(w, r, "ListAlbums", err)
		return
	}

	res, err := h.Catalog.ListAlbumsForArtist(r.Context(), artistName, f)
	if err != nil {
		h.writeCatalogError(w, r, "ListAlbums", err)
		return
	}

	_ = httputils.WriteJSON(w, r.URL.Query(), res, http.StatusOK)
}

type createAlbumBody struct {
	Name        string      `json:"name"`
	ReleaseDate null.String `json:"release_date"`
	Price       null.Float  `json:"price"`
	ArtistName  string      `json:"artist_name"`
}

func parseCreateAlbumRequest(r *http.Request) (cl.CreateAlbumRequest, error) {
	var req cl.CreateAlbumRequest
	var body createAlbumBody
	if err := httputils.ReadJSON(r.Body, &body); err != nil {
		return req, err
	}

	if err := validateName(body.Name); err != nil {
		return req, errors.Wrap(err, "[parseCreateAlbumRequest]")
	}
	if body.ArtistName == "" {
		return req, errors.Wrap(cl.ErrMissingArtistName, "[parseCreateAlbumRequest]")
	}
	if !body.ReleaseDate.Valid {
		return req, errors.Wrap(cl.ErrInvalidDate, "[parseCreateAlbumRequest] release_date")
	}
	date, err := cl.ParseDate(body.ReleaseDate.String)
	if err != nil {
		return req, errors.Wrap(err, "[parseCreateAlbumRequest] release_date")
	}
	if !body.Price.Valid || body.Price.Float64 < 0 {
		return req, errors.Wrap(cl.ErrInvalidPrice, "[parseCreateAlbumRequest]")
	}
	if err := validatePrice(body.Price.Float64); err != nil {
		return req, errors.Wrap(err, "[parseCreateAlbumRequest]")
	}

	req = cl.CreateAlbumRequest{
		Name:        body.Name,
		ReleaseDate: date,
		Price:       body.Price.Float64,
		ArtistName:  body.ArtistName,
	}
	return req, nil
}

func parseListAlbumsRequest(r *http.Request) (string, cl.AlbumFilter, error) {
	var f cl.AlbumFilter
	v := r.URL.Query()

	// The router matches on the escaped path, so the segment is still encoded.
	artistName, err := url.PathUnescape(mux.Vars(r)["artist_name"])
	if err != nil {
		return "", f, errors.Wrap(err, "[parseListAlbumsRequest] artist_name")
	}
	if artistName == "" {
		return "", f, errors.Wrap(cl.ErrMissingArtistName, "[parseListAlbumsRequest]")
	}

	if f.MinPrice, err = parsePriceBound(v.Get("min_price")); err != nil {
		return "", f, errors.Wrap(err, "[parseListAlbumsRequest] min_price")
	}
	if f.MaxPrice, err = parsePriceBound(v.Get("max_price")); err != nil {
		return "", f, errors.Wrap(err, "[parseListAlbumsRequest] max_price")
	}
	if f.MinDate, err = parseDateBound(v.Get("min_date")); err != nil {
		return "", f, errors.Wrap(err, "[parseListAlbumsRequest] min_date")
	}
	if f.MaxDate, err = parseDateBound(v.Get("max_date")); err != nil {
		return "", f, errors.Wrap(err, "[parseListAlbumsRequest] max_date")
	}
	return artistName, f, nil
}

// parsePriceBound returns an unset bound for an empty parameter.
func parsePriceBound(s string) (null.Float, error) {
	if s == "" {
		return null.Float{}, nil
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return null.Float{}, cl.ErrInvalidPrice
	}
	return null.FloatFrom(p), nil
}

// maxPrice is the first value a NUMERIC(12,2) price column cannot hold.
const maxPrice = 1e10

// validatePrice rejects prices the albums.price column would overflow on or
// silently round.
func validatePrice(p float64) error {
	if p >= maxPrice {
		return cl.ErrPriceOutOfRange
	}
	if math.Round(p*100)/100 != p {
		return cl.ErrPriceOutOfRange
	}
	return nil
}

func parseDateBound(s string) (null.Time, error) {
	if s == "" {
		return null.Time{}, nil
	}
	d, err := cl.ParseDate(s)
	if err != nil {
		return null.Time{}, err
	}
	return null.TimeFrom(d.Time), nil
}
