package catalog

import "errors"

var ErrNotFound = errors.New("not found")
var ErrConflict = errors.New("already exists")

var ErrInvalidDate = errors.New("invalid date. Format should be yyyy-mm-dd")
var ErrInvalidPrice = errors.New("price must be a non-negative number")
var ErrPriceOutOfRange = errors.New("price must be below 10000000000 with at most 2 decimal places")
var ErrMissingName = errors.New("name must be provided in request body")
var ErrMissingArtistName = errors.New("artist_name must be provided in request body")
var ErrNameTooLong = errors.New("name must be at most 50 characters")
