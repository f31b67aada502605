package domain

import "errors"

var (
	// ErrImageNotFound signals a missing image record.
	ErrImageNotFound = errors.New("image not found")
	// ErrInvalidImage signals an image record that fails validation.
	ErrInvalidImage = errors.New("invalid image record")
	// ErrInvalidQuery signals a search request with neither query text nor filters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidPagination signals out-of-range page parameters.
	ErrInvalidPagination = errors.New("invalid pagination")
	// ErrRankerUnavailable signals that the external ranker could not serve this
	// request. Consumed by the search service; never surfaces to the caller.
	ErrRankerUnavailable = errors.New("ranker unavailable")
	// ErrRankerResponse signals an unparseable ranker response body.
	ErrRankerResponse = errors.New("unparseable ranker response")
	// ErrStoreUnavailable signals a metadata store failure.
	ErrStoreUnavailable = errors.New("metadata store unavailable")
)
