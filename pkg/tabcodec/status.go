package tabcodec

import (
	"errors"
	"net/http"
)

// HTTPStatus maps a codec error to the status a web boundary should return.
// Input problems are client errors; encode and unknown failures are server errors.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrEncodeFailure):
		return http.StatusInternalServerError
	case errors.Is(err, ErrSheetTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrMalformedContainer),
		errors.Is(err, ErrMissingPart),
		errors.Is(err, ErrMalformedXML),
		errors.Is(err, ErrEncoding):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns a fixed, client-safe description of err that never
// includes parser output.
func PublicMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported file format"
	case errors.Is(err, ErrEncodeFailure):
		return "failed to build the spreadsheet"
	case errors.Is(err, ErrSheetTooLarge):
		return "spreadsheet is too large"
	case errors.Is(err, ErrMalformedContainer):
		return "file is not a valid spreadsheet archive"
	case errors.Is(err, ErrMissingPart):
		return "spreadsheet is missing its sheet data"
	case errors.Is(err, ErrMalformedXML):
		return "spreadsheet contents are corrupted"
	case errors.Is(err, ErrEncoding):
		return "file is not valid UTF-8"
	default:
		return "internal error"
	}
}
