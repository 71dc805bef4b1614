package parser

import (
	"errors"
	"fmt"
)

// ErrMalformedContainer indicates the input is not a readable zip archive.
var ErrMalformedContainer = errors.New("malformed container")

// ErrMissingPart indicates a required member is absent from the archive.
var ErrMissingPart = errors.New("missing part")

// ErrMalformedXML indicates an XML member failed to parse.
var ErrMalformedXML = errors.New("malformed xml")

// ErrEncoding indicates text that must be UTF-8 is not.
var ErrEncoding = errors.New("invalid utf-8")

// ErrSheetTooLarge indicates a sheet would decode to more cells than allowed.
var ErrSheetTooLarge = errors.New("sheet too large")

// PartError ties a failure to the archive member it came from.
type PartError struct {
	Part string
	Err  error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("%s: %v", e.Part, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}

func missingPart(part string) error {
	return &PartError{Part: part, Err: ErrMissingPart}
}
