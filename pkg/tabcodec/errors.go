package tabcodec

import (
	"errors"
	"fmt"

	"github.com/ukaji3/tabcodec-go/pkg/tabcodec/parser"
)

// ErrMalformedContainer indicates the input is not a valid zip archive.
var ErrMalformedContainer = parser.ErrMalformedContainer

// ErrMissingPart indicates a required worksheet or content member is absent.
var ErrMissingPart = parser.ErrMissingPart

// ErrMalformedXML indicates a member failed to parse as XML.
var ErrMalformedXML = parser.ErrMalformedXML

// ErrEncoding indicates input that must be UTF-8 is not.
var ErrEncoding = parser.ErrEncoding

// ErrSheetTooLarge indicates a sheet exceeds the decode cell budget.
var ErrSheetTooLarge = parser.ErrSheetTooLarge

// ErrUnsupportedFormat indicates an unrecognized format or file extension.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ErrEncodeFailure indicates a writer failed to produce output.
var ErrEncodeFailure = errors.New("encode failure")

// DecodeError represents a failure while decoding a given format.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError represents a failure while encoding into a given format.
// It matches ErrEncodeFailure under errors.Is.
type EncodeError struct {
	Format Format
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() []error {
	return []error{ErrEncodeFailure, e.Err}
}
