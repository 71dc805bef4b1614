package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// Archive is an in-memory zip container opened for a single decode call.
type Archive struct {
	zr *zip.Reader
}

// OpenArchive opens data as a zip archive.
func OpenArchive(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedContainer, err)
	}
	return &Archive{zr: zr}, nil
}

// ReadMember returns the UTF-8 contents of the member matching suffix.
// An entry whose normalized name equals suffix wins; otherwise the first
// entry ending with suffix is used. The boolean is false when nothing matches.
func (a *Archive) ReadMember(suffix string) (string, bool, error) {
	f := a.find(suffix)
	if f == nil {
		return "", false, nil
	}

	rc, err := f.Open()
	if err != nil {
		return "", false, &PartError{Part: f.Name, Err: fmt.Errorf("%w: %w", ErrMalformedContainer, err)}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", false, &PartError{Part: f.Name, Err: fmt.Errorf("%w: %w", ErrMalformedContainer, err)}
	}
	if !utf8.Valid(data) {
		return "", false, &PartError{Part: f.Name, Err: ErrEncoding}
	}
	return string(data), true, nil
}

// Has reports whether a member matching suffix exists.
func (a *Archive) Has(suffix string) bool {
	return a.find(suffix) != nil
}

func (a *Archive) find(suffix string) *zip.File {
	suffix = normalizeMemberName(suffix)
	var fallback *zip.File
	for _, f := range a.zr.File {
		name := normalizeMemberName(f.Name)
		if name == suffix {
			return f
		}
		if fallback == nil && strings.HasSuffix(name, suffix) {
			fallback = f
		}
	}
	return fallback
}

// normalizeMemberName folds the path variants different producers write.
func normalizeMemberName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	return strings.TrimPrefix(name, "/")
}

// EventKind identifies the kind of an XML cursor event.
type EventKind int

const (
	// EventEOF marks the end of the document.
	EventEOF EventKind = iota
	// EventStart is an opening tag, including self-closing ones.
	EventStart
	// EventEnd is a closing tag.
	EventEnd
	// EventText is trimmed, non-empty character data.
	EventText
)

// Event is a single step of an XMLCursor.
type Event struct {
	Kind EventKind
	Name xml.Name
	Attr []xml.Attr
	Text string
}

// XMLCursor is a forward-only event stream over an XML document.
// Whitespace-only text is dropped and other text is trimmed.
type XMLCursor struct {
	dec *xml.Decoder
}

// NewXMLCursor creates a cursor over text.
func NewXMLCursor(text string) *XMLCursor {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.CharsetReader = charset.NewReaderLabel
	return &XMLCursor{dec: dec}
}

// Next returns the next event. Syntax errors wrap ErrMalformedXML.
func (c *XMLCursor) Next() (Event, error) {
	for {
		token, err := c.dec.Token()
		if err == io.EOF {
			return Event{Kind: EventEOF}, nil
		}
		if err != nil {
			return Event{}, fmt.Errorf("%w: %w", ErrMalformedXML, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			return Event{Kind: EventStart, Name: t.Name, Attr: t.Attr}, nil
		case xml.EndElement:
			return Event{Kind: EventEnd, Name: t.Name}, nil
		case xml.CharData:
			if text := strings.TrimSpace(string(t)); text != "" {
				return Event{Kind: EventText, Text: text}, nil
			}
		}
	}
}

// namespace pairs a namespace URI with the prefix producers conventionally bind to it.
type namespace struct {
	uri    string
	prefix string
}

// XML namespaces used in OpenDocument content.
var (
	nsOffice = namespace{"urn:oasis:names:tc:opendocument:xmlns:office:1.0", "office"}
	nsTable  = namespace{"urn:oasis:names:tc:opendocument:xmlns:table:1.0", "table"}
	nsText   = namespace{"urn:oasis:names:tc:opendocument:xmlns:text:1.0", "text"}
)

// is reports whether name is local within ns. A bound URI, an unbound
// conventional prefix and an unqualified name are all accepted.
func (ns namespace) is(name xml.Name, local string) bool {
	if name.Local != local {
		return false
	}
	return name.Space == ns.uri || name.Space == ns.prefix || name.Space == ""
}

// attr returns the value of the attribute local within ns.
func (ns namespace) attr(attrs []xml.Attr, local string) (string, bool) {
	for _, a := range attrs {
		if ns.is(a.Name, local) {
			return a.Value, true
		}
	}
	return "", false
}

// plainAttr returns the value of an unqualified attribute.
func plainAttr(attrs []xml.Attr, local string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}
