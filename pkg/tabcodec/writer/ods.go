package writer

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// ODSMimeType is stored uncompressed as the first archive member.
const ODSMimeType = "application/vnd.oasis.opendocument.spreadsheet"

const odsManifest = `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2">
 <manifest:file-entry manifest:full-path="/" manifest:version="1.2" manifest:media-type="application/vnd.oasis.opendocument.spreadsheet"/>
 <manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
 <manifest:file-entry manifest:full-path="styles.xml" manifest:media-type="text/xml"/>
 <manifest:file-entry manifest:full-path="meta.xml" manifest:media-type="text/xml"/>
</manifest:manifest>
`

const odsStyles = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-styles xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" office:version="1.2"/>
`

const odsMeta = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-meta xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:meta="urn:oasis:names:tc:opendocument:xmlns:meta:1.0" office:version="1.2">
 <office:meta><meta:generator>tabcodec</meta:generator></office:meta>
</office:document-meta>
`

// WriteODS serializes columns and rows into an OpenDocument spreadsheet.
// The header occupies the first row and every value is written as a string.
func WriteODS(columns []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	mt, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return nil, fmt.Errorf("create mimetype: %w", err)
	}
	if _, err := io.WriteString(mt, ODSMimeType); err != nil {
		return nil, fmt.Errorf("write mimetype: %w", err)
	}

	for _, part := range []struct{ name, body string }{
		{"META-INF/manifest.xml", odsManifest},
		{"styles.xml", odsStyles},
		{"meta.xml", odsMeta},
	} {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := io.WriteString(w, part.body); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}

	w, err := zw.Create("content.xml")
	if err != nil {
		return nil, fmt.Errorf("create content.xml: %w", err)
	}
	if err := writeODSContent(w, columns, rows); err != nil {
		return nil, fmt.Errorf("write content.xml: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// writeODSContent emits content.xml with a single table.
func writeODSContent(w io.Writer, columns []string, rows [][]string) error {
	enc := xml.NewEncoder(w)

	tokens := []xml.Token{
		xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8"`)},
		start("office:document-content",
			"xmlns:office", "urn:oasis:names:tc:opendocument:xmlns:office:1.0",
			"xmlns:table", "urn:oasis:names:tc:opendocument:xmlns:table:1.0",
			"xmlns:text", "urn:oasis:names:tc:opendocument:xmlns:text:1.0",
			"office:version", "1.2"),
		start("office:body"),
		start("office:spreadsheet"),
		start("table:table", "table:name", SheetName),
	}
	if len(columns) > 0 {
		col := start("table:table-column", "table:number-columns-repeated", strconv.Itoa(len(columns)))
		tokens = append(tokens, col, col.End())
	}
	for _, tok := range tokens {
		if err := enc.EncodeToken(tok); err != nil {
			return err
		}
	}

	if err := writeODSRow(enc, columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeODSRow(enc, row); err != nil {
			return err
		}
	}

	for _, name := range []string{"table:table", "office:spreadsheet", "office:body", "office:document-content"} {
		if err := enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}}); err != nil {
			return err
		}
	}
	return enc.Flush()
}

func writeODSRow(enc *xml.Encoder, values []string) error {
	row := start("table:table-row")
	if err := enc.EncodeToken(row); err != nil {
		return err
	}

	for _, v := range values {
		if v == "" {
			cell := start("table:table-cell")
			if err := encodeTokens(enc, cell, cell.End()); err != nil {
				return err
			}
			continue
		}
		cell := start("table:table-cell", "office:value-type", "string")
		p := start("text:p")
		if err := encodeTokens(enc, cell, p, xml.CharData(v), p.End(), cell.End()); err != nil {
			return err
		}
	}

	return enc.EncodeToken(row.End())
}

func encodeTokens(enc *xml.Encoder, tokens ...xml.Token) error {
	for _, tok := range tokens {
		if err := enc.EncodeToken(tok); err != nil {
			return err
		}
	}
	return nil
}

// start builds a start element whose prefixed names are written verbatim.
func start(name string, attrs ...string) xml.StartElement {
	se := xml.StartElement{Name: xml.Name{Local: name}}
	for i := 0; i+1 < len(attrs); i += 2 {
		se.Attr = append(se.Attr, xml.Attr{Name: xml.Name{Local: attrs[i]}, Value: attrs[i+1]})
	}
	return se
}
