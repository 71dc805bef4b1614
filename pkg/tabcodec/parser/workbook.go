package parser

import (
	"path"
	"strings"
)

// OOXML package parts.
const (
	workbookPart      = "xl/workbook.xml"
	workbookRelsPart  = "xl/_rels/workbook.xml.rels"
	sharedStringsPart = "xl/sharedStrings.xml"
	defaultSheetPart  = "xl/worksheets/sheet1.xml"
)

// firstSheetPart returns the archive path of the first worksheet in workbook
// order, falling back to the conventional sheet1 path.
func firstSheetPart(a *Archive) string {
	rID := firstSheetRelID(a)
	if rID == "" {
		return defaultSheetPart
	}
	target := relationshipTarget(a, rID)
	if target == "" || !a.Has(target) {
		return defaultSheetPart
	}
	return target
}

// firstSheetRelID returns the relationship id of the first <sheet> in
// workbook.xml, or "" when it cannot be determined.
func firstSheetRelID(a *Archive) string {
	data, ok, err := a.ReadMember(workbookPart)
	if err != nil || !ok {
		return ""
	}

	cur := NewXMLCursor(data)
	for {
		ev, err := cur.Next()
		if err != nil || ev.Kind == EventEOF {
			return ""
		}
		if ev.Kind == EventStart && ev.Name.Local == "sheet" {
			for _, attr := range ev.Attr {
				if attr.Name.Local == "id" && attr.Name.Space != "" {
					return attr.Value
				}
			}
			return ""
		}
	}
}

// relationshipTarget resolves rID through the workbook relationships to a
// member path inside the archive.
func relationshipTarget(a *Archive, rID string) string {
	data, ok, err := a.ReadMember(workbookRelsPart)
	if err != nil || !ok {
		return ""
	}

	cur := NewXMLCursor(data)
	for {
		ev, err := cur.Next()
		if err != nil || ev.Kind == EventEOF {
			return ""
		}
		if ev.Kind != EventStart || ev.Name.Local != "Relationship" {
			continue
		}
		id, _ := plainAttr(ev.Attr, "Id")
		if id != rID {
			continue
		}
		target, _ := plainAttr(ev.Attr, "Target")
		if target == "" {
			return ""
		}
		return resolveRelativePath(target, "xl")
	}
}

// resolveRelativePath turns a relationship target into an archive path.
// Absolute targets are rooted at the package, others at baseDir.
func resolveRelativePath(target, baseDir string) string {
	target = strings.ReplaceAll(target, `\`, "/")
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(baseDir, target)
}
