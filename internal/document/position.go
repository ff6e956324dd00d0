package document

import (
	"strings"
	"unicode/utf16"

	"github.com/amarbel-llc/spelld/internal/lsp"
)

// OffsetAt converts an LSP position (zero-based line, UTF-16 character
// offset) to a byte offset in the document text. Positions past the end of a
// line or of the document clamp to the nearest valid offset.
func (d *Document) OffsetAt(p lsp.Position) int {
	text := d.Text
	offset := 0
	for line := 0; line < p.Line; line++ {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			return len(text)
		}
		offset += nl + 1
	}

	units := 0
	for i, r := range text[offset:] {
		if r == '\n' || units >= p.Character {
			return offset + i
		}
		units += utf16.RuneLen(r)
	}
	return len(text)
}

// TextInRange returns the exact document text covered by the range.
func (d *Document) TextInRange(r lsp.Range) string {
	start := d.OffsetAt(r.Start)
	end := d.OffsetAt(r.End)
	if end < start {
		return ""
	}
	return d.Text[start:end]
}

// WordAt returns the word covered by the range, with surrounding whitespace
// trimmed. The diagnostic ranges produced by the validator cover the word
// exactly; the trim only matters for explicit user selections.
func (d *Document) WordAt(r lsp.Range) string {
	return strings.TrimSpace(d.TextInRange(r))
}
