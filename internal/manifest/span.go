package manifest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// span is a half-open byte range of the source markup.
type span struct {
	start, end int
}

// childSpans locates the direct children of the root element named local and
// returns their byte ranges in document order. Each range is widened to take
// the indentation and line break in front of the element.
func childSpans(data []byte, local string) ([]span, error) {
	offset := 0
	body := data
	if bytes.HasPrefix(body, utf8BOM) {
		offset = len(utf8BOM)
		body = body[offset:]
	}

	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var (
		spans []span
		depth int
		start = -1
	)
	for {
		pos := int(dec.InputOffset())
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			return spans, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 1 && t.Name.Local == local {
				start = pos
			}
			depth++
		case xml.EndElement:
			depth--
			if depth == 1 && start >= 0 {
				end := int(dec.InputOffset())
				spans = append(spans, span{
					start: offset + lineStart(body, start),
					end:   offset + end,
				})
				start = -1
			}
		}
	}
}

// lineStart walks back from pos over spaces and tabs and one preceding line
// break.
func lineStart(data []byte, pos int) int {
	for pos > 0 && (data[pos-1] == ' ' || data[pos-1] == '\t') {
		pos--
	}
	if pos > 0 && data[pos-1] == '\n' {
		pos--
		if pos > 0 && data[pos-1] == '\r' {
			pos--
		}
	}
	return pos
}

// splice returns src without the removed ranges.
func splice(src []byte, removed []span) []byte {
	cuts := append([]span(nil), removed...)
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].start < cuts[j].start })

	out := make([]byte, 0, len(src))
	last := 0
	for _, c := range cuts {
		if c.start < last {
			continue
		}
		out = append(out, src[last:c.start]...)
		last = c.end
	}
	return append(out, src[last:]...)
}
