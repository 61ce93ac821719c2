// Package merge splices generated declarations into an existing file below
// an anchor line.
package merge

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultAnchor separates hand-written content from generated content.
const DefaultAnchor = "export {};"

// Banner is written between the anchor and the generated declarations.
const Banner = `/**
 * The declarations below are generated from the database catalog by pgtypegen.
 * Do not edit them by hand; run "pgtypegen generate" to refresh them.
 */`

var ErrAnchorNotFound = errors.New("anchor line not found")

// MergeError reports that the target text could not be merged.
type MergeError struct {
	Anchor string
	Err    error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge failed for anchor %q: %v", e.Anchor, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }

// Merger replaces everything after the anchor line.
type Merger struct {
	Anchor string
}

func New(anchor string) *Merger {
	if anchor == "" {
		anchor = DefaultAnchor
	}
	return &Merger{Anchor: anchor}
}

// Merge returns current up to and including the first line equal to the
// anchor, followed by the banner and generated. Only that first anchor line
// is considered; anything after it, including later copies of the anchor, is
// replaced. When no line matches, current is returned unchanged together
// with a *MergeError.
func (m *Merger) Merge(current, generated string) (string, error) {
	end, ok := findAnchor(current, m.Anchor)
	if !ok {
		return current, &MergeError{Anchor: m.Anchor, Err: ErrAnchorNotFound}
	}

	var sb strings.Builder
	sb.Grow(end + len(Banner) + len(generated) + 3)
	sb.WriteString(current[:end])
	sb.WriteString("\n\n")
	sb.WriteString(Banner)
	sb.WriteString("\n\n")
	sb.WriteString(generated)
	return sb.String(), nil
}

// findAnchor returns the offset just past the first line whose trimmed
// content equals anchor.
func findAnchor(text, anchor string) (int, bool) {
	offset := 0
	for offset <= len(text) {
		line := text[offset:]
		next := len(text)
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
			next = offset + i + 1
		}
		if strings.TrimSpace(line) == anchor {
			return offset + len(strings.TrimRight(line, " \t\r")), true
		}
		if next == len(text) {
			break
		}
		offset = next
	}
	return 0, false
}
