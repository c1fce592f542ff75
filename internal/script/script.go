package script

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter opens every block header in a generated script.
const Delimiter = "[Slide"

// ErrUnparseable is returned when a script lacks the block header structure.
var ErrUnparseable = errors.New("unparseable script")

// Block is one slide's narration.
type Block struct {
	// Header is the raw text between the delimiter and the first "]",
	// e.g. "1: Intro". It is empty when no "]" followed the delimiter.
	Header string
	// Title is Header with the leading slide number removed, e.g. "Intro".
	Title string
	Body  string
}

// Heading is the display heading for the block at the 0-based index.
func (b Block) Heading(index int) string {
	if b.Header == "" {
		return fmt.Sprintf("Slide %d", index+1)
	}
	return fmt.Sprintf("Slide %d: %s", index+1, b.Title)
}

// Script is a generated narration split into blocks.
type Script struct {
	Raw    string
	Blocks []Block
	// Segments counts every piece produced by splitting Raw on Delimiter,
	// including the discarded text before the first header.
	Segments int
}

// Len returns the number of blocks.
func (s *Script) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Blocks)
}

// Parse splits raw on Delimiter. Text before the first delimiter is dropped.
// A delimiter occurring inside body text starts a new block; when no "]"
// follows it, the block has no header and its body keeps the delimiter
// text. A script without a single headed block is unparseable.
func Parse(raw string) (*Script, error) {
	segments := strings.Split(raw, Delimiter)
	if len(segments) < 2 {
		return nil, fmt.Errorf("%w: no %q header found", ErrUnparseable, Delimiter)
	}

	blocks := make([]Block, 0, len(segments)-1)
	headed := 0
	for _, seg := range segments[1:] {
		header, body, ok := strings.Cut(seg, "]")
		if !ok {
			blocks = append(blocks, Block{Body: strings.TrimSpace(Delimiter + seg)})
			continue
		}
		header = strings.TrimSpace(header)
		blocks = append(blocks, Block{
			Header: header,
			Title:  titleOf(header),
			Body:   strings.TrimSpace(body),
		})
		headed++
	}
	if headed == 0 {
		return nil, fmt.Errorf("%w: no block has a closing bracket", ErrUnparseable)
	}

	return &Script{Raw: raw, Blocks: blocks, Segments: len(segments)}, nil
}

func titleOf(header string) string {
	if _, title, ok := strings.Cut(header, ":"); ok {
		return strings.TrimSpace(title)
	}
	return header
}
