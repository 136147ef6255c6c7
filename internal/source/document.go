// Package source owns document IO: loading, decoding validation, newline
// and BOM normalization, and the tab-expansion pre-pass. The engine never
// reads files itself; it receives line slices from here and hands the
// corrected slice back.
package source

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// MaxFileSize rejects pathological inputs before reading them.
const MaxFileSize = 100 * 1024 * 1024 // 100 MB

// DecodeError reports input that is not valid text: binary content or a
// broken UTF-8 sequence. It is fatal for the whole document; the engine
// never guesses at malformed encoding.
type DecodeError struct {
	Source string
	Binary bool
	Offset int
	Byte   byte
}

func (e *DecodeError) Error() string {
	if e.Binary {
		return fmt.Sprintf("input appears to be binary: %s", e.Source)
	}
	return fmt.Sprintf("invalid UTF-8 at byte position %d (byte value: 0x%02X) in %s", e.Offset, e.Byte, e.Source)
}

// Document is a fully decoded input: an ordered line sequence plus the
// metadata the cache and renderers need.
type Document struct {
	// Path is the origin for reporting; "stdin" for virtual documents.
	Path string

	Lines []string

	// Virtual marks documents not backed by a file (stdin, tests).
	Virtual bool

	HadBOM  bool
	HadCRLF bool

	// Bytes is the size of the normalized content.
	Bytes int

	// Hash fingerprints the normalized content for the disk cache.
	Hash [sha256.Size]byte
}

// Load reads and decodes a file from disk.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file metadata: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, &DecodeError{Source: path, Binary: true}
	}

	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return FromBytes(path, content, false)
}

// ReadStdin decodes standard input as a virtual document.
func ReadStdin(r io.Reader) (*Document, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(content) > MaxFileSize {
		return nil, &DecodeError{Source: "stdin", Binary: true}
	}
	return FromBytes("stdin", content, true)
}

// FromBytes validates and normalizes raw content into a Document.
// NUL bytes mean binary input; both that and invalid UTF-8 surface as a
// DecodeError so the caller can abort without partial corruption.
func FromBytes(name string, content []byte, virtual bool) (*Document, error) {
	for _, b := range content {
		if b == 0 {
			return nil, &DecodeError{Source: name, Binary: true}
		}
	}
	if !utf8.Valid(content) {
		off, bad := firstInvalidByte(content)
		return nil, &DecodeError{Source: name, Offset: off, Byte: bad}
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	return &Document{
		Path:    name,
		Lines:   splitLines(string(content)),
		Virtual: virtual,
		HadBOM:  hadBOM,
		HadCRLF: hadCRLF,
		Bytes:   len(content),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Join renders a line sequence back into file content. The trailing
// newline dropped by splitLines is not reintroduced, matching the way
// the corrected sequence is written out.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// splitLines splits on \n and drops the final empty element produced by a
// trailing newline, so a round trip through Join is stable.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func firstInvalidByte(content []byte) (int, byte) {
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRune(content[i:])
		if r == utf8.RuneError && size == 1 {
			return i, content[i]
		}
		i += size
	}
	return len(content), 0
}
