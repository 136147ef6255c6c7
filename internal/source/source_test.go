package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in       string
		tabWidth int
		want     string
	}{
		{"\thello", 4, "    hello"},
		{"a\tb", 4, "a   b"},
		{"ab\tc", 4, "ab  c"},
		{"abc\td", 4, "abc d"},
		{"\t\t", 4, "        "},
		{"a\tb\tc", 4, "a   b   c"},
		{"\thello", 2, "  hello"},
		{"a\tb", 2, "a b"},
		{"\thello", 8, "        hello"},
		{"no tabs here", 4, "no tabs here"},
		{"", 4, ""},
	}
	for _, tt := range tests {
		if got := ExpandTabs(tt.in, tt.tabWidth); got != tt.want {
			t.Errorf("ExpandTabs(%q, %d) = %q, want %q", tt.in, tt.tabWidth, got, tt.want)
		}
	}
}

func TestFromBytesRejectsBinary(t *testing.T) {
	_, err := FromBytes("bin", []byte("hello\x00world"), true)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if !decodeErr.Binary {
		t.Fatal("expected binary flag")
	}
}

func TestFromBytesRejectsInvalidUTF8(t *testing.T) {
	_, err := FromBytes("bad", []byte{'o', 'k', 0xFF, 'x'}, true)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Binary {
		t.Fatal("invalid UTF-8 is not the binary case")
	}
	if decodeErr.Offset != 2 {
		t.Fatalf("Offset = %d, want 2", decodeErr.Offset)
	}
	if decodeErr.Byte != 0xFF {
		t.Fatalf("Byte = 0x%02X, want 0xFF", decodeErr.Byte)
	}
	if !strings.Contains(decodeErr.Error(), "byte position 2") {
		t.Fatalf("unhelpful message: %s", decodeErr.Error())
	}
}

func TestFromBytesNormalizesCRLFAndBOM(t *testing.T) {
	doc, err := FromBytes("f", []byte("\xEF\xBB\xBFone\r\ntwo\n"), true)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !doc.HadBOM || !doc.HadCRLF {
		t.Fatalf("HadBOM=%v HadCRLF=%v, want both true", doc.HadBOM, doc.HadCRLF)
	}
	if len(doc.Lines) != 2 || doc.Lines[0] != "one" || doc.Lines[1] != "two" {
		t.Fatalf("Lines = %q", doc.Lines)
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	doc, err := FromBytes("f", []byte("a\nb\nc"), true)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got := Join(doc.Lines); got != "a\nb\nc" {
		t.Fatalf("Join = %q", got)
	}

	empty, err := FromBytes("f", nil, true)
	if err != nil {
		t.Fatalf("FromBytes(empty): %v", err)
	}
	if len(empty.Lines) != 0 {
		t.Fatalf("empty content produced %d lines", len(empty.Lines))
	}
}

func TestLoad(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "diagram.txt")
	if err := os.WriteFile(path, []byte("+--+\n|ab|\n+--+\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Virtual {
		t.Fatal("file-backed document marked virtual")
	}
	if len(doc.Lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(doc.Lines))
	}
	if doc.Hash == ([32]byte{}) {
		t.Fatal("content hash not computed")
	}
}

func TestReadStdin(t *testing.T) {
	doc, err := ReadStdin(strings.NewReader("| x |\n"))
	if err != nil {
		t.Fatalf("ReadStdin: %v", err)
	}
	if doc.Path != "stdin" || !doc.Virtual {
		t.Fatalf("Path=%q Virtual=%v", doc.Path, doc.Virtual)
	}
	if len(doc.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(doc.Lines))
	}
}
