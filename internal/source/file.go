package source

import (
	"fmt"
	"path/filepath"

	"fortio.org/safecast"
)

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual marks files added from memory (REPL input, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single script.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position, both fields 1-based.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}

// Line returns the text of the 1-based line n without its newline.
// Out of range lines yield "".
func (f *File) Line(n uint32) string {
	if n == 0 {
		return ""
	}
	lines := mustLen(len(f.LineIdx))
	size := mustLen(len(f.Content))

	var start uint32
	if n > 1 {
		if n-2 >= lines {
			return ""
		}
		start = f.LineIdx[n-2] + 1
	}
	end := size
	if n-1 < lines {
		end = f.LineIdx[n-1]
	}
	if start > size || start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// Text returns the bytes covered by span as a string.
func (f *File) Text(span Span) string {
	size := mustLen(len(f.Content))
	if span.Start > size || span.End > size || span.Start > span.End {
		return ""
	}
	return string(f.Content[span.Start:span.End])
}

// DisplayPath shortens the path relative to baseDir when possible.
func (f *File) DisplayPath(baseDir string) string {
	if baseDir == "" || f.Flags&FileVirtual != 0 {
		return f.Path
	}
	abs, err := filepath.Abs(f.Path)
	if err != nil {
		return f.Path
	}
	rel, err := filepath.Rel(baseDir, abs)
	if err != nil || len(rel) >= len(abs) {
		return f.Path
	}
	return filepath.ToSlash(rel)
}

func mustLen(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("length overflow: %w", err))
	}
	return v
}
