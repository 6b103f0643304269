package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	// FileHadBOM records that a UTF-8 byte order mark was stripped on load.
	FileHadBOM
	// FileHasCRLF marks files that use \r\n line endings anywhere.
	FileHasCRLF
)

// File captures metadata and content for a single source file.
// Content is kept byte-for-byte apart from a stripped BOM; line endings
// are never rewritten so fixes preserve the author's choice.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
