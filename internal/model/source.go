// Package model defines the data structures shared by the extraction and catalog workflows.
package model

// Path represents a file system path.
type Path string

// GlobalScope is the scope name reported for tests that no class precedes.
const GlobalScope = "(global)"

// File is a discovered source file.
type File struct {
	FullPath  Path // path used to read the file
	ShortPath Path // slash-separated path relative to the scanned root
}

// SourceUnit is the text of one source file plus its path.
type SourceUnit struct {
	Path Path
	Text string
}

// ScopeMarker identifies the start of a named class-like scope.
type ScopeMarker struct {
	Offset int // byte offset of the match start
	Name   string
}

// ExtractedTest is a property-based test lifted out of a source file.
type ExtractedTest struct {
	Scope     string // enclosing scope name or GlobalScope
	Name      string // function name from the definition header
	Header    string // decorators and signature, de-indented, newline terminated
	Body      string // body lines, de-indented, newline terminated (may be empty)
	Indent    string // base indent removed from every line
	StartLine int    // 1-based line of the first decorator
}

// SourceText returns the full definition with header and body joined by a
// separator line.
func (t ExtractedTest) SourceText() string {
	return t.Header + "\n" + t.Body
}

// FileResult is the outcome of extracting one file.
type FileResult struct {
	Path  Path
	Tests []ExtractedTest
	Err   error
}
