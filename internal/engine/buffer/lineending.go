package buffer

import "strings"

// LineEnding specifies the external line ending style used when the
// document is written to storage. The document itself always uses "\n".
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\\n"
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// ParseLineEnding maps a terminator sequence to a LineEnding.
// Only "\n", "\r\n" and "\r" are recognized.
func ParseLineEnding(seq string) (LineEnding, error) {
	switch seq {
	case "\n":
		return LineEndingLF, nil
	case "\r\n":
		return LineEndingCRLF, nil
	case "\r":
		return LineEndingCR, nil
	}
	return LineEndingLF, &ConfigError{
		Setting: "eol",
		Value:   seq,
		Reason:  `must be one of "\n", "\r\n", "\r"`,
	}
}

// ParseLineEndingName maps a configuration name ("lf", "crlf", "cr") to a
// LineEnding. Raw sequences are accepted too.
func ParseLineEndingName(name string) (LineEnding, error) {
	switch strings.ToLower(name) {
	case "lf", "unix":
		return LineEndingLF, nil
	case "crlf", "dos", "windows":
		return LineEndingCRLF, nil
	case "cr", "mac":
		return LineEndingCR, nil
	}
	return ParseLineEnding(name)
}

// DetectLineEnding returns the first terminator found in text, or LF if
// text has none.
func DetectLineEnding(text string) LineEnding {
	i := strings.IndexAny(text, "\r\n")
	if i < 0 || text[i] == '\n' {
		return LineEndingLF
	}
	if i+1 < len(text) && text[i+1] == '\n' {
		return LineEndingCRLF
	}
	return LineEndingCR
}
