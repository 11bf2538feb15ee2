// Package syntax answers read-only questions about the lexical class of a
// document position: whether it is code, a comment, a block comment or a
// here-document. The editor core consumes these answers where indentation
// needs to tell code from non-code; it never tokenizes text itself.
package syntax

// Classifier classifies document positions.
type Classifier interface {
	IsCode(line, col int) bool
	IsComment(line, col int) bool
	IsBlockComment(line, col int) bool
	IsHereDoc(line, col int) bool
}

// NullClassifier is used when no language is known. Everything is code.
type NullClassifier struct{}

// IsCode always returns true.
func (NullClassifier) IsCode(int, int) bool { return true }

// IsComment always returns false.
func (NullClassifier) IsComment(int, int) bool { return false }

// IsBlockComment always returns false.
func (NullClassifier) IsBlockComment(int, int) bool { return false }

// IsHereDoc always returns false.
func (NullClassifier) IsHereDoc(int, int) bool { return false }
