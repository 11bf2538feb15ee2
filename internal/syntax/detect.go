package syntax

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Detect picks a lexer for a document, first by file name and then by
// analysing its content. It returns nil if neither identifies a language.
func Detect(filename, content string) chroma.Lexer {
	if filename != "" {
		if l := lexers.Match(filename); l != nil {
			return l
		}
	}
	if content != "" {
		if l := lexers.Analyse(content); l != nil {
			return l
		}
	}
	return nil
}

// Lookup returns the lexer registered under a language name or alias.
func Lookup(name string) (chroma.Lexer, bool) {
	l := lexers.Get(name)
	if l == nil {
		return nil, false
	}
	return l, true
}

// LanguageName returns the canonical name of a lexer's language, or "" for
// a nil lexer.
func LanguageName(l chroma.Lexer) string {
	if l == nil {
		return ""
	}
	return l.Config().Name
}
