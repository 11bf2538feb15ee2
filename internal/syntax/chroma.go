package syntax

import (
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"

	"github.com/dshills/linecore/internal/engine/buffer"
)

// ChromaClassifier classifies positions using a chroma lexer.
// The document is re-tokenized lazily when the buffer revision changes.
type ChromaClassifier struct {
	buf    *buffer.Buffer
	lexer  chroma.Lexer
	logger *slog.Logger

	rev   buffer.RevisionID
	lines [][]chroma.Token
}

// ChromaOption configures a ChromaClassifier.
type ChromaOption func(*ChromaClassifier)

// WithLogger sets the logger used to report tokenization failures.
func WithLogger(l *slog.Logger) ChromaOption {
	return func(c *ChromaClassifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewChromaClassifier creates a classifier for buf. The lexer is
// coalesced so adjacent tokens of the same type are merged.
func NewChromaClassifier(buf *buffer.Buffer, lexer chroma.Lexer, opts ...ChromaOption) *ChromaClassifier {
	c := &ChromaClassifier{
		buf:    buf,
		lexer:  chroma.Coalesce(lexer),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Language returns the name of the lexer's language.
func (c *ChromaClassifier) Language() string {
	return c.lexer.Config().Name
}

func (c *ChromaClassifier) tokenize() {
	if c.lines != nil && c.rev == c.buf.RevisionID() {
		return
	}
	c.rev = c.buf.RevisionID()
	iterator, err := c.lexer.Tokenise(nil, c.buf.Text())
	if err != nil {
		c.logger.Error("tokenize failed", "language", c.Language(), "error", err)
		c.lines = [][]chroma.Token{}
		return
	}
	c.lines = chroma.SplitTokensIntoLines(iterator.Tokens())
}

// tokenAt returns the type of the token covering (line, col).
func (c *ChromaClassifier) tokenAt(line, col int) (chroma.TokenType, bool) {
	c.tokenize()
	if line < 0 || line >= len(c.lines) || col < 0 {
		return chroma.None, false
	}
	pos := 0
	for _, tok := range c.lines[line] {
		n := utf8.RuneCountInString(tok.Value)
		if col < pos+n {
			return tok.Type, true
		}
		pos += n
	}
	return chroma.None, false
}

// IsCode reports whether (line, col) is outside comments and strings.
// Positions with no token, such as the end of a line, count as code.
func (c *ChromaClassifier) IsCode(line, col int) bool {
	tt, ok := c.tokenAt(line, col)
	if !ok {
		return true
	}
	return !isComment(tt) && !tt.InSubCategory(chroma.LiteralString)
}

// IsComment reports whether (line, col) is inside any comment.
func (c *ChromaClassifier) IsComment(line, col int) bool {
	tt, ok := c.tokenAt(line, col)
	return ok && isComment(tt)
}

// IsBlockComment reports whether (line, col) is inside a multi-line comment.
func (c *ChromaClassifier) IsBlockComment(line, col int) bool {
	tt, ok := c.tokenAt(line, col)
	return ok && tt == chroma.CommentMultiline
}

// IsHereDoc reports whether (line, col) is inside a here-document.
func (c *ChromaClassifier) IsHereDoc(line, col int) bool {
	tt, ok := c.tokenAt(line, col)
	return ok && tt == chroma.LiteralStringHeredoc
}

// isComment excludes preprocessor directives, which chroma files under
// comments.
func isComment(tt chroma.TokenType) bool {
	if tt == chroma.CommentPreproc || tt == chroma.CommentPreprocFile {
		return false
	}
	return tt.InCategory(chroma.Comment)
}
