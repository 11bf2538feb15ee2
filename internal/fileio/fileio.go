// Package fileio loads documents into the editor and saves them back.
//
// Loading decodes UTF-8 and UTF-16 (with a byte order mark) into UTF-8
// text, strips any BOM, and detects the line ending from the first
// terminator. Saving re-encodes with the encoding the document was loaded
// with and joins lines with the editor's external line ending.
package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dshills/linecore/internal/engine"
	"github.com/dshills/linecore/internal/engine/buffer"
)

// Encoding is the byte encoding of a document on disk.
type Encoding int

// Supported encodings.
const (
	UTF8 Encoding = iota
	UTF8BOM
	UTF16LE
	UTF16BE
)

// String returns the encoding name.
func (enc Encoding) String() string {
	switch enc {
	case UTF8BOM:
		return "utf-8-bom"
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	default:
		return "utf-8"
	}
}

func (enc Encoding) encoding() encoding.Encoding {
	switch enc {
	case UTF8BOM:
		return unicode.UTF8BOM
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return unicode.UTF8
	}
}

// sniff identifies the encoding from a leading byte order mark.
func sniff(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return UTF8BOM
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return UTF16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return UTF16BE
	default:
		return UTF8
	}
}

// Document is decoded file content.
type Document struct {
	// Path is the file the document was read from, if any.
	Path string

	// Text is the decoded content with its original line terminators.
	Text string

	// EOL is the line ending detected in Text.
	EOL buffer.LineEnding

	// Encoding is the encoding the content was stored in.
	Encoding Encoding
}

// Decode reads and decodes a document from r. Invalid UTF-8 is replaced
// with U+FFFD.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	enc := sniff(data)

	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), dec))
	if err != nil {
		return nil, fmt.Errorf("decode %s document: %w", enc, err)
	}
	return &Document{
		Text:     string(text),
		EOL:      buffer.DetectLineEnding(string(text)),
		Encoding: enc,
	}, nil
}

// Load reads the document at path. A leading "~" is expanded to the home
// directory.
func Load(path string) (*Document, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Open loads the document at path into a new editor configured by opts.
// A line ending found in the document overrides the one in opts. Unless
// opts select a language, one is detected from the file name. A missing
// file opens as an empty document.
func Open(path string, opts ...engine.Option) (*engine.Editor, *Document, error) {
	doc, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		expanded, _ := homedir.Expand(path)
		doc, err = &Document{Path: expanded, EOL: buffer.LineEndingLF}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	opts = append([]engine.Option{engine.WithContent(doc.Text)}, opts...)
	if strings.ContainsAny(doc.Text, "\r\n") {
		opts = append(opts, engine.WithEOL(doc.EOL))
	}
	e, err := engine.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	if e.Language() == "" {
		e.DetectLanguage(filepath.Base(doc.Path))
	}
	return e, doc, nil
}

// Encode returns the editor's text for saving in enc.
func Encode(e *engine.Editor, enc Encoding) ([]byte, error) {
	text := []byte(e.TextForSaving())
	if enc == UTF8 {
		return text, nil
	}
	out, _, err := transform.Bytes(enc.encoding().NewEncoder(), text)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc, err)
	}
	return out, nil
}

// Save writes the editor's text to path in enc. The file is written to a
// temporary file in the same directory and renamed over path, so a
// failed save leaves the old content in place. An existing file keeps
// its permissions.
func Save(path string, e *engine.Editor, enc Encoding) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	data, err := Encode(e, enc)
	if err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
