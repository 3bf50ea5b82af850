// Package fileproc extracts plain text from local files and web articles so
// the analyzer only ever sees raw text.
package fileproc

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
)

// ErrUnsupportedFile is returned when no processor handles a file.
var ErrUnsupportedFile = errors.New("fileproc: unsupported file type")

// Document is the extracted content of one source.
type Document struct {
	Title string
	Text  string
}

// Processor extracts text from one class of files.
type Processor interface {
	// CanProcess reports whether this processor handles the given path.
	CanProcess(path string) bool
	// Process reads the file and returns its textual content.
	Process(path string) (*Document, error)
}

// DefaultProcessors returns the built-in processor chain.
func DefaultProcessors() []Processor {
	return []Processor{
		HTMLProcessor{},
		TextProcessor{},
	}
}

// ProcessFile runs the first matching processor from DefaultProcessors.
func ProcessFile(path string) (*Document, error) {
	for _, p := range DefaultProcessors() {
		if p.CanProcess(path) {
			return p.Process(path)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(path))
}

// TextProcessor reads plain-text files. Invalid UTF-8 bytes are replaced
// rather than rejected, since exported documents are often mixed-encoding.
type TextProcessor struct{}

func (TextProcessor) CanProcess(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", ".md":
		return true
	}
	return false
}

func (TextProcessor) Process(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	text := string(raw)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return &Document{
		Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Text:  text,
	}, nil
}

// HTMLProcessor extracts the readable article body from an HTML file,
// dropping navigation and boilerplate.
type HTMLProcessor struct{}

func (HTMLProcessor) CanProcess(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func (HTMLProcessor) Process(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	// readability wants a base URL to resolve relative links.
	base := &url.URL{Scheme: "file", Path: "/" + filepath.Base(path)}
	article, err := readability.FromReader(bytes.NewReader(raw), base)
	if err != nil {
		return nil, fmt.Errorf("extract article from %s: %w", path, err)
	}
	title := article.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &Document{Title: title, Text: article.TextContent}, nil
}
