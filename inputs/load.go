package inputs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Stdin is the path that reads standard input.
const Stdin = "-"

var stdin io.Reader = os.Stdin

// Load reads path into a context string.
// HTML is converted to Markdown and PDF to its page text; anything else must be text.
func Load(path string) (string, error) {
	var content []byte
	var err error
	if path == Stdin {
		content, err = io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
	} else {
		content, err = os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrNotFound)
		} else if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
	}
	return Decode(path, content)
}

// Decode converts content read from path.
func Decode(path string, content []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return HTMLToMarkdown(string(content))
	case ".pdf":
		return decodePDF(path, content)
	}

	mtype := mimetype.Detect(content)
	if mtype.Is("text/html") {
		return HTMLToMarkdown(string(content))
	}
	if mtype.Is("application/pdf") {
		return decodePDF(path, content)
	}
	for t := mtype; t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			return string(content), nil
		}
	}
	return "", fmt.Errorf("%s: %s: %w", path, mtype.String(), ErrUnsupportedFormat)
}

func decodePDF(path string, content []byte) (string, error) {
	text, err := PDFToText(content)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}
