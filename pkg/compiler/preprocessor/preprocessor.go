// Package preprocessor handles #include splicing and source charset
// conversion before lexing.
package preprocessor

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// CyclicIncludeError reports an include chain that loops back on itself.
type CyclicIncludeError struct {
	Chain []string // include chain, first entry repeated at the end
}

func (e *CyclicIncludeError) Error() string {
	return fmt.Sprintf("cyclic include: %s", strings.Join(e.Chain, " -> "))
}

// AssetLoader is the file access interface for source and included files.
type AssetLoader interface {
	ReadFile(path string) ([]byte, error)
	Exists(path string) bool
}

// Preprocessor splices #include directives and converts the source charset
// to UTF-8. Includes resolve relative to the including file. A file may be
// included more than once, but never while it is still being processed.
type Preprocessor struct {
	baseDir     string
	charset     string
	assetLoader AssetLoader
	active      map[string]bool // files on the include stack
	stack       []string
}

// NewPreprocessor creates a new preprocessor. charset is the IANA name of
// the source encoding; "utf-8" passes bytes through after validation.
func NewPreprocessor(baseDir, charset string, assetLoader AssetLoader) *Preprocessor {
	return &Preprocessor{
		baseDir:     baseDir,
		charset:     charset,
		assetLoader: assetLoader,
		active:      make(map[string]bool),
	}
}

// Process reads filename, splices its includes, and returns the combined
// UTF-8 source text.
func (p *Preprocessor) Process(filename string) (string, error) {
	// Reset state
	p.active = make(map[string]bool)
	p.stack = nil

	return p.processFile(filename)
}

// processFile processes a single file recursively.
func (p *Preprocessor) processFile(filename string) (string, error) {
	// Full path keys the include stack
	fullPath := filepath.Join(p.baseDir, filename)

	if p.active[fullPath] {
		chain := append(append([]string{}, p.stack...), filename)
		return "", &CyclicIncludeError{Chain: chain}
	}
	p.active[fullPath] = true
	p.stack = append(p.stack, filename)
	defer func() {
		delete(p.active, fullPath)
		p.stack = p.stack[:len(p.stack)-1]
	}()

	data, err := p.assetLoader.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	text, err := p.convertEncoding(data)
	if err != nil {
		return "", fmt.Errorf("encoding error in %s: %w", filename, err)
	}

	return p.processDirectives(text, filename)
}

// convertEncoding decodes the configured source charset to UTF-8.
func (p *Preprocessor) convertEncoding(data []byte) (string, error) {
	name := strings.ToLower(p.charset)
	if name == "" || name == "utf-8" || name == "utf8" {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("source is not valid UTF-8")
		}
		return string(data), nil
	}

	enc, err := lookupCharset(p.charset)
	if err != nil {
		return "", err
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", p.charset, err)
	}
	return string(decoded), nil
}

// lookupCharset resolves an IANA charset name.
func lookupCharset(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown charset: %s", name)
	}
	return enc, nil
}

// processDirectives splices #include directives line by line.
func (p *Preprocessor) processDirectives(text string, currentFile string) (string, error) {
	var result strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#include") {
			included, err := p.parseIncludeDirective(trimmed, currentFile)
			if err != nil {
				return "", err
			}
			result.WriteString(included)
			result.WriteString("\n")
			continue
		}

		result.WriteString(line)
		result.WriteString("\n")
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	return result.String(), nil
}

// parseIncludeDirective parses a #include directive and processes the
// included file.
func (p *Preprocessor) parseIncludeDirective(line string, currentFile string) (string, error) {
	// Format: #include "filename"
	parts := strings.SplitN(line, " ", 2)
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid #include directive: %s", line)
	}

	filename := strings.Trim(strings.TrimSpace(parts[1]), "\"")
	if filename == "" {
		return "", fmt.Errorf("invalid #include directive: %s", line)
	}

	// Resolve path relative to the including file
	currentDir := filepath.Dir(currentFile)
	includePath := filepath.Join(currentDir, filename)

	if !p.assetLoader.Exists(includePath) {
		return "", fmt.Errorf("included file not found: %s", includePath)
	}

	return p.processFile(includePath)
}
