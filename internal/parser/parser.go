// Package parser extracts capture metadata from sidecar files. A sidecar is
// the Markdown file written next to each screenshot: YAML frontmatter with
// the source app, window title, and capture timestamp, followed by the OCR
// text as the body.
package parser

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Result holds the output of parsing a sidecar file.
type Result struct {
	App       string
	Title     string
	Timestamp int64 // unix seconds; 0 when the frontmatter carries none
	Tags      []string
	Body      string
}

type frontmatter struct {
	App       string   `yaml:"app"`
	Title     string   `yaml:"title"`
	Timestamp int64    `yaml:"timestamp"`
	Tags      []string `yaml:"tags"`
}

// Parse extracts frontmatter and OCR body from raw sidecar bytes.
func Parse(data []byte) (*Result, error) {
	fm, body := splitFrontmatter(data)
	if fm == nil {
		return &Result{Body: body}, nil
	}
	return &Result{
		App:       strings.TrimSpace(fm.App),
		Title:     strings.TrimSpace(fm.Title),
		Timestamp: fm.Timestamp,
		Tags:      fm.Tags,
		Body:      body,
	}, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the body. If no frontmatter is found, or the YAML is invalid, the
// entire content is body.
func splitFrontmatter(data []byte) (*frontmatter, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter — treat everything as body.
		return nil, string(data)
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm frontmatter
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		return nil, string(data)
	}
	return &fm, body
}

// TimestampFromPath recovers the capture timestamp from a sidecar filename
// whose stem is the unix timestamp (e.g. "2026/1756100000.md"). Returns 0
// when the stem is not numeric.
func TimestampFromPath(path string) int64 {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ts, err := strconv.ParseInt(stem, 10, 64)
	if err != nil || ts < 0 {
		return 0
	}
	return ts
}
