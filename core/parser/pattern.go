package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rail-service/postman-gen/core/ir"
)

type verbPattern struct {
	method string
	re     *regexp.Regexp
}

// One pattern per supported verb, shaped as receiver.VERB("path", handler.
// Matching is purely lexical: no brace tracking, no resolution of what the
// receiver is bound to. Routes registered dynamically are not recoverable and
// contribute nothing.
var verbPatterns = buildVerbPatterns()

func buildVerbPatterns() []verbPattern {
	patterns := make([]verbPattern, 0, len(ir.Methods()))
	for _, method := range ir.Methods() {
		patterns = append(patterns, verbPattern{
			method: method,
			re:     regexp.MustCompile(`(\w+)\.` + method + `\("([^"]+)",\s*(\w+)`),
		})
	}
	return patterns
}

// PatternExtractor scans a flat directory of Go route files for literal route
// registrations.
type PatternExtractor struct {
	dir string
}

func NewPatternExtractor(routesDir string) *PatternExtractor {
	return &PatternExtractor{dir: routesDir}
}

func (p *PatternExtractor) Source() string {
	return p.dir
}

// Extract scans every .go file in the routes directory, in file-name order,
// and returns all endpoint candidates the verb patterns recognize. A file
// that matches nothing contributes nothing; a missing or unreadable directory
// fails the run.
func (p *PatternExtractor) Extract() ([]ir.Endpoint, ir.Stats, error) {
	var stats ir.Stats

	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, stats, ExtractError{Source: p.dir, Message: "read routes directory: " + err.Error()}
	}

	var endpoints []ir.Endpoint
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".go" {
			continue
		}

		path := filepath.Join(p.dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, stats, fmt.Errorf("read route file %s: %w", path, err)
		}

		stats.FilesScanned++
		endpoints = append(endpoints, extractFromSource(string(content))...)
	}

	stats.Extracted = len(endpoints)
	return endpoints, stats, nil
}

// extractFromSource applies every verb pattern to one file's text. The auth
// heuristic is file-scoped: a file mentioning "noauth" anywhere marks its
// candidates auth-free unless the candidate was registered on a receiver whose
// name contains "protected". It is a hint, not ground truth.
func extractFromSource(content string) []ir.Endpoint {
	fileNoAuth := strings.Contains(strings.ToLower(content), "noauth")

	var endpoints []ir.Endpoint
	for _, vp := range verbPatterns {
		for _, match := range vp.re.FindAllStringSubmatch(content, -1) {
			receiver := match[1]
			authRequired := !fileNoAuth || strings.Contains(strings.ToLower(receiver), "protected")

			endpoints = append(endpoints, ir.Endpoint{
				Method:       vp.method,
				Path:         match[2],
				Handler:      match[3],
				AuthRequired: authRequired,
				Group:        receiver,
			})
		}
	}
	return endpoints
}
