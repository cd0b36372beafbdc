package parser

import (
	"github.com/rail-service/postman-gen/core/ir"
)

// Extractor recovers route facts from one source of route declarations.
// Implementations are matching strategies: the lexical pattern scan and the
// OpenAPI document walk both conform, and a future AST-based scan can join
// them without touching the collection factory.
type Extractor interface {
	// Extract returns every endpoint the strategy can recover, together with
	// scan counters. Endpoint order is deterministic for a given source.
	Extract() ([]ir.Endpoint, ir.Stats, error)
	// Source describes where the facts come from, for logs and summaries.
	Source() string
}

type ExtractError struct {
	Source  string
	Message string
}

func (e ExtractError) Error() string {
	if e.Source != "" {
		return e.Source + ": " + e.Message
	}
	return e.Message
}
