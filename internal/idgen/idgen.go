// Package idgen generates server-assigned resource identifiers for the
// standard resource provider.
package idgen

import (
	"github.com/google/uuid"
	"github.com/rs/xid"
)

// Strategy selects the id generation scheme used by the standard provider.
type Strategy string

const (
	// StrategyXID generates compact, sortable, 20-character ids (the default).
	StrategyXID Strategy = "xid"

	// StrategyUUID generates RFC 4122 UUIDs.
	StrategyUUID Strategy = "uuid"
)

// Generator produces new resource ids under a selected strategy.
type Generator struct {
	strategy Strategy
}

// New returns a Generator for the given strategy, defaulting to StrategyXID
// for an empty or unrecognized value.
func New(strategy Strategy) *Generator {
	if strategy != StrategyUUID {
		strategy = StrategyXID
	}

	return &Generator{strategy: strategy}
}

// Next produces a new id string.
func (g *Generator) Next() string {
	switch g.strategy {
	case StrategyUUID:
		return uuid.New().String()
	default:
		return xid.New().String()
	}
}
