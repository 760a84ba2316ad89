// Package store persists completed rounds so past duels can be listed and
// their commitments re-verified later. Persistence is optional: the game
// plays identically with no store configured.
package store

import (
	"github.com/diceproof/diceduel/internal/session"
)

// DB is the round-history interface.
type DB interface {
	Close() error
	Migrate() error
	SaveRound(rec *session.Record) error
	ListRounds(limit int) ([]session.Record, error)
}
