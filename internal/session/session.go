// Package session orchestrates one full round of the duel: a commit/reveal
// exchange to decide who moves first, die selection, and a single roll-off.
// The session talks to the counterparty through a Transport and returns a
// terminal Outcome value; it never terminates the process itself.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/diceproof/diceduel/internal/dice"
	"github.com/diceproof/diceduel/internal/fairness"
	"github.com/diceproof/diceduel/internal/probability"
)

// Control inputs recognized at every prompt, case-insensitive.
const (
	inputAbort = "x"
	inputHelp  = "?"
)

// Outcome is how a round ended.
type Outcome int

const (
	// OutcomeCompleted means a full round was played to a result.
	OutcomeCompleted Outcome = iota
	// OutcomeAborted means the counterparty exited mid-round. An abort is a
	// clean ending, not a failure.
	OutcomeAborted
)

// Result values, from the counterparty's perspective.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultTie  = "tie"
)

// Record captures everything a completed round disclosed. All fields are
// public artifacts by the time the round ends, including the commitment key.
type Record struct {
	ID           string
	PlayedAt     time.Time
	Tag          string
	Value        int
	KeyHex       string
	Guess        int
	GuessedRight bool
	PlayerDie    string
	OpponentDie  string
	PlayerRoll   int
	OpponentRoll int
	Result       string
}

// Recorder persists completed rounds. A nil Recorder disables persistence;
// recording failures never affect the game.
type Recorder interface {
	SaveRound(rec *Record) error
}

// Session plays rounds over a Transport using a fixed dice set.
type Session struct {
	set      dice.Set
	tr       Transport
	log      zerolog.Logger
	recorder Recorder
}

// New creates a session for an already-validated dice set.
func New(set dice.Set, tr Transport, logger zerolog.Logger, recorder Recorder) *Session {
	return &Session{
		set:      set,
		tr:       tr,
		log:      logger,
		recorder: recorder,
	}
}

// OpponentDie returns the index of the die the opponent receives after the
// counterparty picks index pick: the first die in the set that is not the
// picked one. The rule deliberately ignores who won the first-move guess;
// keep it that way.
func OpponentDie(set dice.Set, pick int) int {
	for i := range set {
		if i != pick {
			return i
		}
	}
	return -1 // unreachable for a valid set and pick
}

// Play runs one complete round. It returns OutcomeAborted (with a nil Record)
// when the counterparty exits, and OutcomeCompleted with the full round
// record otherwise. One round is a complete game; Play does not loop.
func (s *Session) Play(ctx context.Context) (Outcome, *Record, error) {
	rec := &Record{
		ID:       uuid.NewString(),
		PlayedAt: time.Now().UTC(),
	}
	log := s.log.With().Str("round", rec.ID).Logger()

	commit, err := fairness.NewCommitment(2)
	if err != nil {
		return OutcomeAborted, nil, fmt.Errorf("create commitment: %w", err)
	}
	rec.Tag = commit.Tag()

	s.tr.Printf("Let's determine who makes the first move.\n")
	s.tr.Printf("I selected a random value in the range 0..1 (HMAC=%s).\n", rec.Tag)

	guess, aborted, err := s.promptNumber(ctx, "Try to guess my selection (0 or 1, X to exit, ? for help): ", 2)
	if err != nil {
		return OutcomeAborted, nil, err
	}
	if aborted {
		log.Info().Str("phase", "first_move").Msg("session aborted")
		s.tr.Printf("Game over. Come back any time.\n")
		return OutcomeAborted, nil, nil
	}
	rec.Guess = guess

	rec.Value, rec.KeyHex = commit.Reveal()
	s.tr.Printf("My selection: %d (KEY=%s).\n", rec.Value, rec.KeyHex)

	rec.GuessedRight = rec.Guess == rec.Value
	if rec.GuessedRight {
		s.tr.Printf("You guessed right, so you make the first move.\n")
	} else {
		s.tr.Printf("You guessed wrong, so the first move is mine.\n")
	}

	s.tr.Printf("Choose your die:\n")
	for i, d := range s.set {
		s.tr.Printf("%d - %s\n", i, d)
	}
	pick, aborted, err := s.promptNumber(ctx,
		fmt.Sprintf("Your selection (0..%d, X to exit, ? for help): ", len(s.set)-1), len(s.set))
	if err != nil {
		return OutcomeAborted, nil, err
	}
	if aborted {
		log.Info().Str("phase", "selection").Msg("session aborted")
		s.tr.Printf("Game over. Come back any time.\n")
		return OutcomeAborted, nil, nil
	}

	opp := OpponentDie(s.set, pick)
	rec.PlayerDie = s.set[pick].String()
	rec.OpponentDie = s.set[opp].String()
	s.tr.Printf("You take the [%s] die, I take the [%s] die.\n", rec.PlayerDie, rec.OpponentDie)

	rec.PlayerRoll = s.set[pick].Roll()
	rec.OpponentRoll = s.set[opp].Roll()
	s.tr.Printf("Your roll result is %d.\n", rec.PlayerRoll)
	s.tr.Printf("My roll result is %d.\n", rec.OpponentRoll)

	switch {
	case rec.PlayerRoll > rec.OpponentRoll:
		rec.Result = ResultWin
		s.tr.Printf("You win (%d > %d)!\n", rec.PlayerRoll, rec.OpponentRoll)
	case rec.PlayerRoll < rec.OpponentRoll:
		rec.Result = ResultLoss
		s.tr.Printf("I win (%d > %d)!\n", rec.OpponentRoll, rec.PlayerRoll)
	default:
		rec.Result = ResultTie
		s.tr.Printf("It's a tie (%d = %d).\n", rec.PlayerRoll, rec.OpponentRoll)
	}

	log.Info().
		Bool("guessed_right", rec.GuessedRight).
		Str("player_die", rec.PlayerDie).
		Str("opponent_die", rec.OpponentDie).
		Int("player_roll", rec.PlayerRoll).
		Int("opponent_roll", rec.OpponentRoll).
		Str("result", rec.Result).
		Msg("round complete")

	if s.recorder != nil {
		if err := s.recorder.SaveRound(rec); err != nil {
			log.Warn().Err(err).Msg("failed to record round")
		}
	}

	return OutcomeCompleted, rec, nil
}

// promptNumber loops until it reads a number in [0, bound), an abort, or a
// transport failure. Help redisplays the probability table and re-prompts;
// anything unrecognized gets an invalid-input notice and another prompt.
// Nothing in the round advances while the loop runs.
func (s *Session) promptNumber(ctx context.Context, prompt string, bound int) (value int, aborted bool, err error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}

		s.tr.Printf("%s", prompt)
		line, err := s.tr.ReadLine()
		if errors.Is(err, io.EOF) {
			// A closed transport is an abort, not a failure.
			return 0, true, nil
		}
		if err != nil {
			return 0, false, fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case inputAbort:
			return 0, true, nil
		case inputHelp:
			s.tr.Printf("%s", probability.Render(s.set))
			continue
		}

		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 0 || n >= bound {
			s.tr.Printf("Invalid input %q: enter a number between 0 and %d, ? for help, or X to exit.\n", line, bound-1)
			continue
		}
		return n, false, nil
	}
}
