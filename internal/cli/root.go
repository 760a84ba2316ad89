// Package cli wires the game into a command tree. Only this layer maps
// outcomes to process exit codes: configuration errors exit non-zero after
// echoing a usage example, while a completed round and a user abort both
// exit zero.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/diceproof/diceduel/internal/dice"
	"github.com/diceproof/diceduel/internal/session"
	"github.com/diceproof/diceduel/internal/store"
)

const exampleArgs = "2,2,4,4,9,9 6,8,1,1,8,6 7,5,3,7,5,3"

// errConfiguration marks errors already reported to the operator in full;
// Execute only needs to turn them into a failing exit code.
var errConfiguration = errors.New("invalid dice configuration")

var rootCmd = &cobra.Command{
	Use:   "diceduel <die> <die> <die> [die...]",
	Short: "Play a provably fair non-transitive dice duel",
	Long: `diceduel plays one round of a two-party dice duel in which the first move
is decided by an HMAC-SHA256 commit/reveal exchange, so neither side can bias
who goes first. Each die is a comma-separated list of exactly 6 integers and
at least 3 dice are required.

During any prompt: enter a number to answer, ? to see the win-probability
table, or X to exit.`,
	Example:       "  diceduel " + exampleArgs,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDuel,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("history", "", "path to the sqlite round history (empty disables recording)")

	viper.SetEnvPrefix("DICEDUEL")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("history", rootCmd.PersistentFlags().Lookup("history"))

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(historyCmd)
}

// Execute runs the command tree and maps errors to the process exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errConfiguration) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func runDuel(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	set, err := dice.ParseSet(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		fmt.Fprintf(os.Stderr, "example: diceduel %s\n", exampleArgs)
		return errConfiguration
	}

	var recorder session.Recorder
	if path := viper.GetString("history"); path != "" {
		db, err := store.NewSQLiteDB(path)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("migrate history: %w", err)
		}
		recorder = db
	}

	transport := session.NewLineTransport(os.Stdin, os.Stdout)
	sess := session.New(set, transport, logger, recorder)

	outcome, record, err := sess.Play(cmd.Context())
	if err != nil {
		return err
	}
	if outcome == session.OutcomeAborted {
		logger.Debug().Msg("session aborted by the counterparty")
		return nil
	}

	logger.Debug().Str("round", record.ID).Str("result", record.Result).Msg("session complete")
	return nil
}
