package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/diceproof/diceduel/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded rounds from the history database",
	Long: `history lists past rounds from the sqlite ledger written when the game
runs with --history. Each row carries the disclosed commitment artifacts, so
any listed round can be re-checked with the verify command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("history")
		if path == "" {
			return fmt.Errorf("no history database configured; pass --history or set DICEDUEL_HISTORY")
		}

		db, err := store.NewSQLiteDB(path)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("migrate history: %w", err)
		}

		records, err := db.ListRounds(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no rounds recorded yet")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 0, 2, ' ', 0)
		fmt.Fprintln(w, "played\tresult\tguess\tvalue\tyour die\tmy die\trolls\tround id")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%d:%d\t%s\n",
				rec.PlayedAt.Local().Format(time.DateTime), rec.Result,
				rec.Guess, rec.Value, rec.PlayerDie, rec.OpponentDie,
				rec.PlayerRoll, rec.OpponentRoll, rec.ID)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of rounds to list")
}
