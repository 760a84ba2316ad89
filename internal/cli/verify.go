package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diceproof/diceduel/internal/fairness"
)

var (
	verifyKey   string
	verifyValue int
	verifyTag   string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Recompute a revealed commitment and check it against its tag",
	Long: `verify recomputes HMAC-SHA256(key, value) from the key and value the
program revealed after your guess and compares the result to the tag it
disclosed before your guess. A match proves the selection was not changed
after the fact.`,
	Example:       "  diceduel verify --key <hex> --value 1 --tag <hex>",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := fairness.Verify(verifyKey, verifyValue, verifyTag)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("tag mismatch: the revealed key and value do not reproduce the disclosed tag")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "commitment verified: the tag matches the revealed key and value")
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyKey, "key", "", "revealed key, hex encoded")
	verifyCmd.Flags().IntVar(&verifyValue, "value", 0, "revealed value")
	verifyCmd.Flags().StringVar(&verifyTag, "tag", "", "disclosed HMAC tag, hex encoded")
	_ = verifyCmd.MarkFlagRequired("key")
	_ = verifyCmd.MarkFlagRequired("tag")
}
