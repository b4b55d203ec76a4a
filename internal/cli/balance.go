package cli

import (
	"fmt"

	"github.com/LeJamon/goQortald/internal/crypto"
	"github.com/LeJamon/goQortald/internal/repository"
	"github.com/spf13/cobra"
)

var balanceAsset int64

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Show the confirmed balances of an account",
	Long: `Show every non-zero balance of an account, or the balance of a single
asset when --asset is given. Asset 0 is the native coin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address := args[0]
		if !crypto.IsValidAddress(address) {
			return fmt.Errorf("invalid address %q", address)
		}

		n, err := openNode(cmd.Context())
		if err != nil {
			return err
		}
		defer n.Close()

		out := cmd.OutOrStdout()
		single := cmd.Flags().Changed("asset")
		return n.manager.WithRepository(cmd.Context(), func(repo repository.Repository) error {
			if single {
				balance, err := repo.Accounts().GetBalance(cmd.Context(), address, balanceAsset)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "asset %d: %s\n", balanceAsset, balance)
				return nil
			}

			balances, err := repo.Accounts().GetBalances(cmd.Context(), address)
			if err != nil {
				return err
			}
			if len(balances) == 0 {
				fmt.Fprintf(out, "%s has no balances\n", address)
			}
			for _, b := range balances {
				fmt.Fprintf(out, "asset %d: %s\n", b.AssetID, b.Balance)
			}
			return nil
		})
	},
}

func init() {
	balanceCmd.Flags().Int64Var(&balanceAsset, "asset", 0, "show only this asset id")
	rootCmd.AddCommand(balanceCmd)
}
