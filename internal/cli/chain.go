package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/LeJamon/goQortald/internal/core/block"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Apply the genesis block to an empty store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := openNode(cmd.Context())
		if err != nil {
			return err
		}
		defer n.Close()

		genesis, err := n.processor.Bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized chain: genesis block %s with %d transactions\n",
			hex.EncodeToString(genesis.Signature), len(genesis.Transactions))
		return nil
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Apply blocks from a JSON file",
	Long: `Apply blocks read from a JSON array of objects with "timestamp",
"transactions" (hex wire encodings) and an optional "height". Blocks are
applied in order; the first invalid block stops the run and leaves the
store at the last good block.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encoded, err := readBlocks(args[0])
		if err != nil {
			return err
		}

		n, err := openNode(cmd.Context())
		if err != nil {
			return err
		}
		defer n.Close()

		for i, e := range encoded {
			b, err := e.Decode(n.codec)
			if err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			if err := n.processor.Process(cmd.Context(), b); err != nil {
				if verr, ok := block.AsValidationError(err); ok {
					n.logger.Info("Rejected block",
						zap.Int("block", i),
						zap.Int("index", verr.Index),
						zap.Stringer("result", verr.Result))
				}
				return fmt.Errorf("block %d: %w", i, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied block %d with %d transactions\n", b.Height, len(b.Transactions))
		}
		return nil
	},
}

var orphanCmd = &cobra.Command{
	Use:   "orphan [n]",
	Short: "Revert the top n blocks (default 1)",
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count := 1
		if len(args) == 1 {
			var err error
			if count, err = strconv.Atoi(args[0]); err != nil || count < 1 {
				return fmt.Errorf("invalid block count %q", args[0])
			}
		}

		n, err := openNode(cmd.Context())
		if err != nil {
			return err
		}
		defer n.Close()

		for i := 0; i < count; i++ {
			height, err := n.processor.Orphan(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Orphaned block %d\n", height)
		}
		return nil
	},
}

func readBlocks(path string) ([]block.Encoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blocks file %s: %w", path, err)
	}
	var encoded []block.Encoded
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, fmt.Errorf("failed to parse blocks file %s: %w", path, err)
	}
	return encoded, nil
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(orphanCmd)
}
