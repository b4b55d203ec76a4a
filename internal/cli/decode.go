package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/spf13/cobra"
)

// DecodedTransaction is the JSON form printed by decode.
type DecodedTransaction struct {
	Type         string         `json:"type"`
	Transaction  tx.Transaction `json:"transaction"`
	SigningBytes string         `json:"signingBytes"`
	WireLength   int            `json:"wireLength"`
}

var decodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decode a wire-encoded transaction",
	Long: `Decode a hex-encoded transaction using the configured chain rules and
print it as JSON together with its signing bytes and wire length.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(args[0]), "0x"))
		if err != nil {
			return fmt.Errorf("argument is not hex: %w", err)
		}

		_, params, logger, closeLog, err := loadParams()
		if err != nil {
			return err
		}
		defer closeLog()
		defer logger.Sync()

		decoded, err := decodeTransaction(tx.NewCodec(params), raw)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(decoded, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render transaction: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func decodeTransaction(codec *tx.Codec, raw []byte) (*DecodedTransaction, error) {
	t, err := codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}
	signing, err := codec.SigningBytes(t)
	if err != nil {
		return nil, err
	}
	length, err := codec.WireLength(t)
	if err != nil {
		return nil, err
	}
	return &DecodedTransaction{
		Type:         t.TxType().String(),
		Transaction:  t,
		SigningBytes: hex.EncodeToString(signing),
		WireLength:   length,
	}, nil
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
