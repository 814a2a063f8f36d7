package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bedekelly/tinybuf/tinybuf"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
)

// Zstd frame magic number; payloads starting with it are decompressed
// transparently.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <schema.buf> <payload>",
	Short: "Decode a binary payload and print the record",
	Long: `Decode a binary payload through the given schema and print the
record rendering, or JSON with --json. Zstd-compressed payloads are
detected and decompressed automatically.

Example:
  tinybuf decode definitions/Person.buf person.bin --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := tinybuf.FromFile(args[0])
		if err != nil {
			return err
		}

		payload, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		if bytes.HasPrefix(payload, zstdMagic) {
			payload, err = zstdDecompress(payload)
			if err != nil {
				return err
			}
		}

		rec, err := rt.Decode(payload)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out, err := json.MarshalIndent(toJSON(rec), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), rec.String())
		return nil
	},
}

func init() {
	decodeCmd.Flags().Bool("json", false, "Print the decoded record as JSON")
	rootCmd.AddCommand(decodeCmd)
}

// toJSON flattens nested records into plain maps for JSON output.
// big.Int values marshal as exact JSON numbers already.
func toJSON(v any) any {
	switch val := v.(type) {
	case *tinybuf.Record:
		m := val.Map()
		out := make(map[string]any, len(m))
		for k, elem := range m {
			out[k] = toJSON(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = toJSON(elem)
		}
		return out
	default:
		return v
	}
}

func zstdDecompress(payload []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(payload, nil)
}
