package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/bedekelly/tinybuf/tinybuf"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <schema.buf> <values.json>",
	Short: "Encode a JSON object through a schema into a binary payload",
	Long: `Encode the fields of a JSON object as a binary payload of the given
schema's record type.

Example:
  tinybuf encode definitions/Person.buf person.json -o person.bin`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := tinybuf.FromFile(args[0])
		if err != nil {
			return err
		}

		values, err := readJSONObject(args[1])
		if err != nil {
			return err
		}

		payload, err := rt.Encode(values)
		if err != nil {
			return err
		}

		if compress, _ := cmd.Flags().GetBool("compress"); compress {
			payload, err = zstdCompress(payload)
			if err != nil {
				return err
			}
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" || out == "-" {
			_, err = cmd.OutOrStdout().Write(payload)
			return err
		}
		return os.WriteFile(out, payload, 0644)
	},
}

func init() {
	encodeCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	encodeCmd.Flags().BoolP("compress", "z", false, "Compress the payload with zstd")
	rootCmd.AddCommand(encodeCmd)
}

// readJSONObject parses a JSON object keeping integer fidelity: numbers
// come back as int64, *big.Int beyond 64 bits, or float64 as a last
// resort — never silently rounded.
func readJSONObject(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return fromJSON(raw).(map[string]any), nil
}

func fromJSON(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if n, ok := new(big.Int).SetString(val.String(), 10); ok {
			return n
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = fromJSON(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = fromJSON(elem)
		}
		return out
	default:
		return v
	}
}

func zstdCompress(payload []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(payload, nil), nil
}
