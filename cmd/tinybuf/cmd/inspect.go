package cmd

import (
	"fmt"
	"io"

	"github.com/bedekelly/tinybuf/tinybuf"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <schema.buf>",
	Short: "Resolve a schema and print its descriptor tree",
	Long: `Resolve a schema file, including its transitive "require" imports,
and print the resulting record type.

Example:
  tinybuf inspect definitions/Club.buf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := tinybuf.FromFile(args[0])
		if err != nil {
			return err
		}
		printRecordType(cmd.OutOrStdout(), rt, "")
		return nil
	},
}

func printRecordType(w io.Writer, rt *tinybuf.RecordType, indent string) {
	fmt.Fprintf(w, "%s%s\n", indent, rt.Name())
	for _, f := range rt.Fields() {
		fmt.Fprintf(w, "%s  %d. %s: %s\n", indent, f.Key, f.Name, f.Type)
		if nested := recordOf(f.Type); nested != nil {
			printRecordType(w, nested, indent+"  ")
		}
	}
}

// recordOf digs through list/optional wrappers to a nested record type.
func recordOf(t *tinybuf.Type) *tinybuf.RecordType {
	for t != nil {
		switch t.Kind() {
		case tinybuf.KindRecord:
			return t.Record()
		case tinybuf.KindList, tinybuf.KindOptional:
			t = t.Elem()
		default:
			return nil
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
