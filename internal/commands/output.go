// internal/commands/output.go
package qmlc

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/CodeMeister99/QML-Compare/internal/api"
)

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// openDataset reads the CSV named by the first argument.
func openDataset(args []string) (api.Upload, error) {
	if len(args) == 0 {
		return api.Upload{}, fmt.Errorf("please upload a dataset first")
	}
	return api.OpenUpload(args[0])
}

// errText renders an error for JSON output, or "" when there is none.
func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// printf writes to the command's stdout.
func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
