// internal/commands/health.go
package qmlc

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	healthyResult   = color.New(color.FgGreen).SprintFunc()
	unhealthyResult = color.New(color.FgRed).SprintFunc()
)

// healthCmd implements 'health', which checks that the comparison API is up.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the comparison API is reachable",
	Long:  `The 'health' command calls GET /health on the configured API base and reports whether the service answered.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		h, err := client.Health(cmd.Context())
		if JSONModeEnabled() {
			if werr := writeJSON(cmd.OutOrStdout(), map[string]any{
				"apiBase": client.Base(),
				"ok":      err == nil && h.OK,
				"service": h.Service,
				"error":   errText(err),
			}); werr != nil {
				return werr
			}
			return err
		}
		if err != nil {
			printf(cmd, "%s %s: %v\n", unhealthyResult("DOWN"), client.Base(), err)
			return err
		}
		if !h.OK {
			printf(cmd, "%s %s: service reported not ok\n", unhealthyResult("DOWN"), client.Base())
			return fmt.Errorf("api at %s is not healthy", client.Base())
		}
		printf(cmd, "%s %s (%s)\n", healthyResult("OK"), client.Base(), h.Service)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
