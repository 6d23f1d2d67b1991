// internal/commands/compare.go
package qmlc

import (
	"github.com/spf13/cobra"

	"github.com/CodeMeister99/QML-Compare/internal/api"
	"github.com/CodeMeister99/QML-Compare/internal/appconfig"
	"github.com/CodeMeister99/QML-Compare/internal/catalog"
	"github.com/CodeMeister99/QML-Compare/internal/compare"
)

// compareCmd implements 'compare', which trains one classical and one quantum
// model on the dataset through the API and reports the result.
var compareCmd = &cobra.Command{
	Use:   "compare <csv>",
	Short: "Compare a classical and a quantum model on a dataset",
	Long: `The 'compare' command validates the chosen models and parameters, uploads the CSV to /compare,
computes micro-averaged ROC and PR curves from the returned probabilities, and prints the verdict.

Parameters are given as repeated key=value pairs, for example:
  qmlc compare iris.csv --classical svm --cparam C=2 --quantum qnn --qparam layers=3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := openDataset(args)
		if err != nil {
			return err
		}
		cfg := *GetConfig()
		if cmd.Flags().Changed("steps") {
			cfg.CurveSteps, _ = cmd.Flags().GetInt("steps")
		}

		payload, err := comparePayload(cmd, &cfg)
		if err != nil {
			return err
		}
		run, err := compare.NewRunner(newClient(), &cfg).Run(cmd.Context(), file, payload)
		if err != nil {
			return err
		}
		plots, _ := cmd.Flags().GetBool("plots")
		return presentRun(cmd, run, readReportFlags(cmd), plots)
	},
}

func comparePayload(cmd *cobra.Command, cfg *appconfig.Config) (api.ComparePayload, error) {
	classical, _ := cmd.Flags().GetString("classical")
	quantum, _ := cmd.Flags().GetString("quantum")
	if classical == "" {
		classical = cfg.DefaultClassical()
	}
	if quantum == "" {
		quantum = cfg.DefaultQuantum()
	}
	cpairs, _ := cmd.Flags().GetStringArray("cparam")
	qpairs, _ := cmd.Flags().GetStringArray("qparam")
	cparams, err := catalog.ParseAssignments(cpairs)
	if err != nil {
		return api.ComparePayload{}, err
	}
	qparams, err := catalog.ParseAssignments(qpairs)
	if err != nil {
		return api.ComparePayload{}, err
	}
	target, _ := cmd.Flags().GetString("target")
	return api.ComparePayload{
		ClassicalModel:  classical,
		QuantumModel:    quantum,
		ClassicalParams: cparams,
		QuantumParams:   qparams,
		TargetColumn:    target,
	}, nil
}

func init() {
	compareCmd.Flags().String("classical", "", "classical model key (see 'qmlc models list')")
	compareCmd.Flags().String("quantum", "", "quantum model key (see 'qmlc models list')")
	compareCmd.Flags().StringArray("cparam", nil, "classical parameter as key=value (repeatable)")
	compareCmd.Flags().StringArray("qparam", nil, "quantum parameter as key=value (repeatable)")
	compareCmd.Flags().String("target", "", "target column (guessed when empty)")
	compareCmd.Flags().Int("steps", 0, "thresholds swept per curve (0 = configured default)")
	compareCmd.Flags().Bool("plots", true, "draw ASCII ROC and PR plots")
	addReportFlags(compareCmd, true)
	rootCmd.AddCommand(compareCmd)
}
