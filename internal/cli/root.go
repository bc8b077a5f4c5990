package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/rtt-planner/internal/engine"
)

var (
	// Global flags
	configPath string
)

const usageText = `rtt-planner - route plan generator

usage: rtt-planner [--] <routes.json> <manifests_dir> <out_plan.json> [sign_key]
       rtt-planner verify <plan.json> [--pubkey FILE] [--require-signature]

Arguments:
  routes.json      Input routes file
  manifests_dir    Directory containing manifests (validated, not read)
  out_plan.json    Output plan file
  sign_key         Optional signing key reference passed to rtt-sign

A routes file named "verify" or "help" is taken as a subcommand; put --
before the arguments to plan from such a file.
`

// rootCmd is the root command for rtt-planner.
var rootCmd = &cobra.Command{
	Use:     "rtt-planner <routes-file> <manifests-dir> <output-file> [signing-key-reference]",
	Version: "dev",
	Short:   "Generate content-addressed route plans",
	Long: `rtt-planner reads a route list and writes a plan document whose plan_id is
the sha256 content hash of its canonical encoding.

If a signing key reference is given, the external rtt-sign tool is asked to
sign the written plan. Signing failures are reported as warnings and leave
the unsigned plan in place.

The plan_id is printed on stdout; progress and warnings go to stderr.

A routes file named "verify" or "help" is taken as a subcommand unless the
arguments are preceded by --.`,
	Args:          planArgs,
	RunE:          runPlan,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// planArgs accepts three paths and an optional signing key reference.
func planArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		_, _ = io.WriteString(cmd.ErrOrStderr(), usageText)
		return fmt.Errorf("%w: expected 3 or 4 arguments, got %d", engine.ErrArgument, len(args))
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	cwd, err := workingDir()
	if err != nil {
		return err
	}

	req := &engine.PlanRequest{
		CWD:          cwd,
		RoutesPath:   args[0],
		ManifestsDir: args[1],
		OutputPath:   args[2],
	}
	if len(args) > 3 {
		req.Sign = true
		req.SigningKey = args[3]
	}

	result, err := eng.Plan(cmd.Context(), req)
	if err != nil {
		return err
	}

	diag := cmd.ErrOrStderr()
	if req.Sign {
		PrintInfo(diag, "Signing plan with provided key")
		if result.Signed {
			PrintSuccess(diag, "Plan signed successfully")
		} else {
			PrintWarning(diag, fmt.Sprintf("Signing failed: %v", result.SignError))
			PrintWarning(diag, "Plan written without signature")
		}
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.PlanID)

	PrintSuccess(diag, fmt.Sprintf("Plan generated: %s (%s)",
		result.OutputPath, PrintCount(len(result.Plan.RoutesAdd), "route", "routes")))
	PrintLabelValue(diag, "CID", result.PlanCID)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to planner config file (default $RTT_PLANNER_CONFIG)")

	rootCmd.AddCommand(verifyCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
