package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/rtt-planner/internal/engine"
)

var (
	verifyPublicKey        string
	verifyRequireSignature bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <plan-file>",
	Short: "Verify a plan's integrity and signature",
	Long: `Recompute the plan_id of a written plan and compare it with the stored value.

With --pubkey, a signed plan's ed25519 signature is checked against the
unsigned plan encoding. With --require-signature, unsigned plans fail.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		cwd, err := workingDir()
		if err != nil {
			return err
		}

		result, err := eng.Verify(cmd.Context(), &engine.VerifyRequest{
			CWD:              cwd,
			PlanPath:         args[0],
			PublicKeyPath:    verifyPublicKey,
			RequireSignature: verifyRequireSignature,
		})
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.PlanID)

		diag := cmd.ErrOrStderr()
		switch {
		case result.SignatureVerified:
			PrintSuccess(diag, "Plan verified: integrity and signature")
		case result.Signed:
			PrintSuccess(diag, "Plan verified: integrity")
			PrintWarning(diag, "Signature present but not checked (no --pubkey)")
		default:
			PrintSuccess(diag, "Plan verified: integrity")
			PrintWarning(diag, "Plan has no signature")
		}
		PrintLabelValue(diag, "CID", result.PlanCID)
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyPublicKey, "pubkey", "", "ed25519 public key file (ed25519:<base64> or base64)")
	verifyCmd.Flags().BoolVar(&verifyRequireSignature, "require-signature", false, "Fail if the plan is unsigned")
}
