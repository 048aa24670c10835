// Package cli implements the command-line interface for plainterms.
// Commands depend only on driving ports; the composition root wires
// concrete services in before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
	"github.com/plainterms/plainterms-cli/internal/logger"
)

// version is set by the composition root at startup.
var version = "dev"

// Services the commands call. Nil services make the corresponding
// commands fail with a configuration error instead of panicking.
var (
	bundleService       driving.BundleService
	retrievalService    driving.RetrievalService
	verificationService driving.VerificationService
	askService          driving.AskService
)

// Services bundles the driving ports the CLI depends on. Ask may be nil
// when no LLM is configured; the ask command reports that to the user.
type Services struct {
	Bundle       driving.BundleService
	Retrieval    driving.RetrievalService
	Verification driving.VerificationService
	Ask          driving.AskService
}

// SetServices wires the driving services into the commands.
func SetServices(s Services) {
	bundleService = s.Bundle
	retrievalService = s.Retrieval
	verificationService = s.Verification
	askService = s.Ask
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "plainterms",
	Short: "Ask questions about legal documents with verified citations",
	Long: `Plainterms ingests legal documents, splits them into citable segments,
and answers questions about them with citations that are verified against
the source text. Answers that cannot be grounded are flagged, not hidden.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output on stderr")
}

// Execute runs the root command and returns its error.
func Execute() error {
	return rootCmd.Execute()
}
