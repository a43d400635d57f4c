// Command csvclean cleans a DealMachine contact-export CSV from the
// command line, without running the web server.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reinbox/csvclean/internal/cleaner"
)

var (
	outputPath  string
	policyName  string
	trim        bool
	dropNoEmail bool
	filterValid bool
	dedupe      bool
)

var rootCmd = &cobra.Command{
	Use:           "csvclean",
	Short:         "Clean DealMachine contact exports for email campaigns",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var cleanCmd = &cobra.Command{
	Use:   "clean <input.csv>",
	Short: "Explode contacts to one email per row, filter, and dedupe",
	Long: `Reads a DealMachine contact export, explodes every contact_N_email /
contact_N_flags pair into one row per email address, drops invalid or
flag-excluded rows per the selected policy, and writes the cleaned CSV.

Stage-by-stage row counts are printed to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&outputPath, "output", "o", cleaner.DefaultFilename, "output file (use - for stdout)")
	cleanCmd.Flags().StringVar(&policyName, "policy", "owners", "which contacts to keep: owners removes renter-flagged rows, renters removes owner-flagged rows")
	cleanCmd.Flags().BoolVar(&trim, "trim", true, "trim spaces in text fields")
	cleanCmd.Flags().BoolVar(&dropNoEmail, "drop-no-email", true, "drop rows with no email after explode")
	cleanCmd.Flags().BoolVar(&filterValid, "filter-valid", true, "keep only valid-looking emails")
	cleanCmd.Flags().BoolVar(&dedupe, "dedupe", true, "de-duplicate by email")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	policy, err := cleaner.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	res, err := cleaner.Run(data, cleaner.Options{
		Trim:              trim,
		DropMissingEmail:  dropNoEmail,
		FilterValidEmails: filterValid,
		DedupeByEmail:     dedupe,
		Policy:            policy,
	})
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	if res.SchemaMismatch {
		fmt.Fprintln(errOut, "warning: no contact_N_email columns found; output is a pass-through of the input")
	} else {
		fmt.Fprintf(errOut, "detected contact slots: %s\n", joinInts(res.Slots))
	}
	for _, sc := range res.Stages {
		fmt.Fprintf(errOut, "%-20s %d -> %d\n", sc.Stage, sc.Before, sc.After)
	}
	fmt.Fprintf(errOut, "%d rows ready\n", len(res.Table.Rows))

	if outputPath == "-" {
		return cleaner.WriteCSV(cmd.OutOrStdout(), res.Table)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outputPath, err)
	}
	if err := cleaner.WriteCSV(f, res.Table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
