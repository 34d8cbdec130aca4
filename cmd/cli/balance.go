package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"cryptotracker.io/internal/domain/entity"
)

var balanceJSON bool //nolint:gochecknoglobals

var balanceCmd = &cobra.Command{ //nolint:gochecknoglobals
	Use:   "balance <crypto> <address>...",
	Short: "Show the balance summary of one or more addresses",
	Long: `Show the balance summary of one or more addresses.

Addresses are looked up one after another, one explorer request each.

Examples:
  cryptotracker balance bitcoin 12cbQLTFMXRnSzktFkuoG3eHoMeFtpTu3S
  cryptotracker balance litecoin <addr1> <addr2> --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runBalance,
}

// balanceResult is the outcome of one address lookup
type balanceResult struct {
	Address string          `json:"address"`
	Summary *entity.Address `json:"summary,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func init() { //nolint:gochecknoinits
	balanceCmd.Flags().BoolVar(&balanceJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}

	cryptoType := strings.ToLower(args[0])
	addresses := args[1:]

	var bar *progressbar.ProgressBar
	if len(addresses) > 1 {
		bar = progressbar.NewOptions(len(addresses),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Fetching balances"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish())
	}

	results := make([]balanceResult, 0, len(addresses))
	failed := 0
	for _, address := range addresses {
		summary, err := a.getBalance.Execute(cmd.Context(), cryptoType, address)
		result := balanceResult{Address: address, Summary: summary}
		if err != nil {
			result.Error = err.Error()
			failed++
		}
		results = append(results, result)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if balanceJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode balances: %w", err)
		}
	} else {
		printBalances(cmd.OutOrStdout(), cryptoType, results)
	}

	if failed == len(results) {
		return errors.New("no balance could be fetched")
	}
	return nil
}

func printBalances(w io.Writer, cryptoType string, results []balanceResult) {
	header := color.New(color.FgCyan, color.Bold).SprintFunc()
	failure := color.New(color.FgRed).SprintFunc()

	_, _ = fmt.Fprintf(w, "%s\n\n", header("Balances ("+cryptoType+")"))
	for _, r := range results {
		if r.Summary == nil {
			_, _ = fmt.Fprintf(w, "%s %s\n   %s\n\n", failure("x"), r.Address, failure(r.Error))
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\n", r.Address)
		_, _ = fmt.Fprintf(w, "   Balance:  %d (USD %s)\n", r.Summary.Balance, r.Summary.BalanceUSD.StringFixed(2))
		_, _ = fmt.Fprintf(w, "   Received: %d (USD %s)\n\n", r.Summary.Received, r.Summary.ReceivedUSD.StringFixed(2))
	}
}
