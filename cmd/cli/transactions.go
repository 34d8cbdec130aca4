package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cryptotracker.io/internal/domain/entity"
	"cryptotracker.io/internal/infrastructure/explorer"
)

var ( //nolint:gochecknoglobals
	limitFlag        int
	offsetFlag       int
	transactionsJSON bool
)

var transactionsCmd = &cobra.Command{ //nolint:gochecknoglobals
	Use:   "transactions <crypto> <address>",
	Short: "Show the transaction history of an address",
	Long: `Show the transaction history of an address in explorer order.

--limit caps the highest index returned, not the number of rows after --offset:
--limit 10 --offset 5 prints entries 5 to 9, and an offset of 10 or more prints nothing.

Examples:
  cryptotracker transactions bitcoin 12cbQLTFMXRnSzktFkuoG3eHoMeFtpTu3S
  cryptotracker transactions bitcoin 12cbQLTFMXRnSzktFkuoG3eHoMeFtpTu3S --limit 20 --json`,
	Args: cobra.ExactArgs(2),
	RunE: runTransactions,
}

func init() { //nolint:gochecknoinits
	transactionsCmd.Flags().IntVarP(&limitFlag, "limit", "l", 0, "page limit (default from explorer.defaultPageLimit)")
	transactionsCmd.Flags().IntVarP(&offsetFlag, "offset", "o", 0, "index of the first transaction")
	transactionsCmd.Flags().BoolVar(&transactionsJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(transactionsCmd)
}

func runTransactions(cmd *cobra.Command, args []string) error {
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}

	limit := limitFlag
	if limit == 0 {
		limit = a.cfg.Explorer.DefaultPageLimit
	}

	query := entity.TransactionQuery{
		CryptoType: strings.ToLower(args[0]),
		Address:    args[1],
		PageLimit:  limit,
		Offset:     offsetFlag,
	}
	transactions, err := a.listTransactions.Execute(cmd.Context(), query)
	if err != nil {
		return err
	}

	if transactionsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(transactions); err != nil {
			return fmt.Errorf("failed to encode transactions: %w", err)
		}
		return nil
	}

	printTransactions(cmd.OutOrStdout(), query, transactions)
	return nil
}

func printTransactions(w io.Writer, query entity.TransactionQuery, transactions []entity.Transaction) {
	header := color.New(color.FgCyan, color.Bold).SprintFunc()
	credit := color.New(color.FgGreen).SprintFunc()
	debit := color.New(color.FgRed).SprintFunc()

	_, _ = fmt.Fprintf(w, "%s\n", header(fmt.Sprintf("Transactions of %s (%s)", query.Address, query.CryptoType)))
	if len(transactions) == 0 {
		_, _ = fmt.Fprintf(w, "No transactions (limit %d, offset %d)\n", query.PageLimit, query.Offset)
		return
	}

	for _, tx := range transactions {
		when := "-"
		if tx.Time != nil {
			when = tx.Time.Format(explorer.DateFormat)
		}
		change := fmt.Sprintf("%+d", tx.BalanceChange)
		if tx.BalanceChange < 0 {
			change = debit(change)
		} else {
			change = credit(change)
		}
		_, _ = fmt.Fprintf(w, "%-19s  %-10s  %s  %s\n", when, tx.BlockID, tx.Hash, change)
	}
}
