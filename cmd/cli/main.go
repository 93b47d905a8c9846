package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "saldo-cli",
		Short: "Saldo CLI tool",
		Long:  `A command line interface for the saldo balance tracking API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the saldo API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	balanceCmd := &cobra.Command{
		Use:   "balance [kind]",
		Short: "Show register balances",
		Long:  "Shows every register, or a single one when conta or cofre is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showBalance(args[0])
			}

			return showBalances()
		},
	}

	var (
		reconcileFrom    string
		reconcileTo      string
		reconcileCompany string
	)

	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute register balances from the record history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return reconcile(reconcileFrom, reconcileTo, reconcileCompany)
		},
	}
	reconcileCmd.Flags().StringVar(&reconcileFrom, "from", "", "Window start (YYYY-MM-DD)")
	reconcileCmd.Flags().StringVar(&reconcileTo, "to", "", "Window end (YYYY-MM-DD)")
	reconcileCmd.Flags().StringVar(&reconcileCompany, "company", "", "Restrict to one company")

	driftCmd := &cobra.Command{
		Use:   "drift",
		Short: "Compare stored registers with the recomputed history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return driftReport()
		},
	}

	rootCmd.AddCommand(balanceCmd, reconcileCmd, driftCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func getJSON(path string, out any) error {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

func showBalances() error {
	var result struct {
		Balances []struct {
			Kind   string `json:"kind"`
			Amount string `json:"amount"`
		} `json:"balances"`
	}

	if err := getJSON("/api/v1/balances", &result); err != nil {
		return err
	}

	for _, b := range result.Balances {
		fmt.Printf("%-8s %s\n", b.Kind, b.Amount)
	}

	return nil
}

func showBalance(kind string) error {
	var result struct {
		Kind   string `json:"kind"`
		Amount string `json:"amount"`
	}

	if err := getJSON("/api/v1/balances/"+url.PathEscape(kind), &result); err != nil {
		return err
	}

	fmt.Printf("%-8s %s\n", result.Kind, result.Amount)

	return nil
}

func reconcile(from, to, company string) error {
	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if to != "" {
		query.Set("to", to)
	}
	if company != "" {
		query.Set("company", company)
	}

	path := "/api/v1/reconciliation"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var result struct {
		Conta string `json:"conta"`
		Cofre string `json:"cofre"`
	}

	if err := getJSON(path, &result); err != nil {
		return err
	}

	fmt.Printf("conta    %s\ncofre    %s\n", result.Conta, result.Cofre)

	return nil
}

func driftReport() error {
	var result struct {
		Entries []struct {
			Kind     string `json:"kind"`
			Stored   string `json:"stored"`
			Computed string `json:"computed"`
			Drift    string `json:"drift"`
			InSync   bool   `json:"in_sync"`
		} `json:"entries"`
		InSync bool `json:"in_sync"`
	}

	if err := getJSON("/api/v1/reconciliation/report", &result); err != nil {
		return err
	}

	fmt.Printf("%-8s %-15s %-15s %-15s %s\n", "kind", "stored", "computed", "drift", "in_sync")
	for _, e := range result.Entries {
		fmt.Printf("%-8s %-15s %-15s %-15s %v\n", e.Kind, e.Stored, e.Computed, e.Drift, e.InSync)
	}

	if !result.InSync {
		fmt.Println("\nDRIFT DETECTED: stored registers disagree with the record history")
		os.Exit(1)
	}

	fmt.Println("\nregisters in sync")

	return nil
}
