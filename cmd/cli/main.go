package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL  string
	tenantID string
	timeout  time.Duration
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dealerledger-cli",
		Short: "DealerLedger CLI tool",
		Long:  `A command line interface for interacting with the DealerLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the DealerLedger API")
	rootCmd.PersistentFlags().StringVar(&tenantID, "tenant", "", "Tenant ID sent with every request")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	vehicleCmd := &cobra.Command{
		Use:   "vehicle",
		Short: "Vehicle operations",
	}
	vehicleCmd.AddCommand(vehicleReportCmd())
	rootCmd.AddCommand(vehicleCmd)

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Installment plan operations",
	}
	planCmd.AddCommand(planStatusCmd())
	rootCmd.AddCommand(planCmd)

	return rootCmd
}

func vehicleReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <vehicle-id>",
		Short: "Show the profitability report for a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint("/api/v1/vehicles/" + args[0] + "/report")
		},
	}
}

func planStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <plan-id>",
		Short: "Show the payment status of an installment plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint("/api/v1/plans/" + args[0] + "/status")
		},
	}
}

func getAndPrint(path string) error {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if tenantID != "" {
		req.Header.Set("X-Tenant-ID", tenantID)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	printJSON(result)

	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
