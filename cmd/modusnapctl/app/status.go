package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MTheUnexpected-1/ModuSnap-ComfyUI-Manager/pkg/manager"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show manager engine health",
	Long: `Query the manager engine's status endpoint and report its coarse health
state (active, degraded or down), hardware profile and node count.

A down engine is reported as a result, not an error: the command prints
the report and exits non-zero.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().String("format", "text", "Output format (text, json)")
}

func runStatus(cmd *cobra.Command, _ []string) error {
	client, endpoint, err := loadSettings()
	if err != nil {
		return err
	}

	report := client.Status(cmd.Context(), endpoint)

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format status report: %w", err)
		}
		fmt.Println(string(output))
	} else {
		fmt.Printf("state:            %s\n", report.State)
		fmt.Printf("hardware profile: %s\n", report.HardwareProfile)
		fmt.Printf("node count:       %d\n", report.NodeCount)
	}

	if report.State == manager.HealthDown {
		return fmt.Errorf("manager engine at %s is down", endpoint.BaseURL)
	}
	return nil
}
