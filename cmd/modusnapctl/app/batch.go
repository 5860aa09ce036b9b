package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MTheUnexpected-1/ModuSnap-ComfyUI-Manager/pkg/manager"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Apply a lifecycle operation to a batch of content packs",
	Long: `Submit a batch install, uninstall or update for a list of pack ids.

Pack ids are given as arguments and may themselves be comma-separated.
The engine resolves pack metadata and performs the operation server-side;
its response is printed verbatim (truncated when oversized). Repeating a
batch is safe only if the engine makes it so; no retries happen here.`,
}

var batchInstallCmd = &cobra.Command{
	Use:   "install <pack-id>...",
	Short: "Install content packs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

var batchUninstallCmd = &cobra.Command{
	Use:   "uninstall <pack-id>...",
	Short: "Uninstall content packs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

var batchUpdateCmd = &cobra.Command{
	Use:   "update <pack-id>...",
	Short: "Update content packs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.AddCommand(batchInstallCmd)
	batchCmd.AddCommand(batchUninstallCmd)
	batchCmd.AddCommand(batchUpdateCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	mode, err := manager.ParseBatchMode(cmd.Name())
	if err != nil {
		return err
	}

	client, endpoint, err := loadSettings()
	if err != nil {
		return err
	}

	report := client.BatchOperate(cmd.Context(), endpoint, strings.Join(args, ","), mode)

	fmt.Println(report.Details)
	if !report.OK {
		return fmt.Errorf("batch %s failed", mode)
	}
	return nil
}
