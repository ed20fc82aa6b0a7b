package cli

import (
	"os"

	"github.com/andiamoid/andiamo-admin/internal/buildinfo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build version, date and commit",
	Run: func(cmd *cobra.Command, args []string) {
		buildinfo.PrintBuildData(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
