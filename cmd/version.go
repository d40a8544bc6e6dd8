// =============================================================================
// Community Order Filter - Version Command
// =============================================================================
//
// Build with:
//   go build -ldflags "-X 'github.com/ginjaninja78/community-order-filter/cmd.Version=1.2.0'"
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is the application version, set at build time.
var Version = "dev"

// BuildDate is set at build time.
var BuildDate = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Community Order Filter")
		fmt.Printf("Version:    %s\n", Version)
		fmt.Printf("Build Date: %s\n", BuildDate)
		fmt.Printf("Go Version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
