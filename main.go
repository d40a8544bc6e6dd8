// =============================================================================
// Community Order Filter - Main Entry Point
// =============================================================================
//
// USAGE:
//   orderfilter process --orders export.xlsx --directory cust.xlsx
//   orderfilter serve                 - run the upload service
//   orderfilter version               - display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : reading, reconciliation, report writing, HTTP service
//   - pkg/           : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/community-order-filter/cmd"
)

func main() {
	cmd.Execute()
}
