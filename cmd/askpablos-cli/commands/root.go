package commands

import (
	"context"
	"fmt"
	"os"

	"askpablos-go/lib/askpablos"
	"askpablos-go/lib/restyutil"
	"askpablos-go/lib/telemetry"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "askpablos-cli",
	Short: "askpablos-cli fetches pages through the AskPablos proxy service.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
		if verbose {
			askpablos.SetRestyInstrumentOutput(
				restyutil.NewFilesystemOutput(".dev/resty/askpablos"),
			)
			telemetry.InstrumentPerfStats(cmd.Context())
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false,
		"enable debug logging and proxy exchange dumps",
	)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
