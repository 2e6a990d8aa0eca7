package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vietddude/gateway/internal/core/domain"
	"github.com/vietddude/gateway/internal/diag"
	"github.com/vietddude/gateway/internal/infra/gateway"
)

var callTimeout time.Duration

var callCmd = &cobra.Command{
	Use:   "call <method> [params-json]",
	Short: "Execute one proxy API call through the failover client",
	Args:  cobra.RangeArgs(1, 2),
	Run:   runCall,
}

func init() {
	// No timeout by default: the client itself imposes none, worst case is
	// 9 attempts of 10s each plus backoff.
	callCmd.Flags().DurationVar(&callTimeout, "timeout", 0, "overall deadline for the call (0 = none)")
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) {
	cfg := setup()

	req := domain.Request{Method: args[0]}
	if len(args) == 2 {
		var params any
		if err := json.Unmarshal([]byte(args[1]), &params); err != nil {
			slog.Error("Invalid params JSON", "error", err)
			os.Exit(1)
		}
		req.Params = params
	}

	ctx := context.Background()
	if callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, callTimeout)
		defer cancel()
	}

	client := gateway.NewClient(cfg.Gateway)
	resp, err := client.FetchWithFailover(ctx, req)

	if cfg.Diagnostics.Path != "" {
		bundler := diag.NewBundler(cfg.Diagnostics.Path)
		if diagErr := bundler.Append(client); diagErr != nil {
			slog.Warn("Failed to write diagnostics", "error", diagErr)
		}
	}

	if err != nil {
		if apiErr, ok := domain.AsAPIError(err); ok {
			slog.Error("Call failed", "kind", apiErr.Kind, "error", apiErr.Message)
			fmt.Fprintln(os.Stderr, apiErr.UserMessage)
		} else {
			slog.Error("Call failed", "error", err)
		}
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(resp.Data, "", "  ")
	fmt.Println(string(out))
}
