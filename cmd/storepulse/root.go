package main

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute(ctx context.Context) error {
	root := &cobra.Command{Use: "storepulse", Short: "Store insights analysis service"}
	root.AddCommand(serveCmd())
	return root.ExecuteContext(ctx)
}
