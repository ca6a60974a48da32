package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenepatch/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes rendering, scene storage and animation compilation over
HTTP. Cache and store backends come from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	spinner := newSpinner(ctx, "Connecting cache...")
	spinner.Start()
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		spinner.StopWithError("Cache unavailable")
		return err
	}
	defer runner.Close()

	spinner.Update("Connecting store...")
	st, err := c.newStore(ctx)
	if err != nil {
		spinner.StopWithError("Store unavailable")
		return err
	}
	defer st.Close(context.Background())
	spinner.StopWithSuccess("Backends ready")
	printKeyValue("cache", c.Config.Cache.Backend)
	printKeyValue("store", c.Config.Store.Backend)
	printKeyValue("listen", addr)

	srv := server.New(runner, st, logger, server.Options{
		MaxBodyBytes:   c.Config.Server.MaxBodyBytes,
		RequestTimeout: c.Config.Server.RequestTimeout,
		ReadTimeout:    c.Config.Server.ReadTimeout,
		WriteTimeout:   c.Config.Server.WriteTimeout,
	})
	return srv.ListenAndServe(ctx, addr)
}
