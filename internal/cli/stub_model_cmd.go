package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/riceyield/internal/modelstub"
)

func newStubModelCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "stub-model",
		Short: "Serve the placeholder yield model on POST /predict",
		Long: `Run a local stand-in for the prediction service. It answers POST /predict
with a linear placeholder formula and GET /health with {"status":"ok"}.
Stop it with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Placeholder model listening on http://%s\n", ln.Addr())

			return serveStub(ctx, modelstub.NewServer(addr, app.logger()), ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:5000", "Listen address")
	return cmd
}

// serveStub serves on ln until ctx is done, then shuts the server down.
func serveStub(ctx context.Context, srv *modelstub.Server, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Serve(ln)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	return g.Wait()
}
