package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/colsched/colsched/cmd/common"
	"github.com/colsched/colsched/internal/mockapi"
	"github.com/spf13/afero"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

var errNoFixture = errors.New("no fixture file provided")

func mockAPI(ctx *cli.Context) error {
	if fixturePath == "" {
		return common.PrintErrWithCmdHelp(ctx, errNoFixture)
	}
	if _, err := os.Stat(fixturePath); err != nil {
		common.PrintRuntimeErr(ctx, "mock-api", "fixture", err)
		return nil
	}
	l := newStderrLogger("mock-api")
	ln, err := net.Listen("tcp", mockAddr)
	if err != nil {
		common.PrintRuntimeErr(ctx, "mock-api", "listen", err)
		return nil
	}
	fmt.Printf("Serving %s on http://%s/api\n", fixturePath, ln.Addr())

	sctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	api := mockapi.New(afero.NewOsFs(), fixturePath, l, mockDelay)
	if err := runMockAPI(sctx, api.Handler(), ln); err != nil {
		common.PrintRuntimeErr(ctx, "mock-api", "serve", err)
	}
	return nil
}

// runMockAPI serves h on ln until ctx is cancelled.
func runMockAPI(ctx context.Context, h http.Handler, ln net.Listener) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
