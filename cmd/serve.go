package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/colsched/colsched/cmd/common"
	appcommon "github.com/colsched/colsched/common"
	"github.com/colsched/colsched/internal/scheduler"
	"github.com/colsched/colsched/internal/screen"
	"github.com/colsched/colsched/internal/server"
	"github.com/colsched/colsched/pkg/logger"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type serveOpts struct {
	Secret  string
	Refresh string
	Logger  logger.Logger
	Build   BuildArgs
}

func serve(ctx *cli.Context) error {
	l, closeLog, err := newServeLogger(logFile)
	if err != nil {
		common.PrintRuntimeErr(ctx, "serve", "open_log", err)
		return nil
	}
	defer closeLog()

	if refreshExpr != "" {
		if _, err := scheduler.NextOccurrence(refreshExpr, time.Now()); err != nil {
			common.PrintRuntimeErr(ctx, "serve", "refresh", err)
			return nil
		}
	}
	secret := rpcSecret
	if secret == "" {
		secret, err = newSecret()
		if err != nil {
			common.PrintRuntimeErr(ctx, "serve", "secret", err)
			return nil
		}
		fmt.Printf("Generated RPC secret: %s\n", secret)
	}
	scr, err := newScreen(l.Named("screen"), "")
	if err != nil {
		common.PrintRuntimeErr(ctx, "serve", "new_source", err)
		return nil
	}
	defer scr.Close()

	ln, err := net.Listen("tcp", rpcAddr)
	if err != nil {
		common.PrintRuntimeErr(ctx, "serve", "listen", err)
		return nil
	}
	fmt.Printf("Serving JSON-RPC on http://%s%s\n", ln.Addr(), server.PathRPC)

	sctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = runServe(sctx, scr, &serveOpts{
		Secret:  secret,
		Refresh: refreshExpr,
		Logger:  l,
		Build:   currentBuildArgs,
	}, ln)
	if err != nil {
		common.PrintRuntimeErr(ctx, "serve", "run", err)
	}
	return nil
}

// runServe serves scr on ln until ctx is cancelled or serving fails.
// With a refresh expression the selected schedule is re-loaded on every
// cron occurrence.
func runServe(ctx context.Context, scr *screen.Screen, opts *serveOpts, ln net.Listener) error {
	l := opts.Logger
	if l == nil {
		l = logger.NewNopLogger()
	}
	if opts.Refresh != "" {
		if _, err := scheduler.NextOccurrence(opts.Refresh, time.Now()); err != nil {
			return err
		}
	}
	srv := server.New(scr, &server.Config{
		Secret:    opts.Secret,
		Version:   opts.Build.Version,
		Commit:    opts.Build.Commit,
		BuildType: opts.Build.BuildType,
		Logger:    l,
	})
	defer srv.Close()

	g, gctx := errgroup.WithContext(ctx)
	if opts.Refresh != "" {
		sched := scheduler.New(gctx, func(key string) {
			if err := scr.Refresh(); err != nil {
				l.Warning("%s skipped: %v", key, err)
				return
			}
			l.Info("%s: reloading schedule", key)
		})
		defer func() { <-sched.Done() }()
		next, _ := sched.AddCron(appcommon.RefreshJobKey, opts.Refresh)
		l.Info("next schedule refresh at %s", next.Format(time.RFC3339))
	}

	g.Go(func() error {
		return srv.Serve(ln)
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	scr.Start()
	return g.Wait()
}

// newServeLogger logs to stderr and, when path is set, appends to path.
func newServeLogger(path string) (*namedLogger, func(), error) {
	std := newStderrLogger("serve")
	if path == "" {
		return &namedLogger{Logger: std, named: func(c string) logger.Logger { return std.Named(c) }}, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	fileLog := logger.NewStandardLogger(log.New(f, "", log.LstdFlags), debug).Named("serve")
	l := &namedLogger{
		Logger: logger.NewMultiLogger(std, fileLog),
		named: func(c string) logger.Logger {
			return logger.NewMultiLogger(std.Named(c), fileLog.Named(c))
		},
	}
	return l, func() { _ = f.Close() }, nil
}

// namedLogger is a Logger that can derive per-component loggers.
type namedLogger struct {
	logger.Logger
	named func(component string) logger.Logger
}

func (n *namedLogger) Named(component string) logger.Logger {
	return n.named(component)
}

func newSecret() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
