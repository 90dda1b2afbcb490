package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/colsched/colsched/cmd/common"
	"github.com/colsched/colsched/internal/render"
	"github.com/colsched/colsched/internal/screen"
	"github.com/colsched/colsched/pkg/collegeapi"
	"github.com/colsched/colsched/pkg/logger"
	"github.com/spf13/afero"
	"github.com/vbauerster/mpb/v8"
	"golang.org/x/term"
)

var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func userAgent() string {
	v := currentBuildArgs.Version
	if v == "" {
		v = "dev"
	}
	return "colsched/" + v
}

// newSource returns a FileSource when a fixture is configured and an
// HTTPSource otherwise.
func newSource() (collegeapi.Source, error) {
	if fixturePath != "" {
		return collegeapi.NewFileSource(afero.NewOsFs(), fixturePath), nil
	}
	client, err := collegeapi.NewHTTPClient(proxyURL, 0)
	if err != nil {
		return nil, err
	}
	return collegeapi.NewHTTPSource(apiURL, &collegeapi.HTTPOpts{
		Client:    client,
		Days:      windowDays,
		UserAgent: userAgent(),
	})
}

// newLogger returns a stderr logger for component when debug output is
// on and a NopLogger otherwise, keeping interactive output clean.
func newLogger(component string) logger.Logger {
	if !debug {
		return logger.NewNopLogger()
	}
	return newStderrLogger(component)
}

func newStderrLogger(component string) *logger.StandardLogger {
	return logger.NewStandardLogger(
		log.New(os.Stderr, "", log.LstdFlags),
		debug,
	).Named(component)
}

// newScreen builds a Screen over the configured source. A non-empty
// group is selected when the list has it; otherwise the configured
// default group rule applies.
func newScreen(l logger.Logger, group string) (*screen.Screen, error) {
	src, err := newSource()
	if err != nil {
		return nil, err
	}
	return screen.New(src,
		screen.WithLogger(l),
		screen.WithRequestedGroup(group),
		screen.WithDefaultGroup(defaultGroup),
		screen.WithFetchTimeout(fetchTimeout),
	), nil
}

// withSpinner runs fn behind a spinner when stdout is a terminal.
func withSpinner(label string, fn func()) {
	if !isTerminal(os.Stdout) {
		fn()
		return
	}
	p := mpb.New(mpb.WithOutput(os.Stdout))
	bar := common.InitSpinner(p, label)
	fn()
	bar.SetTotal(-1, true)
	p.Wait()
}

// loadScreen runs the whole workflow once: the group list, the default
// selection and its schedule.
func loadScreen(scr *screen.Screen) screen.State {
	withSpinner(render.TextLoading, func() {
		scr.Start()
		scr.Wait()
	})
	return scr.State()
}

// warnGroupMismatch reports a requested group that is not in the list.
func warnGroupMismatch(w io.Writer, requested string, st screen.State) {
	if requested == "" || st.Selected == nil || st.SelectedName() == requested {
		return
	}
	fmt.Fprintf(w, "%s: %s\n\n", render.TextGroupNotFound, requested)
}
