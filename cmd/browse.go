package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/colsched/colsched/cmd/common"
	"github.com/colsched/colsched/internal/render"
	"github.com/colsched/colsched/internal/screen"
	"github.com/urfave/cli"
)

const browseHelp = `  text    filter the group list
  #N      select the N-th group of the filtered list
  :g      print the filtered group list
  :c      clear the filter
  :r      retry a failed schedule load
  :h      print this help
  :q      quit
`

// stdin is read by the browse command.
var stdin io.Reader = os.Stdin

func browse(ctx *cli.Context) error {
	l := newLogger("browse")
	defer l.Close()
	scr, err := newScreen(l, "")
	if err != nil {
		common.PrintRuntimeErr(ctx, "browse", "new_source", err)
		return nil
	}
	defer scr.Close()

	b := newBrowser(scr, os.Stdout)
	defer b.close()
	if f, ok := stdin.(*os.File); ok {
		b.prompt = isTerminal(f)
	}
	if err := b.run(stdin); err != nil {
		common.PrintRuntimeErr(ctx, "browse", "run", err)
	}
	return nil
}

// browser is a line-oriented front end over a Screen. Store events
// mark settled states; after every command the newest one is rendered.
type browser struct {
	scr         *screen.Screen
	out         io.Writer
	prompt      bool
	unsubscribe func()

	mu       sync.Mutex
	pending  *screen.State
	rendered uint64
}

func newBrowser(scr *screen.Screen, out io.Writer) *browser {
	b := &browser{scr: scr, out: out}
	b.unsubscribe = scr.Subscribe(b.onEvent)
	return b
}

func (b *browser) close() {
	b.unsubscribe()
}

// settled reports whether ev leaves the screen in a state worth
// rendering, i.e. not halfway through a fetch.
func settled(ev screen.Event) bool {
	switch ev.Kind {
	case screen.EventScheduleLoaded, screen.EventScheduleFailed, screen.EventGroupsFailed:
		return true
	case screen.EventGroupsLoaded:
		return len(ev.State.Groups) == 0
	}
	return false
}

func (b *browser) onEvent(ev screen.Event) {
	if !settled(ev) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if ev.State.Version <= b.rendered {
		return
	}
	if b.pending != nil && ev.State.Version <= b.pending.Version {
		return
	}
	st := ev.State
	b.pending = &st
}

// flush waits for the fetches in flight and renders the newest settled
// state. It reports whether anything was rendered.
func (b *browser) flush() (bool, error) {
	b.scr.Wait()
	b.mu.Lock()
	st := b.pending
	b.pending = nil
	if st != nil {
		b.rendered = st.Version
	}
	b.mu.Unlock()
	if st == nil {
		return false, nil
	}
	return true, render.Screen(b.out, *st)
}

// refresh renders the newest settled state, or the current one when
// nothing settled since the last render.
func (b *browser) refresh() error {
	ok, err := b.flush()
	if ok || err != nil {
		return err
	}
	return render.Screen(b.out, b.scr.State())
}

func (b *browser) run(in io.Reader) error {
	b.scr.Start()
	if _, err := b.flush(); err != nil {
		return err
	}
	sc := bufio.NewScanner(in)
	for {
		if b.prompt {
			fmt.Fprint(b.out, "> ")
		}
		if !sc.Scan() {
			return sc.Err()
		}
		quit, err := b.exec(strings.TrimSpace(sc.Text()))
		if quit || err != nil {
			return err
		}
	}
}

func (b *browser) exec(line string) (quit bool, err error) {
	switch {
	case line == ":q":
		return true, nil
	case line == ":h":
		_, err = fmt.Fprint(b.out, browseHelp)
	case line == ":g":
		err = b.listGroups()
	case line == ":c":
		b.scr.SetFilterText("")
		err = b.listGroups()
	case line == ":r":
		if rerr := b.scr.Retry(); rerr != nil {
			_, err = fmt.Fprintf(b.out, "%s%v\n", render.TextErrorPrefix, rerr)
			break
		}
		err = b.refresh()
	case line == "":
		err = b.refresh()
	case strings.HasPrefix(line, "#"):
		err = b.selectNth(line[1:])
	default:
		b.scr.SetFilterText(line)
		err = b.listGroups()
	}
	return false, err
}

func (b *browser) listGroups() error {
	st := b.scr.State()
	if st.View() == screen.ViewNoGroups {
		_, err := fmt.Fprintln(b.out, render.TextNoGroups)
		return err
	}
	return render.Groups(b.out, st.FilteredGroups(), st.SelectedName())
}

func (b *browser) selectNth(arg string) error {
	groups := b.scr.FilteredGroups()
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(groups) {
		_, werr := fmt.Fprintf(b.out, "%s#%s\n", render.TextErrorPrefix, arg)
		return werr
	}
	b.scr.SelectGroup(groups[n-1])
	return b.refresh()
}
