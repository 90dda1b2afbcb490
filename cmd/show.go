package cmd

import (
	"os"
	"strings"

	"github.com/colsched/colsched/cmd/common"
	"github.com/colsched/colsched/internal/render"
	"github.com/urfave/cli"
)

func show(ctx *cli.Context) error {
	group := strings.TrimSpace(ctx.Args().First())
	l := newLogger("show")
	defer l.Close()
	scr, err := newScreen(l, group)
	if err != nil {
		common.PrintRuntimeErr(ctx, "show", "new_source", err)
		return nil
	}
	defer scr.Close()

	st := loadScreen(scr)
	warnGroupMismatch(os.Stdout, group, st)
	if err := render.Screen(os.Stdout, st); err != nil {
		common.PrintRuntimeErr(ctx, "show", "render", err)
	}
	return nil
}
