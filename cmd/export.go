package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/colsched/colsched/cmd/common"
	"github.com/colsched/colsched/internal/export"
	"github.com/colsched/colsched/internal/render"
	"github.com/colsched/colsched/internal/screen"
	"github.com/urfave/cli"
)

var errNothingToExport = errors.New("no schedule loaded")

func exportSchedule(ctx *cli.Context) error {
	group := strings.TrimSpace(ctx.Args().First())
	l := newLogger("export")
	defer l.Close()
	scr, err := newScreen(l, group)
	if err != nil {
		common.PrintRuntimeErr(ctx, "export", "new_source", err)
		return nil
	}
	defer scr.Close()

	st := loadScreen(scr)
	warnGroupMismatch(os.Stdout, group, st)
	if st.View() != screen.ViewSchedule {
		_ = render.Screen(os.Stdout, st)
		common.PrintRuntimeErr(ctx, "export", "load_schedule", errNothingToExport)
		return nil
	}
	path := outputPath
	if path == "" {
		path = export.SheetName(st.SelectedName()) + ".xlsx"
	}
	if err := export.WriteFile(path, st.SelectedName(), st.Schedule); err != nil {
		common.PrintRuntimeErr(ctx, "export", "write", err)
		return nil
	}
	fmt.Printf("%s: %d day(s) saved to %s\n", st.SelectedName(), len(st.Schedule), path)
	return nil
}
