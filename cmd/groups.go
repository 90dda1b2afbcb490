package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/colsched/colsched/cmd/common"
	"github.com/colsched/colsched/internal/render"
	"github.com/colsched/colsched/internal/screen"
	"github.com/urfave/cli"
)

func groups(ctx *cli.Context) error {
	l := newLogger("groups")
	defer l.Close()
	src, err := newSource()
	if err != nil {
		common.PrintRuntimeErr(ctx, "groups", "new_source", err)
		return nil
	}
	// Without a Screen nothing reacts to the default selection, so only
	// the group list is fetched.
	store := screen.NewStore()
	loader := screen.NewLoader(store, src, l, defaultGroup, fetchTimeout)
	withSpinner(render.TextLoadingGroups, func() {
		err = loader.LoadGroups(context.Background())
	})
	if err != nil {
		common.PrintRuntimeErr(ctx, "groups", "list_groups", err)
		return nil
	}
	st := store.State()
	if len(st.Groups) == 0 {
		fmt.Println(render.TextNoGroups)
		return nil
	}
	sel := screen.NewSelector(store)
	sel.SetFilterText(groupFilter)
	if err := render.Groups(os.Stdout, sel.FilteredGroups(), st.SelectedName()); err != nil {
		common.PrintRuntimeErr(ctx, "groups", "render", err)
	}
	return nil
}
