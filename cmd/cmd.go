package cmd

import (
	"fmt"
	"runtime"

	"github.com/colsched/colsched/cmd/common"
	"github.com/urfave/cli"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

var currentBuildArgs BuildArgs

func Execute(args []string, bArgs BuildArgs) error {
	currentBuildArgs = bArgs
	if err := loadEnvFile(); err != nil {
		return err
	}
	app := cli.App{
		Name:                  "colsched",
		HelpName:              "colsched",
		Usage:                 "Browse college class schedules from the terminal.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "colsched <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:                   "groups",
				Aliases:                []string{"g"},
				Usage:                  "list study groups",
				Action:                 groups,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            GroupsDescription,
				UseShortOptionHandling: true,
				Flags:                  groupsFlags,
			},
			{
				Name:                   "show",
				Aliases:                []string{"s"},
				Usage:                  "print the schedule of a group",
				UsageText:              "show [GROUP]",
				Action:                 show,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            ShowDescription,
				UseShortOptionHandling: true,
				Flags:                  sourceFlags,
			},
			{
				Name:                   "browse",
				Aliases:                []string{"b"},
				Usage:                  "browse groups and schedules interactively",
				Action:                 browse,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            BrowseDescription,
				UseShortOptionHandling: true,
				Flags:                  sourceFlags,
			},
			{
				Name:                   "export",
				Aliases:                []string{"e"},
				Usage:                  "save the schedule of a group to an xlsx workbook",
				UsageText:              "export [GROUP] [--output FILE]",
				Action:                 exportSchedule,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            ExportDescription,
				UseShortOptionHandling: true,
				Flags:                  exportFlags,
			},
			{
				Name:               "serve",
				Usage:              "serve the schedule screen over JSON-RPC",
				Action:             serve,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        ServeDescription,
				Flags:              serveFlags,
			},
			{
				Name:               "mock-api",
				Usage:              "serve the college REST API from a fixture file",
				Action:             mockAPI,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        MockAPIDescription,
				Flags:              mockFlags,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of colsched",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		Action:      common.Help,
		HideHelp:    true,
		HideVersion: true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
