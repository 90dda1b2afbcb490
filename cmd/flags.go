package cmd

import (
	"time"

	"github.com/colsched/colsched/common"
	"github.com/colsched/colsched/internal/screen"
	"github.com/colsched/colsched/pkg/collegeapi"
	"github.com/urfave/cli"
)

var (
	apiURL       string
	fixturePath  string
	proxyURL     string
	fetchTimeout time.Duration
	windowDays   int
	defaultGroup string
	debug        bool

	groupFilter string
	outputPath  string

	rpcAddr     string
	rpcSecret   string
	refreshExpr string
	logFile     string

	mockAddr  string
	mockDelay time.Duration

	apiURLFlag = cli.StringFlag{
		Name:        "api-url, u",
		Usage:       "base url of the college schedule api",
		Value:       common.DefaultAPIURL,
		EnvVar:      common.APIURLEnv,
		Destination: &apiURL,
	}
	debugFlag = cli.BoolFlag{
		Name:        "debug, d",
		Usage:       "print debug logs to stderr",
		EnvVar:      common.DebugEnv,
		Destination: &debug,
	}

	sourceFlags = []cli.Flag{
		apiURLFlag,
		cli.StringFlag{
			Name:        "fixture, f",
			Usage:       "read groups and schedules from a fixture file instead of the api",
			EnvVar:      common.FixtureEnv,
			Destination: &fixturePath,
		},
		cli.StringFlag{
			Name:        "proxy, x",
			Usage:       "http, https or socks5 proxy url for api requests",
			EnvVar:      common.ProxyEnv,
			Destination: &proxyURL,
		},
		cli.DurationFlag{
			Name:        "timeout, t",
			Usage:       "give up on a fetch after this long (0 waits forever)",
			Value:       DEF_TIMEOUT,
			EnvVar:      common.TimeoutEnv,
			Destination: &fetchTimeout,
		},
		cli.IntFlag{
			Name:        "days",
			Usage:       "number of days to request, starting today",
			Value:       collegeapi.DefaultWindowDays,
			EnvVar:      common.DaysEnv,
			Destination: &windowDays,
		},
		cli.StringFlag{
			Name:        "default-group",
			Usage:       "group selected after the list loads",
			Value:       screen.DefaultGroupName,
			EnvVar:      common.DefaultGroupEnv,
			Destination: &defaultGroup,
		},
		debugFlag,
	}

	groupsFlags = append([]cli.Flag{
		cli.StringFlag{
			Name:        "filter, q",
			Usage:       "only list groups whose name contains this text",
			Destination: &groupFilter,
		},
	}, sourceFlags...)

	exportFlags = append([]cli.Flag{
		cli.StringFlag{
			Name:        "output, o",
			Usage:       "workbook path (defaults to <group>.xlsx)",
			Destination: &outputPath,
		},
	}, sourceFlags...)

	serveFlags = append([]cli.Flag{
		cli.StringFlag{
			Name:        "addr, a",
			Usage:       "address to listen on",
			Value:       common.DefaultRPCAddr,
			EnvVar:      common.RPCAddrEnv,
			Destination: &rpcAddr,
		},
		cli.StringFlag{
			Name:        "secret",
			Usage:       "bearer token required by every request (generated when empty)",
			EnvVar:      common.RPCSecretEnv,
			Destination: &rpcSecret,
		},
		cli.StringFlag{
			Name:        "refresh, r",
			Usage:       "cron expression re-loading the selected schedule",
			EnvVar:      common.RefreshEnv,
			Destination: &refreshExpr,
		},
		cli.StringFlag{
			Name:        "log-file",
			Usage:       "also append logs to this file",
			Destination: &logFile,
		},
	}, sourceFlags...)

	mockFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "fixture, f",
			Usage:       "fixture file to serve (required)",
			EnvVar:      common.FixtureEnv,
			Destination: &fixturePath,
		},
		cli.StringFlag{
			Name:        "addr, a",
			Usage:       "address to listen on",
			Value:       common.DefaultMockAddr,
			Destination: &mockAddr,
		},
		cli.DurationFlag{
			Name:        "delay",
			Usage:       "wait this long before every response",
			Destination: &mockDelay,
		},
		debugFlag,
	}
)
