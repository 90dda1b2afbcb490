package cmd

import "github.com/colsched/colsched/common"

const DEF_TIMEOUT = common.DefaultTimeout

const DESCRIPTION = `
colsched shows the class schedule of a college study group.
It fetches the group list, picks a group and loads its lessons
for the coming week, either once, interactively, as an Excel
workbook or as a JSON-RPC view model for other front ends.
`

const (
	GroupsDescription = `The groups command fetches the list of study groups and
prints it numbered. The group that would be opened by default
is marked with "*".

Example:
        colsched groups
        colsched groups --filter ис

`
	ShowDescription = `The show command loads the group list, selects GROUP (or the
default group when omitted) and prints its schedule. When
GROUP is not in the list the first group is shown instead.

Example:
        colsched show
        colsched show ИС-21

`
	BrowseDescription = `The browse command opens an interactive screen reading
commands from standard input:

        text    filter the group list
        #N      select the N-th group of the filtered list
        :g      print the filtered group list
        :c      clear the filter
        :r      retry a failed schedule load
        :h      print this help
        :q      quit

Example:
        colsched browse

`
	ExportDescription = `The export command loads the schedule of GROUP (or the
default group) and saves it as an xlsx workbook with one
row per lesson part.

Example:
        colsched export ИС-12 --output is12.xlsx

`
	ServeDescription = `The serve command runs the schedule screen headless and
exposes it over JSON-RPC 2.0 on /jsonrpc (HTTP) and
/jsonrpc/ws (WebSocket, with state.changed notifications).
Every request must carry "Authorization: Bearer <secret>".
A random secret is generated and printed when none is set.

Example:
        colsched serve --addr 127.0.0.1:8765 --refresh "0 6 * * *"

`
	MockAPIDescription = `The mock-api command serves GET /api/groups and
GET /api/schedule/group/{groupName} from a fixture file
for local development.

Example:
        colsched mock-api --fixture testdata/fixture.json

`
)
