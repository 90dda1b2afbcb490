// Package screen implements the schedule browsing workflow without any
// UI toolkit: an observable Store holding the selection and load state,
// a Selector deriving the filtered group list and changing the selection,
// and a Loader fetching groups and schedules from a collegeapi.Source.
//
// A Screen wires the three together. It loads the group list on Start,
// applies the default selection and fetches the selected group's schedule
// every time the selection changes. Fetches run on goroutines owned by
// the Screen; Wait blocks until all of them have settled.
//
// Every schedule fetch is issued a ticket. When a newer fetch has been
// issued by the time a response arrives, the response is discarded, so
// a slow answer for a previously selected group never overwrites the
// state of the current one.
package screen
