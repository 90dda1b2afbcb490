// Package scheduler fires named refresh jobs at cron-defined times.
//
// A single goroutine keeps a min-heap of pending events sorted by trigger
// time and sleeps at most 60 seconds between checks, so wall-clock steps
// (NTP, DST, a laptop waking from sleep) are noticed quickly. Recurring
// events are pushed back onto the heap with their next occurrence after
// they fire. Nothing is persisted; the serve command registers its jobs
// again on every start.
package scheduler
