// Package server exposes a screen as a JSON-RPC 2.0 view model.
//
// Requests arrive over HTTP at /jsonrpc (through a jhttp bridge) or over
// a WebSocket at /jsonrpc/ws. Every store event is pushed to connected
// WebSocket clients as a "state.changed" notification carrying the full
// state snapshot, so a client only needs to keep the one with the
// highest version. Both endpoints require "Authorization: Bearer <secret>".
package server
