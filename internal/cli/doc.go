// Package cli provides the interactive visadesk command-line client.
//
// It wires the record store into a REPL: the user registers or logs in,
// files visa applications, keeps document metadata and chats, and an
// administrator can approve or reject applications. Every command is a thin
// call into records.Store; failures are rendered through common.Result so
// that storage errors only show a generic message.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
