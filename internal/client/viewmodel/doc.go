// Package viewmodel holds the presentation state of the client: list fetch
// state machines, form drafts with live validation, and the login and logout
// flows. Nothing here renders anything; a UI (the CLI REPL in this repo)
// reads snapshots and subscribes with OnChange.
//
// All view-models are safe for concurrent use. Network calls are made
// without holding any lock, and change listeners run after the lock is
// released.
package viewmodel
