// Package cli provides the PhishShield command-line client.
//
// It wires configuration, the local SQLite credential store, the API client
// (live HTTP or the in-process fixture) and the session store, then exposes
// them as cobra commands:
//   - login / signup / logout / whoami
//   - profile update / avatar
//   - dashboard / quiz / chat
//   - shell, an interactive REPL over the same actions
//
// Every invocation restores the persisted session before running, so a
// login in one process is visible to the next.
package cli
