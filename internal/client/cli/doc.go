// Package cli provides the interactive account command-line client.
//
// It wires configuration, local storage, the API client, and the session
// and profile stores into a REPL. On start the session is bootstrapped from
// persisted storage before the first prompt renders, so the loop never
// observes the intermediate bootstrapping state.
//
// Commands:
//
//	Logged out: register, login, profile, wipe, help, exit
//	Logged in:  profile, edit, password, logout, help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
