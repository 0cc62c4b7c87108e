// Package cli provides the interactive gophsession command-line client.
//
// It wires configuration, the session database, the per-identity scoped
// store, the account service client and the sign-in flow, then runs a REPL.
//
// Key features:
//   - login / callback / nickname / cancel: provider sign-in and first-time
//     registration
//   - testlogin: synthetic sign-in when test mode is on
//   - status / logout
//   - note put/get/list/del: data kept in the signed-in identity's scope
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
