// Package auth drives sign-in: the provider redirect, the account existence
// check, first-time registration with a nickname, and the synthetic test
// login. A Flow owns the transitions and talks to the session store, the
// account service and the UI hooks; it never touches storage directly.
package auth
