// Package core holds the Session every command runs against: the loaded
// declaration documents together with the collaborators that query and
// change the system.
//
// A command follows one linear pass:
//
//	load -> diff -> (confirm, mutate) -> persist
//
// Session.Persist is the only place declaration files are written. In a dry
// run it renders the pending documents instead.
package core
