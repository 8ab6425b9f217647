// Package cli is the interactive terminal front end of the admin client.
//
// Build wires configuration, the local SQLite state, the remote API client,
// the fallback services, the session manager and the availability watcher.
// App.Run restores any persisted session, starts the watcher, and runs the
// REPL until the user exits.
//
// Commands:
//
//	help                      list commands
//	login                     authenticate (remote, falling back to local)
//	logout                    end the session
//	whoami                    show the logged-in identity
//	list [key=value ...]      list users; keys: search, rol, activo,
//	                          sort, order, page, limit
//	show <id>                 show one user
//	add                       create a user
//	edit <id>                 update a user; empty answers keep values
//	delete <id>               delete a user
//	status                    availability of the remote API
//	debug                     session and storage diagnostics
//	reset                     restore demo data and clear the session
//	exit | quit               leave
//
// Directory commands require a logged-in super user.
package cli
