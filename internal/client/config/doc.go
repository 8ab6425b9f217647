// Package config loads runtime configuration for the admin client.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file chosen with -c or -config. Comments and trailing
//     commas are accepted.
//  3. Command-line flags.
//
// Flags
//
//	-a string   base URL of the remote API
//	-t int      request timeout (seconds)
//	-i int      availability probe interval (seconds)
//	-d string   local database file
//	-f string   YAML seed file for the local directory
//	-s string   secret for locally issued session tokens
//	-l int      lifetime of locally issued session tokens (hours)
//	-k string   key for password digests in the local directory
//	-v string   log level: debug, info, warn, error
//
// JSON durations use timex.Duration, so "10s" and 10000000000 are both
// accepted:
//
//	{
//	  // remote API
//	  "server_url": "http://localhost:3001/api",
//	  "request_timeout": "10s",
//	  "online_check_interval": "10s",
//	  "database_path": "data/admin.db",
//	  "token_ttl": "24h",
//	  "log_level": "info",
//	}
package config
