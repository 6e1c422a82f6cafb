// Package migrations embeds the SQL schemas applied by store.Migrate, one
// directory per database: prefs for the client, directory for the daemon.
package migrations

import "embed"

//go:embed prefs/*.sql directory/*.sql
var FS embed.FS
