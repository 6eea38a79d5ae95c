// Package embedded carries small sample catalogs compiled into the binary.
// They are used when no catalog path is configured, which keeps the CLI and
// server usable out of the box and gives tests a stable fixture.
package embedded

import (
	"embed"
)

// FS holds one JSON catalog per instrument under catalogs/.
//
//go:embed catalogs/*.json
var FS embed.FS

// Path returns the location of an instrument's sample catalog inside FS.
func Path(instrument string) string {
	return "catalogs/" + instrument + ".json"
}
