// Package all registers every board in the catalog.
package all

import (
	// register boards by tier.
	_ "go.fpgaboards.dev/boards/boards/community"
	_ "go.fpgaboards.dev/boards/boards/official"
	_ "go.fpgaboards.dev/boards/boards/partner"
)
