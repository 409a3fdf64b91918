// Package assets embeds the guest tooling copied into every provisioned root.
package assets

import "embed"

// FS holds guest/... and etc/... exactly as the install steps reference them.
//
//go:embed guest etc
var FS embed.FS
