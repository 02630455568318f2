// Package appfs exposes embedded application assets: SQL migrations and
// email templates.
package appfs

import "embed"

//go:embed migrations templates
var FS embed.FS
