// Package appfs embeds the static assets of the app: the demo catalog, the translation tables and the email templates.
package appfs

import "embed"

// Asset directories within FS
const (
	SeedFile     = "seed/catalog.yaml"
	I18nDir      = "i18n"
	EmailTmplDir = "templates/email"
)

//go:embed seed i18n all:templates
var FS embed.FS
