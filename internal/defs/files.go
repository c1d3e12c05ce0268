// Package defs holds the small set of well-known file names Cupcake reads
// and writes, kept in one place so a rename touches one line.
package defs

const (
	// SettingsJSON is the host's project settings file, the target of
	// `cupcake sync`'s hook-registration merge.
	SettingsJSON = "settings.json"

	// SettingsLocalJSON is the host's local settings override file.
	SettingsLocalJSON = "settings.local.json"

	// GuardrailsDir is the directory name Discover looks for, holding the
	// guardrail YAML fragments.
	GuardrailsDir = "guardrails"
)
