// Package data embeds the stock outcome profiles and tuning documents.
package data

import "embed"

// FS holds outcomes/*.json, play-state-machine.json and timing.json.
//
//go:embed outcomes/*.json play-state-machine.json timing.json
var FS embed.FS
