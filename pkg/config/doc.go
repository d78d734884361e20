// Package config loads cardinal's settings and manifest.
//
// Settings are layered with koanf: embedded defaults, then the user's
// config.toml (or config.yaml) in the config directory, then CARDINAL_*
// environment variables, then explicit overrides from the command line.
//
// The manifest, cardinal.toml, lists the files cardinal manages:
//
//	[files."~/.bashrc"]
//	source = "shell/bashrc"
//
// Each key under [files] is a target path and each table must carry a
// string source. The manifest is decoded into a generic table and read
// through the typed accessors in value.go, which report a missing key and
// a key of the wrong type as distinct CheckError reasons.
package config
