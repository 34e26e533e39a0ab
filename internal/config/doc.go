// Package config resolves the rookeen configuration.
//
// Values come from four layers, consulted in this order for every key:
// command-line flags, ROOKEEN_* environment variables, the config file
// (TOML or YAML, flat or under a [rookeen] table) and compiled-in
// defaults. The first layer that supplies a value wins. Resolve is a
// pure reducer over those layers and returns a validated Config that is
// not modified afterwards.
package config
