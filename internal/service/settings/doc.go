// Package settings implements the commands of the downonspot-settings CLI:
// Init writes a fresh settings file, Show prints the loaded settings as JSON
// or YAML with secrets masked, and Paths explains which file a load would use.
package settings
