// Package downloader defines the downloader block stored inside the client
// settings file.
//
// The settings store treats Config as opaque: it only needs the type to be
// default-constructible and to round-trip through JSON.
package downloader
