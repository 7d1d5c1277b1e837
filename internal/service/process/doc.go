// Package process finds running DownOnSpot client processes, so that
// commands rewriting the settings file can warn that a running client may
// overwrite it on exit.
package process
