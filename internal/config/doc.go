// Package config defines the client Settings (account credentials plus the
// downloader block) and a Store that saves them as pretty-printed JSON and
// loads them back with fallback discovery.
//
// When no explicit path is given, Load walks the candidates returned by a
// PathProvider (settings.json in the working directory, then
// ~/.config/downonspot.json) and opens the first one that exists. All failures
// are reported as *Error values carrying a Kind.
package config
