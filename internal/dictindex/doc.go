// Package dictindex persists a loaded dictionary as a SQLite index so later
// runs can skip re-parsing and re-filtering the plain-text wordlist.
//
// An index holds the retained entries together with the loading parameters
// that produced them (floor, minimum length, policy, source path) and a build
// identifier. Compile writes into a temporary file under an exclusive file
// lock and renames it into place, so readers never observe a half-written
// index.
package dictindex
