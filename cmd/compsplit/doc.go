// Command compsplit enumerates every way a compound word can be split into
// words from a frequency-ranked dictionary.
//
// The split command reads tokens from its arguments or from stdin, one per
// line, and streams each decomposition as soon as it is found. The dict
// command group compiles wordlists into SQLite indexes and derives new
// wordlists from existing ones; eval measures coverage against an annotated
// gold corpus; check verifies the configured dictionary before a long run.
package main
