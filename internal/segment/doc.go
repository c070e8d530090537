// Package segment enumerates every decomposition of a token into consecutive
// dictionary words.
//
// The search is an exhaustive depth-first backtracking walk with no
// memoization: at each position every prefix that is a dictionary key is
// tried, shortest first, and the walk recurses on the remainder. Each
// complete decomposition is handed to the caller the moment it is found.
// Every call strictly shortens the remainder, so the walk always terminates,
// and the recursion depth never exceeds the input length in characters.
//
// Splits fall on character (rune) boundaries. Inputs longer than the engine's
// maximum depth are rejected with ErrInputTooLong before any search starts.
package segment
