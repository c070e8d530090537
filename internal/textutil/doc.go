// Package textutil provides the small text transformations shared by the
// dictionary tools: decoding legacy single-byte wordlists, lowercasing, and
// rune-wise reversal.
//
// Ranked wordlists produced by older corpus tooling are frequently ISO-8859-1
// encoded; NewReader wraps them so the rest of the pipeline only ever sees
// UTF-8.
package textutil
