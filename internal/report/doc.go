// Package report prints segmentation results and drives the per-line loop.
//
// For every input line a Reporter echoes the trimmed line and then one entry
// per decomposition, in the order the engine discovers them. Three formats
// exist: plain text, newline-delimited JSON, and a go-pretty table per line.
// Text and JSON write each decomposition as soon as it arrives. The table
// format buffers one line's rows so the table can be sized.
package report
