// Package preflight provides readiness checks for the files and directories
// compsplit depends on.
//
// The CLI "compsplit check" command runs RunAll and renders the results, so a
// misconfigured dictionary path surfaces before a long batch run starts.
package preflight
