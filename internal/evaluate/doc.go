// Package evaluate measures how many compounds of a hand-annotated gold
// corpus the segmentation engine can reproduce.
//
// Each gold line is "<compound> <annotation>". The annotation marks segment
// boundaries with '+' and carries linking-element and alternative markup
// that is stripped before comparison. An instance is covered when any one of
// the engine's decompositions has exactly the gold segments.
package evaluate
