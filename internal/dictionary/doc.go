// Package dictionary loads frequency-ranked wordlists into the immutable
// word-to-rank mapping the segmentation engine searches.
//
// A resource is a sequence of "<word> <rank>" lines. An entry is retained only
// when its rank reaches the configured floor and the word is longer than the
// minimum length (in characters). Two loading policies exist:
//
//   - PolicyHalt stops reading at the first line whose rank is below the
//     floor. This is only correct when the resource is sorted by descending
//     rank, so the loader also checks that ranks never increase before the
//     halt point and reports (or, with StrictOrder, rejects) violations.
//   - PolicyFilter reads every line and skips below-floor ones.
//
// Malformed lines (anything other than exactly two fields, or a rank that is
// not a non-negative integer) abort the load with a *LineError. A loaded
// Dictionary is never mutated and may be shared across goroutines.
package dictionary
