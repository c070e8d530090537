// Package dictprep derives ranked wordlists from other ranked wordlists.
//
// Every tool streams "<word>\t<rank>" lines, so its output can be fed straight
// back into the dictionary loader or compiled into an index.
package dictprep
