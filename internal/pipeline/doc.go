// Package pipeline turns a directory of frames into a result file.
//
// [Collect] lists the directory, parses each entry's frame number, scores
// it, and returns the results sorted by frame number. It stops at the first
// failure. [Run] wraps Collect with backend selection, result and chart
// output, and summary logging.
package pipeline
