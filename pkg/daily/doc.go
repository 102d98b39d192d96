// Package daily derives reproducible pseudo-random streams from calendar dates.
//
// Everything in this package is a pure function of its inputs:
//   - the seed of a day depends only on the date and the namespace
//     (no clock, no system entropy, no machine specific state)
//   - two streams built from equal seeds produce equal sequences of draws
//   - namespaces separate independent streams sharing the same date
//     ("word-of-day" and "quote-of-day" never share a seed)
//
// The current date is never read here. Callers pass it in, usually from pkg/clock.
//
// A Stream is not safe for concurrent use. Concurrent callers either build their
// own streams (they are cheap) or serialize draws made against a shared one.
package daily
