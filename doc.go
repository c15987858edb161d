// Package lazyseq provides lazy, multicast sequences of elements.
//
// A sequence is constructed from a producer, which answers "give me your next element" with a value,
// ErrDone to signal completion, or any other error. Producers may be synchronous (SyncSeq) or
// may block (Seq). Elements are only requested from the producer when a cursor asks for them.
//
// Every element a producer answers is memoized in a shared history. Copy returns an independent
// cursor over the same history, so any number of consumers can traverse a sequence while the
// producer is asked for each position at most once. Intermediate operations such as Map, Filter,
// GroupBy, Batch, Dedupe, Scan and Sort read from a private copy of their input, so several chains may
// be derived from the same sequence.
//
// An error returned by a producer or by a user-supplied function terminates the sequence at that
// position. The error is reported to the first cursor that reaches it; every later read, by that
// cursor or any other, observes ErrDone.
//
// Sequences may also be fed from the outside using NewChannel, and merged by arrival order using Join.
//
// Sort and Collect drain their input. Calling them on a sequence that never completes never returns.
package lazyseq
