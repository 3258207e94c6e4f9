// Package litmus defines the program model for memory-consistency litmus
// tests: small straight-line multi-threaded programs of loads and stores on
// named scalar variables.
//
// A Program is immutable once constructed. Thread count and per-thread
// instruction count are bounded (MaxThreads, MaxInstructions) and enforced at
// construction, so a Program that exists is always within bounds.
//
// Two input formats are supported: the classic line-oriented format
// (one instruction per line, "---" ends a thread) and a YAML document form.
// Both normalize variable names to NFC at the parse boundary so that
// canonical outcome strings compare equal for equivalent spellings.
package litmus
