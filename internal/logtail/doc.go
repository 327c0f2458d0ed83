// Package logtail reads the trailing lines of aura's own log files.
//
// It backs the `aura logs` command: a bounded ring buffer keeps memory flat
// regardless of file size, and an optional line filter (see LevelMatcher)
// applies before lines enter the ring, so "the last 50 warnings" means
// exactly that rather than "warnings among the last 50 lines".
//
// A missing log file is not an error; it simply yields no lines, matching
// the first run before anything has been logged.
package logtail
