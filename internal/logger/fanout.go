package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// fileTimestampLayout is the stamp on every file-sink line.
const fileTimestampLayout = "01/02/2006 - 15:04:05"

// emit is the fan-out logger: it prefixes the message with the model
// tag, resolves the deduplicated destination union across the given
// categories, and writes once per unique sink.
//
//   - The first destination encountered gets the console write, styled,
//     unless style is the FileOnly sentinel.
//   - Every destination beyond the first - and every destination when
//     the console echo is suppressed - gets a timestamped line in its
//     per-tag text file instead.
//
// Guarantee: at most one console write and at most one file write per
// unique destination per call, even when a destination is reachable
// through several of the input categories.
func (l *Logger) emit(cats []Category, uid int, msg string, style *Style) {
	msg = fmt.Sprintf("[%s (%d)] %s", l.feed.Model(uid).Name, uid, msg)

	console := style != FileOnly
	for _, dest := range l.members.Destinations(cats, uid) {
		if console {
			fmt.Fprintln(l.console, style.Sprint(msg))
			console = false
			continue
		}
		if dest.HasFile() {
			l.appendToFile(dest, msg)
		}
	}
}

// appendToFile writes one timestamped line to the destination's append
// file, opening it lazily on first use. Sink failures are logged and
// skipped: one broken file must never stop event processing for the
// other sinks.
func (l *Logger) appendToFile(dest Destination, msg string) {
	f, ok := l.files[dest]
	if !ok {
		path := filepath.Join(l.dir, string(dest)+".txt")
		var err error
		f, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			slog.Error("opening log file failed", "destination", dest, "path", path, "error", err)
			return
		}
		l.files[dest] = f
	}

	line := fmt.Sprintf("[%s, %s] %s\n", l.now().Format(fileTimestampLayout), strings.ToUpper(string(dest)), msg)
	if _, err := f.WriteString(line); err != nil {
		slog.Error("writing log file failed", "destination", dest, "error", err)
	}
}

// closeFiles closes every open file sink.
func (l *Logger) closeFiles() error {
	var firstErr error
	for dest, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing %s: %w", dest, err)
		}
		delete(l.files, dest)
	}
	return firstErr
}
