package main

import (
	"os"
	"strings"
)

// Logger collects notices raised while loading and matching (skipped rows,
// empty open sets) so they end up in one run log next to the results.
type Logger struct {
	Records []string
}

func (l *Logger) Append(message string) {
	l.Records = append(l.Records, message)
}

// WriteFile flushes the collected records; nothing is written when the run
// raised no notices.
func (l *Logger) WriteFile(path string) error {
	if len(l.Records) == 0 {
		return nil
	}
	return os.WriteFile(path, []byte(strings.Join(l.Records, "\n")+"\n"), 0o644)
}
