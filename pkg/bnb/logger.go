package bnb

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// log is the package-level structured logger, lazily pointed at stderr
// until ConfigureLogger redirects it, mirroring the single process-wide
// logger handle in spec.md §6. Grounded on the direct zerolog dependency
// and usage pattern of KhryptorGraphics-OllamaMax.
var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// ConfigureLogger redirects the package logger to w. When onlyMessages is
// true, only the rendered message is written (no level/timestamp
// preamble), matching the `only_messages` flag of the Python
// `configure_logfile` helper (`bnbpy/pypure/search.py`).
func ConfigureLogger(w io.Writer, onlyMessages bool) {
	if onlyMessages {
		log = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			PartsOrder: []string{zerolog.MessageFieldName},
		})
		return
	}
	log = zerolog.New(w).With().Timestamp().Caller().Logger()
}

// searchLogger renders the fixed-width event table from spec.md §6:
// one header row, then one row per event, columns
// `Node | Best Sol | LB | Gap | Message`, widths 7|10|10|7|14.
// A direct structural port of the Python `bnbpy.logger.SearchLogger`.
type searchLogger struct {
	headers []string
	widths  []int
}

const logDelimiter = " | "

func newSearchLogger() *searchLogger {
	return &searchLogger{
		headers: []string{"Node", "Best Sol", "LB", "Gap", "Message"},
		widths:  []int{7, 10, 10, 7, 14},
	}
}

func (l *searchLogger) formatRow(cols ...string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = centerPad(c, l.widths[i])
	}
	return strings.Join(parts, logDelimiter)
}

func (l *searchLogger) logHeaders() {
	log.Info().Msg(l.formatRow(l.headers...))
	underscores := make([]string, len(l.widths))
	for i, w := range l.widths {
		underscores[i] = strings.Repeat("-", w)
	}
	log.Info().Msg(strings.Join(underscores, logDelimiter))
}

func (l *searchLogger) logRow(node int, bestSol, lb, gap string, message string) {
	log.Info().Msg(l.formatRow(fmt.Sprintf("%d", node), bestSol, lb, gap, message))
}

// centerPad centers s within a field of the given width, matching
// Python's `f"{item:^{width}}"`.
func centerPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
