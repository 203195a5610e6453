package report

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`         __        __                 __`, "#fde047"},
	{`   ___  / /  ___  / /_ ___   ___ ___ / /  ___  ___ ___`, "#facc15"},
	{`  / _ \/ _ \/ _ \/ __// _ \ (_-</ _ \/ _ \/ -_)/ __/ -_)`, "#fb923c"},
	{` / .__/_//_/\___/\__/ \___//___/ .__/_//_/\__//_/  \__/`, "#f97316"},
	{`/_/                           /_/`, "#ef4444"},
}

// PrintBanner writes the photosphere banner to w. Colors are dropped when w
// is not a terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Success writes a green status line.
func Success(w io.Writer, format string, args ...any) {
	status(w, "✔", "#22c55e", format, args...)
}

// Failure writes a red status line.
func Failure(w io.Writer, format string, args ...any) {
	status(w, "✘", "#ef4444", format, args...)
}

func status(w io.Writer, mark, color, format string, args ...any) {
	out := termenv.NewOutput(w)
	prefix := out.String(mark).Foreground(out.Color(color)).Bold()
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
