package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the markov banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _ __ ___   __ _ _ __| | _______   __", "#34d399"},
		{" | '_ ` _ \\ / _` | '__| |/ / _ \\ \\ / /", "#2dd4bf"},
		{" | | | | | | (_| | |  |   < (_) \\ V / ", "#22d3ee"},
		{" |_| |_| |_|\\__,_|_|  |_|\\_\\___/ \\_/  ", "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
