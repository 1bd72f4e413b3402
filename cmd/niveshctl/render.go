package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
)

var stdout io.Writer = os.Stdout

// printMarkdown renders md for the terminal, or prints it as is with -plain.
func printMarkdown(md string) {
	if *plain {
		fmt.Fprint(stdout, md)
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	// Styling is best effort.
	fmt.Fprint(stdout, md)
}
