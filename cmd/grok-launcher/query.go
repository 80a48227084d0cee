package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/germanamz/grok-launcher/pkg/extension"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query [prompt...]",
		Short: "Run one query and print the result items",
		Long: `Runs the query handler once, exactly as the launcher would, and prints
the resulting items. Error items are results too, so the command exits 0
unless the preferences cannot be read at all.`,
		Example: `  grok-launcher query what is a goroutine
  grok-launcher query --set line_wrap=60 --set temperature=0.2 "explain channels"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := a.preferences()
			if err != nil {
				return err
			}

			items := a.handler().Handle(cmd.Context(), prefs, strings.Join(args, " "))

			out := cmd.OutOrStdout()
			_, err = fmt.Fprint(out, renderItems(items, terminalWidth(out)))
			return err
		},
	}
}

func (a *app) handler() *extension.Handler {
	h := extension.New(a.logger)
	h.BaseURL = a.baseURL
	h.UserAgent = "grok-launcher/" + version
	return h
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd fits in int on supported platforms
		return 0
	}

	width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // fd fits in int on supported platforms
	if err != nil {
		return 0
	}
	return width
}
