package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roomtrooper/internal/ui"
)

// runMenu is the interactive default: a numbered task loop over the same
// operations the subcommands expose.
func runMenu(cmd *cobra.Command, app *appContext) error {
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	if identity, err := app.client.ClientDetails(cmd.Context()); err == nil {
		ui.RenderIdentity(out, identity.Name, identity.Role)
	} else {
		app.logger.Warn("credential lookup failed", zap.Error(err))
	}

	for {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  1) export rooms to sheet")
		fmt.Fprintln(out, "  2) update rooms from sheet")
		fmt.Fprintln(out, "  3) bulk-create rooms")
		fmt.Fprintln(out, "  0) quit")

		choice, ok := prompt(out, in, "task [0-3] > ")
		if !ok {
			return nil
		}
		switch choice {
		case "1":
			runSub(out, cmd, newExportCommand(app), nil)
		case "2":
			sub := newUpdateCommand(app)
			if file, _ := prompt(out, in, fmt.Sprintf("sheet [%s] > ", defaultSheet)); file != "" {
				_ = sub.Flags().Set("file", file)
			}
			runSub(out, cmd, sub, nil)
		case "3":
			sub := newCreateCommand(app)
			if count, _ := prompt(out, in, "number of rooms [10] > "); isPositiveInt(count) {
				_ = sub.Flags().Set("count", count)
			}
			if base, _ := prompt(out, in, "base name [Room] > "); base != "" {
				_ = sub.Flags().Set("base-name", base)
			}
			if site, _ := prompt(out, in, "site name (optional) > "); site != "" {
				_ = sub.Flags().Set("site", site)
			}
			runSub(out, cmd, sub, nil)
		case "0", "q", "quit":
			return nil
		default:
			fmt.Fprintln(out, "invalid choice, try again")
		}
	}
}

// runSub executes a subcommand inline; its failure is reported but never
// ends the menu loop.
func runSub(out io.Writer, parent *cobra.Command, sub *cobra.Command, args []string) {
	sub.SetContext(parent.Context())
	sub.SetOut(out)
	if err := sub.RunE(sub, args); err != nil {
		fmt.Fprintf(out, "%s failed: %v\n", sub.Name(), err)
	}
}

func prompt(out io.Writer, in *bufio.Scanner, question string) (string, bool) {
	fmt.Fprint(out, question)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}

func isPositiveInt(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}
