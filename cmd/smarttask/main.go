package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MacroPower/smarttask/cmd/smarttask/commands"
)

const (
	cmdName = "smarttask"

	shortDesc = "Track tasks and chart your productivity."
	longDesc  = `SmartTask keeps a task list in a local file and charts it.

Tasks have a title, an optional description and due date, and a priority.
The stats and chart commands summarize completed, pending and overdue work,
the tasks completed over the last seven days, and the open tasks per
priority. The dashboard shows the same charts in the terminal.
`
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := commands.NewRootCmd(cmdName, shortDesc, longDesc)

	err := cmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
