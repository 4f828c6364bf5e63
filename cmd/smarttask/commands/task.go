package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MacroPower/smarttask/pkg/tasks"
)

const (
	taskDesc = `This command manages the task list.
`
	taskExample = `  smarttask task <command> [arguments]...
  # Add a task due next Friday
  smarttask task add "Renew passport" --due 2025-03-14 --priority high

  # List the open tasks matching a search
  smarttask task list --filter pending --search passport

  # Mark a task done by its id prefix
  smarttask task done 3f2a

  # Print reminders for tasks due today, every minute
  smarttask task remind --every 1m
`
)

var (
	ErrTaskCommandFailed = errors.New("task command failed")
	ErrUnknownOutput     = errors.New("unknown output format")
)

// NewTaskCmd returns the task command.
func NewTaskCmd(args *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "task",
		Aliases:      []string{"tasks"},
		Short:        "Task management",
		Long:         taskDesc,
		Example:      taskExample,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewTaskAddCmd(args))
	cmd.AddCommand(NewTaskListCmd(args))
	cmd.AddCommand(NewTaskShowCmd(args))
	cmd.AddCommand(NewTaskEditCmd(args))
	cmd.AddCommand(NewTaskCompleteCmd(args, "done", "Mark tasks completed", true))
	cmd.AddCommand(NewTaskCompleteCmd(args, "undo", "Mark tasks pending", false))
	cmd.AddCommand(NewTaskDeleteCmd(args))
	cmd.AddCommand(NewTaskClearCmd(args))
	cmd.AddCommand(NewTaskRemindCmd(args))

	return cmd
}

func NewTaskAddCmd(args *RootArgs) *cobra.Command {
	description := new(string)
	due := new(string)
	priority := new(string)

	cmd := &cobra.Command{
		Use:   "add <title>...",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			s, err := openStore(args)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			t, err := s.Add(tasks.Draft{
				Title:       strings.Join(pArgs, " "),
				Description: *description,
				DueDate:     *due,
				Priority:    *priority,
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			cc.Printf("Added %s %s\n", shortID(t.ID), t.Title)

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(description, "description", "d", "", "Task description")
	cmd.Flags().StringVar(due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(priority, "priority", "p", string(tasks.PriorityMedium), "Priority (low, medium, high)")

	return cmd
}

func NewTaskListCmd(args *RootArgs) *cobra.Command {
	filter := new(string)
	search := new(string)
	output := new(string)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			f, err := tasks.ParseFilter(*filter)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			s, err := openStore(args)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			ts, err := s.List()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			now := s.Now()
			ts = tasks.Select(ts, f, *search, now)

			if *output == "text" {
				return printTasks(cc.OutOrStdout(), ts, now)
			}

			return encode(cc.OutOrStdout(), *output, ts)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(filter, "filter", "f", string(tasks.FilterAll), "Filter (all, completed, pending, overdue)")
	cmd.Flags().StringVarP(search, "search", "s", "", "Only tasks whose title or description contains this text")
	cmd.Flags().StringVarP(output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func NewTaskShowCmd(args *RootArgs) *cobra.Command {
	output := new(string)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			s, err := openStore(args)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			id, err := resolveID(s, pArgs[0])
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			t, err := s.Get(id)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			return encode(cc.OutOrStdout(), *output, t)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(output, "output", "o", "yaml", "Output format (json, yaml)")

	return cmd
}

func NewTaskEditCmd(args *RootArgs) *cobra.Command {
	title := new(string)
	description := new(string)
	due := new(string)
	priority := new(string)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long:  "Edit a task. Only the given flags change; pass --due \"\" to clear the due date.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			var p tasks.Patch

			flags := cc.Flags()
			if flags.Changed("title") {
				p.Title = title
			}

			if flags.Changed("description") {
				p.Description = description
			}

			if flags.Changed("due") {
				p.DueDate = due
			}

			if flags.Changed("priority") {
				p.Priority = priority
			}

			if p == (tasks.Patch{}) {
				return fmt.Errorf("%w: %w: nothing to change", ErrArgument, ErrInvalidArgument)
			}

			s, err := openStore(args)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			id, err := resolveID(s, pArgs[0])
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			t, err := s.Update(id, p)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			cc.Printf("Updated %s %s\n", shortID(t.ID), t.Title)

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(description, "description", "d", "", "New description")
	cmd.Flags().StringVar(due, "due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(priority, "priority", "p", "", "New priority (low, medium, high)")

	return cmd
}

// NewTaskCompleteCmd returns a command that sets the completion state of
// tasks to done.
func NewTaskCompleteCmd(args *RootArgs, use, short string, done bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			s, err := openStore(args)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			for _, prefix := range pArgs {
				id, err := resolveID(s, prefix)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
				}

				t, err := s.SetCompleted(id, done)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
				}

				cc.Printf("%s %s %s\n", statusMark(t, s.Now()), shortID(t.ID), t.Title)
			}

			return nil
		},
		SilenceUsage: true,
	}
}

func NewTaskDeleteCmd(args *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			s, err := openStore(args)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			for _, prefix := range pArgs {
				id, err := resolveID(s, prefix)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
				}

				err = s.Delete(id)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
				}

				cc.Printf("Deleted %s\n", shortID(id))
			}

			return nil
		},
		SilenceUsage: true,
	}
}

func NewTaskClearCmd(args *RootArgs) *cobra.Command {
	yes := new(bool)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			if !*yes {
				return fmt.Errorf("%w: %w: refusing to delete every task without --yes", ErrArgument, ErrInvalidArgument)
			}

			s, err := openStore(args)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			err = s.Clear()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			cc.Println("All tasks cleared!")

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVarP(yes, "yes", "y", false, "Confirm deleting every task")

	return cmd
}

func NewTaskRemindCmd(args *RootArgs) *cobra.Command {
	every := new(time.Duration)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Print open tasks due today that were not yet reminded today",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			s, err := openStore(args)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			remind := func() error {
				due, err := s.Remind()
				if err != nil {
					return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
				}

				printReminder(cc.OutOrStdout(), due)

				return nil
			}

			err = remind()
			if err != nil || *every <= 0 {
				return err
			}

			ticker := time.NewTicker(*every)
			defer ticker.Stop()

			ctx := cc.Context()
			for {
				select {
				case <-ctx.Done():
					slog.Debug("reminders stopped", slog.Any("reason", ctx.Err()))

					return nil
				case <-ticker.C:
					err := remind()
					if err != nil {
						return err
					}
				}
			}
		},
		SilenceUsage: true,
	}

	cmd.Flags().DurationVar(every, "every", 0, "Keep running and check again at this interval")

	return cmd
}

func printReminder(w io.Writer, due []tasks.Task) {
	if len(due) == 0 {
		return
	}

	titles := make([]string, 0, len(due))
	for _, t := range due {
		titles = append(titles, t.Title)
	}

	fmt.Fprintf(w, "You have %d task(s) due today: %s\n", len(due), strings.Join(titles, ", "))
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		err := enc.Encode(v)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		err := enc.Encode(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		err = enc.Close()
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidArgument, ErrUnknownOutput, format)
	}

	return nil
}
