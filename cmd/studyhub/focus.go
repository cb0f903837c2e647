package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/studyhub/backend/internal/pomodoro"
)

func newFocusCommand() *cobra.Command {
	var focusMinutes, breakMinutes, cycles int

	command := &cobra.Command{
		Use:   "focus",
		Short: "Run a Pomodoro timer in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			timer := newFocusTimer(focusMinutes, breakMinutes, cmd.OutOrStdout())
			printHeader(cmd, "โฟกัส %d นาที / พัก %d นาที (Ctrl+C เพื่อหยุด)", timer.State().FocusMinutes, timer.State().BreakMinutes)

			runner := pomodoro.NewRunner(timer, func(s pomodoro.State) {
				fmt.Fprintf(cmd.OutOrStdout(), "\r%s", statusLine(s))
				if cycles > 0 && s.Sessions >= cycles {
					cancel()
				}
			})

			err := runner.Run(ctx)
			printf(cmd, "\n")
			successColor.Fprintf(cmd.OutOrStdout(), "ครบ %d รอบโฟกัส\n", timer.Sessions())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	command.Flags().IntVar(&focusMinutes, "focus", pomodoro.DefaultFocusMinutes, "focus minutes (1-120)")
	command.Flags().IntVar(&breakMinutes, "break", pomodoro.DefaultBreakMinutes, "break minutes (1-30)")
	command.Flags().IntVar(&cycles, "cycles", 0, "stop after this many focus sessions; 0 runs until interrupted")
	return command
}

// newFocusTimer rings the terminal bell whenever a phase runs out.
func newFocusTimer(focusMinutes, breakMinutes int, w io.Writer) *pomodoro.Timer {
	timer := pomodoro.NewTimer()
	timer.SetFocusMinutes(focusMinutes)
	timer.SetBreakMinutes(breakMinutes)
	timer.OnCue(func(from pomodoro.Phase) {
		fmt.Fprint(w, "\a")
		if from == pomodoro.PhaseFocus {
			successColor.Fprint(w, "\nหมดเวลาโฟกัส ได้เวลาพัก\n")
		} else {
			warnColor.Fprint(w, "\nหมดเวลาพัก กลับมาโฟกัส\n")
		}
	})
	return timer
}

func statusLine(s pomodoro.State) string {
	label := "โฟกัส"
	if s.Phase == pomodoro.PhaseBreak {
		label = "พัก"
	}
	return fmt.Sprintf("%-6s %s  รอบที่ %d  %3.0f%%", label, s.Display, s.Sessions+1, s.Progress)
}
