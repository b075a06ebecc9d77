package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

// TestUsage_MentionsEveryFlag keeps the help text in step with the flag sets.
func TestUsage_MentionsEveryFlag(t *testing.T) {
	t.Parallel()

	renderFS, _ := newRenderFlagSet(io.Discard)
	lotsFS, _ := newLotsFlagSet(io.Discard)

	tests := []struct {
		name  string
		fs    *flag.FlagSet
		print func(io.Writer)
	}{
		{"render", renderFS, printRenderUsage},
		{"lots", lotsFS, printLotsUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.print(&buf)
			usage := buf.String()

			tt.fs.VisitAll(func(f *flag.Flag) {
				if !strings.Contains(usage, "--"+f.Name+" ") {
					t.Errorf("usage does not mention --%s", f.Name)
				}
				if f.Shorthand != "" && !strings.Contains(usage, "-"+f.Shorthand+", --"+f.Name) {
					t.Errorf("usage does not mention -%s for --%s", f.Shorthand, f.Name)
				}
			})
		})
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args     []string
		wantCode int
		want     string
	}{
		{nil, ExitSuccess, "Commands:"},
		{[]string{"render"}, ExitSuccess, "Usage: cardsheet render <input>"},
		{[]string{"lots"}, ExitSuccess, "Usage: cardsheet lots <master>"},
		{[]string{"version"}, ExitSuccess, "Show version information."},
		{[]string{"help"}, ExitSuccess, "Usage: cardsheet help [command]"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := newTestEnv()
			if code := runHelp(tt.args, env); code != tt.wantCode {
				t.Errorf("runHelp() = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("stdout should contain %q, got %q", tt.want, stdout.String())
			}
		})
	}
}

func TestRunHelp_UnknownCommand(t *testing.T) {
	t.Parallel()

	for _, topic := range []string{"convert", "--render", "Render"} {
		t.Run(topic, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			if code := runHelp([]string{topic}, env); code != ExitUsage {
				t.Errorf("runHelp(%q) = %d, want %d", topic, code, ExitUsage)
			}
			if want := "Unknown command: " + topic; !strings.Contains(stderr.String(), want) {
				t.Errorf("stderr should contain %q, got %q", want, stderr.String())
			}
			if stdout.Len() != 0 {
				t.Errorf("stdout should be empty, got %q", stdout.String())
			}
		})
	}
}
