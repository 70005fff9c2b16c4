package main

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/fwojciec/cpm"
	"github.com/fwojciec/cpm/fs"
)

// Runner executes a shell command with stdin and returns what it printed.
type Runner interface {
	Run(ctx context.Context, command string, stdin string) (string, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, command string, stdin string) (string, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, command string, stdin string) (string, error) {
	return f(ctx, command, stdin)
}

// ShellRunner runs commands with sh -c.
type ShellRunner struct{}

// Run executes command through the shell, feeding stdin.
// Stderr of the command is included in the error when it fails.
func (ShellRunner) Run(ctx context.Context, command string, stdin string) (string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.String(), fmt.Errorf("%w: %s", err, msg)
		}
		return stdout.String(), err
	}
	return stdout.String(), nil
}

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	args := c.Command
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) == 0 {
		err := cpm.Errorf(cpm.EINVALID, "no command given, usage: cpm run -- CMD")
		fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
		return err
	}
	command := strings.Join(args, " ")

	cases, err := fs.ReadSamples(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
		return err
	}
	if len(cases) == 0 {
		err := cpm.Errorf(cpm.ENOTFOUND, "no sample files in %s", c.Dir)
		fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
		return err
	}

	runner := deps.Runner
	if runner == nil {
		runner = ShellRunner{}
	}

	passed := 0
	for i, sc := range cases {
		n := i + 1
		ctx, cancel := context.WithTimeout(deps.Ctx, c.timeout())
		begin := time.Now()
		got, err := runner.Run(ctx, command, sc.Input)
		elapsed := time.Since(begin)
		timedOut := ctx.Err() == context.DeadlineExceeded
		cancel()

		if err := deps.Ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(deps.Stdout, "--- sample %d (%s)\n", n, elapsed.Round(time.Millisecond))
		switch {
		case timedOut:
			fmt.Fprintf(deps.Stdout, "[TLE] exceeded %s\n", c.timeout())
		case err != nil:
			fmt.Fprintf(deps.Stdout, "[RE] %v\n", err)
		case got == sc.Output:
			passed++
			fmt.Fprintln(deps.Stdout, "[OK]")
		default:
			fmt.Fprintln(deps.Stdout, "[WA]")
			fmt.Fprintf(deps.Stdout, "expected:\n%s\n", sc.Output)
			fmt.Fprintf(deps.Stdout, "got:\n%s\n", got)
		}
	}

	fmt.Fprintf(deps.Stdout, "%d / %d passed\n", passed, len(cases))
	if passed != len(cases) {
		return fmt.Errorf("%d of %d samples failed", len(cases)-passed, len(cases))
	}
	return nil
}

func (c *RunCmd) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 5 * time.Second
	}
	return c.Timeout
}
