package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"
)

func main() {
	ctx := context.Background()

	var configPath string
	var trace bool
	var depthLimit int
	var workers int
	var noStdlib bool
	flag.StringVar(&configPath, "config", defaultConfigPath(), "config file path")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&depthLimit, "depth-limit", 0, "recursion depth limit")
	flag.IntVar(&workers, "workers", 0, "parallel evaluation workers")
	flag.BoolVar(&noStdlib, "no-stdlib", false, "skip the standard definitions")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
	if depthLimit == 0 {
		depthLimit = cfg.DepthLimit
	}
	if workers == 0 {
		workers = cfg.Workers
	}
	noStdlib = noStdlib || cfg.NoStdlib
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = "rpnc> "
	}

	opts := []Option{
		WithOutput(os.Stdout),
		WithErrorOutput(os.Stderr),
	}
	if trace {
		opts = append(opts, WithLogf(log.Printf))
	}
	if depthLimit != 0 {
		opts = append(opts, WithDepthLimit(depthLimit))
	}
	if workers != 0 {
		opts = append(opts, WithWorkers(workers))
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if !interactive {
		opts = append(opts, WithInput(os.Stdin))
	}

	c := New(opts...)
	if !noStdlib {
		if err := c.loadStdLib(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
			os.Exit(1)
		}
	}

	if interactive {
		err = repl(c, prompt)
	} else {
		err = c.Run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
}

// repl reads from the terminal a line at a time, echoing how many
// tokens remain pending after each one.
func repl(c *Calc, prompt string) error {
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, prompt)
		if !sc.Scan() {
			fmt.Fprintln(os.Stdout)
			return sc.Err()
		}
		if err := c.Interpret(sc.Text()); err != nil {
			return err
		}
		if n := c.Size(); n > 0 {
			fmt.Fprintf(os.Stdout, "%v element(s) in stack\n", n)
		}
	}
}
