// Command rlang runs rl scripts and provides an interactive REPL.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/sergev/rlang/lang"
	"github.com/sergev/rlang/parser"
	"github.com/sergev/rlang/runtime"
)

func main() {
	ev := runtime.NewEvaluator()
	args := os.Args[1:]
	if len(args) > 0 {
		var err error
		switch {
		case args[0] == "e":
			if len(args) < 2 {
				fmt.Fprintln(os.Stderr, "usage: rlang e CODE")
				os.Exit(64)
			}
			runtime.SetArgv(ev.Global, args[2:])
			err = runtime.EvaluateSource(ev, "input", args[1])
		case args[0] == "-":
			runtime.SetArgv(ev.Global, args[1:])
			err = runtime.EvaluateReader(ev, "stdin", os.Stdin)
		default:
			runtime.SetArgv(ev.Global, args[1:])
			err = runtime.EvaluateFile(ev, args[0])
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "rlang: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runtime.SetArgv(ev.Global, nil)
	runREPL(ev)
}

func runREPL(ev *lang.Evaluator) {
	if !isInteractive() {
		runBufferedREPL(ev, bufio.NewReader(os.Stdin))
		return
	}
	runInteractiveREPL(ev)
}

// runChunk parses and executes one REPL input. It reports whether the input
// was incomplete and should keep accumulating.
func runChunk(ev *lang.Evaluator, src string) (incomplete bool) {
	prog, err := parser.Parse("repl", src)
	if err != nil {
		if parser.IsIncomplete(err) {
			return true
		}
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		return false
	}
	if err := lang.Resolve(prog); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return false
	}
	if err := ev.Run(prog, nil); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return false
}

func runBufferedREPL(ev *lang.Evaluator, reader *bufio.Reader) {
	var buffer strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if buffer.Len() == 0 && strings.TrimSpace(line) == "" {
					return
				}
			} else {
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(line)
		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
			if errors.Is(err, io.EOF) {
				return
			}
			continue
		}
		if incomplete := runChunk(ev, src); incomplete && !errors.Is(err, io.EOF) {
			continue
		}
		buffer.Reset()
		if errors.Is(err, io.EOF) {
			return
		}
	}
}

func runInteractiveREPL(ev *lang.Evaluator) {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := "rl> "
		if buffer.Len() > 0 {
			prompt = ".... "
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
			continue
		}
		if runChunk(ev, src) {
			continue
		}
		buffer.Reset()
		if trimmed := strings.TrimSpace(src); trimmed != "" {
			state.AppendHistory(trimmed)
		}
	}
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".rl_history")
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
