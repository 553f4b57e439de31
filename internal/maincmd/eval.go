package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/jymbol/internal/config"
	"github.com/mna/jymbol/lang/machine"
	"github.com/mna/jymbol/lang/reader"
	"github.com/mna/jymbol/lang/value"
)

func (c *Cmd) Eval(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var failed bool
	for _, path := range args {
		if err := evalFile(stdio, cfg, path); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("eval: one or more files failed")
	}
	return nil
}

func evalFile(stdio mainer.Stdio, cfg config.VM, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	forms, err := reader.ReadAll(string(src))
	if err != nil {
		return err
	}

	vm := machine.New()
	vm.MaxSteps = cfg.MaxSteps
	vm.ValueStackHint = cfg.ValueStackSize
	vm.FrameStackHint = cfg.FrameStackSize

	env := map[value.Symbol]value.Value{}
	for _, v := range forms {
		result, err := vm.Eval(env, v)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdio.Stdout, value.Print(result))
	}
	return nil
}
