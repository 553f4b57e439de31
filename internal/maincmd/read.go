package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/jymbol/lang/reader"
	"github.com/mna/jymbol/lang/value"
)

func (c *Cmd) Read(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var failed bool
	for _, path := range args {
		if err := readFile(stdio, path); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("read: one or more files failed")
	}
	return nil
}

func readFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	forms, err := reader.ReadAll(string(src))
	if err != nil {
		return err
	}
	for _, v := range forms {
		fmt.Fprintln(stdio.Stdout, value.Print(v))
	}
	return nil
}
