package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/jymbol/lang/scanner"
	"github.com/mna/jymbol/lang/token"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var failed bool
	for _, path := range args {
		if err := tokenizeFile(stdio, path); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("tokenize: one or more files failed")
	}
	return nil
}

func tokenizeFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var errs scanner.ErrorList
	var sc scanner.Scanner
	sc.Init(src, errs.Add)

	var val token.Value
	for {
		tok := sc.Scan(&val)
		if tok == token.EOF {
			break
		}
		fmt.Fprintf(stdio.Stdout, "%s: %s %q\n", val.Pos, tok, val.Raw)
	}

	errs.Sort()
	return errs.Err()
}
