package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/midbel/xmltok/exchange"
	"github.com/midbel/xmltok/token"
)

// TokenizeCmd dumps every fragment matching a selector path, one per
// line, the direct analogue of cmd/xml's query-and-print loop but
// streamed instead of built as a document tree.
type TokenizeCmd struct {
	Namespaces map[string]string
	Inject     bool
	Charset    string
	Quiet      bool
}

const tokenizeInfo = "%d fragment(s) matched %q"

func (t TokenizeCmd) Run(args []string) error {
	set := flag.NewFlagSet("tokenize", flag.ContinueOnError)
	set.BoolVar(&t.Inject, "inject", false, "inject inherited namespaces into the matched element instead of wrapping its ancestors")
	set.StringVar(&t.Charset, "charset", "", "declared charset of the input (default UTF-8)")
	set.BoolVar(&t.Quiet, "quiet", false, "suppress fragment output, print only the match count")
	set.Func("ns", "prefix=uri namespace binding, repeatable", func(arg string) error {
		m, err := parseNamespaceFlag(t.Namespaces, arg)
		t.Namespaces = m
		return err
	})
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() < 1 {
		return fmt.Errorf("tokenize: missing selector path")
	}
	path := set.Arg(0)

	r, err := openInput(set.Arg(1))
	if err != nil {
		return err
	}
	defer r.Close()

	mode := token.ModeWrap
	if t.Inject {
		mode = token.ModeInject
	}
	expr := exchange.NewExpression(path,
		exchange.WithNamespaces(t.Namespaces),
		exchange.WithMode(mode),
	)
	cur, err := expr.Evaluate(exchange.New(r).WithCharset(t.Charset))
	if err != nil {
		return err
	}
	defer cur.Close()

	var count int
	for {
		frag, ok := cur.Next()
		if !ok {
			break
		}
		count++
		if !t.Quiet {
			fmt.Fprintln(os.Stdout, frag)
		}
	}
	if err := cur.Err(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, tokenizeInfo, count, path)
	fmt.Fprintln(os.Stderr)
	if count == 0 {
		return errFail
	}
	return nil
}
