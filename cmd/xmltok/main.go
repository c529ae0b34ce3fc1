package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/midbel/cli"
)

var errFail = errors.New("fail")

var (
	summary = "xmltok streams matching fragments out of an XML document without loading it into memory"
	help    = `xmltok tokenize <path> [file]   print every fragment matching a selector path
xmltok browse <path> [file]     page through the matches interactively

<path> is a "/"-separated selector such as "/root/item" or "//ns:item";
[file] defaults to stdin. See each subcommand's -h for its flags.`
)

func main() {
	var (
		set  = cli.NewFlagSet("xmltok")
		root = prepare()
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"tokenize"}, &cli.Command{Name: "tokenize", Handler: tokenizeCmd})
	root.Register([]string{"browse"}, &cli.Command{Name: "browse", Handler: browseCmd})
	return root
}

var (
	tokenizeCmd TokenizeCmd
	browseCmd   BrowseCmd
)
