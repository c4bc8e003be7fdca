// Command sexpr reads and evaluates S-expressions.
//
//	sexpr [-config file] [-prompt fmt] [-plain] [-dump] [-e expr] [file... [-]]
//
// Files are evaluated in order; a trailing "-" continues with the REPL.
// Without files it starts the REPL at once.
package main

import (
	"flag"
	"log"
	"os"

	sexpr "github.com/nukata/little-sexpr-in-go"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sexpr: ")

	configPath := flag.String("config", "", "YAML configuration `file` (default ~/.sexpr.yaml)")
	prompt := flag.String("prompt", "", "prompt `format`; %d receives the parenthesis balance")
	plain := flag.Bool("plain", false, "disable line editing")
	dump := flag.Bool("dump", false, "dump every parsed expression")
	expr := flag.String("e", "", "evaluate `expr`, print the result and exit")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "prompt":
			cfg.Prompt = *prompt
		case "plain":
			cfg.LineEditing = !*plain
		case "dump":
			cfg.Dump = *dump
		}
	})

	con := newConsole(os.Stdin, os.Stdout, cfg.LineEditing && isTerminal())
	repl := &REPL{
		Eval:   sexpr.NewEvaluator(con, con),
		Out:    con,
		Err:    os.Stderr,
		Prompt: cfg.Prompt,
		Dump:   cfg.Dump,
	}
	fatal := func(err error) {
		con.Close()
		log.Fatal(err)
	}

	if *expr != "" {
		ok := repl.EvalText(*expr)
		con.Close()
		if !ok {
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	for _, name := range args {
		if name == "-" {
			continue
		}
		if err := repl.Load(name); err != nil {
			fatal(err)
		}
	}
	if len(args) > 0 && args[len(args)-1] != "-" {
		con.Close()
		return
	}
	if err := repl.Run(con); err != nil {
		fatal(err)
	}
	con.Close()
}
