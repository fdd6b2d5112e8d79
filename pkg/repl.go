package kaleido

import (
	"fmt"
	"io"
)

// REPL drives the parser over an input stream, acknowledging every top-level
// construct with a diagnostic line on the output writer. A malformed
// construct is reported and dropped; parsing resumes with the next one.
type REPL struct {
	out io.Writer
}

func NewREPL(out io.Writer) *REPL {
	return &REPL{out: out}
}

func (r *REPL) Run(in io.Reader) {
	r.run(NewParser(NewLexerFromReader(in)))
}

func (r *REPL) RunFile(filename string) error {
	lexer, err := NewLexer(filename)
	if err != nil {
		return err
	}

	r.run(NewParser(lexer))
	return nil
}

func (r *REPL) run(p *Parser) {
	for {
		fmt.Fprint(r.out, "ready> ")

		node, err := p.Next()
		if err != nil {
			fmt.Fprintf(r.out, "error: %s\n", err)
			continue
		}

		switch n := node.(type) {
		case *EOS:
			return
		case *Prototype:
			fmt.Fprintln(r.out, "parsed an extern")
		case *FuncDecl:
			if n.IsAnon() {
				fmt.Fprintln(r.out, "parsed a top-level expr")
			} else {
				fmt.Fprintln(r.out, "parsed a def")
			}
		}
	}
}
