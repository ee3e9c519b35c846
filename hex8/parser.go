package hex8

import (
	"fmt"

	"github.com/shepheb/hex8asm/core"
	"github.com/shepheb/psec"
)

// Wrap the most common parser ops for brevity.
func lit(s string) psec.Parser {
	return psec.Literal(s)
}
func sym(s string) psec.Parser {
	return psec.Symbol(s)
}
func ws() psec.Parser {
	return psec.Symbol("ws")
}

func buildHex8Parser() *psec.Grammar {
	g := psec.NewGrammar()

	g.AddSymbol("ws", psec.ManyDrop(psec.OneOf(" \t\r\n")))
	g.AddSymbol("ws1", psec.Many1(psec.OneOf(" \t\r")))
	g.AddSymbol("wsline", psec.Many(psec.OneOf(" \t\r")))

	// Comments run from ; or # to the end of the line.
	g.WithAction("comment", psec.Seq(psec.OneOf(";#"), psec.ManyDrop(psec.NoneOf("\n"))),
		func(r interface{}, loc *psec.Loc) (interface{}, error) {
			return nil, nil
		})

	// Line separator: trailing whitespace and comment, the newline itself,
	// then any run of blank or comment-only lines.
	g.AddSymbol("eol", psec.Many1(psec.Seq(sym("wsline"),
		psec.Optional(sym("comment")), lit("\n"), sym("wsline"))))

	g.AddSymbol("letterish",
		psec.Alt(psec.OneOf("$_"), psec.Range('a', 'z'), psec.Range('A', 'Z')))
	g.WithAction("identifier", psec.Seq(sym("letterish"),
		psec.Stringify(psec.Many(psec.Alt(psec.Range('0', '9'), sym("letterish"))))),
		func(r interface{}, loc *psec.Loc) (interface{}, error) {
			rs := r.([]interface{})
			return fmt.Sprintf("%c%s", rs[0].(byte), rs[1].(string)), nil
		})

	// A label definition is an identifier with a trailing colon.
	g.AddSymbol("label", psec.SeqAt(0, sym("identifier"), lit(":")))

	// The operand is a single bare token: a label name or a numeric literal
	// (possibly signed, possibly 0x/0o/0b-prefixed). Classification happens
	// in core.NewInstruction, not in the grammar, so malformed numbers fall
	// through to the label branch instead of failing the parse.
	g.AddSymbol("operand", psec.Stringify(psec.Many1(
		psec.Alt(psec.Range('0', '9'), psec.OneOf("+-"), sym("letterish")))))

	g.WithAction("statement",
		psec.Seq(psec.Optional(psec.SeqAt(0, sym("label"), sym("wsline"))),
			sym("identifier"),
			psec.Optional(psec.SeqAt(1, sym("ws1"), sym("operand")))),
		func(r interface{}, loc *psec.Loc) (interface{}, error) {
			rs := r.([]interface{})
			label, _ := rs[0].(string)
			mnemonic := rs[1].(string)
			operand, _ := rs[2].(string)
			return core.NewInstruction(label, mnemonic, operand), nil
		})

	// A line is a statement, or a standalone label naming the next
	// instruction.
	g.AddSymbol("content", psec.Alt(sym("statement"), sym("label")))

	// The preamble or postamble, whitespace and comments on either end of a file.
	g.AddSymbol("amble",
		psec.Seq(ws(), psec.Many(psec.Seq(sym("comment"), ws()))))

	g.WithAction("file",
		psec.SeqAt(1, sym("amble"), psec.SepBy(sym("content"), sym("eol")), sym("amble")),
		func(r interface{}, loc *psec.Loc) (interface{}, error) {
			items, _ := r.([]interface{})
			var code []*core.Instruction
			pending := ""
			for _, item := range items {
				switch v := item.(type) {
				case string: // Standalone label.
					if pending != "" {
						return nil, fmt.Errorf("labels '%s' and '%s' both name the next instruction", pending, v)
					}
					pending = v
				case *core.Instruction:
					if pending != "" {
						if v.Label != "" {
							return nil, fmt.Errorf("labels '%s' and '%s' both name one instruction", pending, v.Label)
						}
						v.Label = pending
						pending = ""
					}
					code = append(code, v)
				}
			}
			if pending != "" {
				return nil, fmt.Errorf("label '%s' has no instruction to name", pending)
			}
			return code, nil
		})

	g.AddSymbol("START", sym("file"))
	return g
}
