// Package asm is a two pass assembler for CHIP-8 programs.
//
// Source uses Cowgod's mnemonics. Each line is
//
//	[label:]... [MNEMONIC operand, ...] [; comment]
//
// Numbers may be written as $hex, 0xhex, 0bbinary, decimal or 'c', and
// $(expr) evaluates a Starlark expression that can see every equate and
// label. Directives are .equ NAME value, .byte, .word and .org.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const (
	// Origin is the address the first assembled byte is loaded at.
	Origin = 0x200
	// memoryEnd is one past the last addressable byte.
	memoryEnd = 0x1000
)

// Predefined symbols, always visible to the program.
var sysEquate = map[string]int{
	"FONT":  0x050,
	"START": Origin,
}

// Assembler turns source text into a program image.
type Assembler struct {
	Verbose bool // If set, logs each source line as it is assembled.

	predefine map[string]int
}

// Predefine adds or replaces a symbol visible to every Parse.
func (asm *Assembler) Predefine(name string, value int) {
	if asm.predefine == nil {
		asm.predefine = map[string]int{}
	}
	asm.predefine[name] = value
}

// Line maps one source line to the bytes it produced.
type Line struct {
	LineNo int
	Addr   uint16
	Bytes  []byte
	Text   string
}

// Program is an assembled image. Bytes starts at Origin and is ready to load.
type Program struct {
	Origin uint16
	Bytes  []byte
	Labels map[string]uint16
	Lines  []Line
}

// statement is one parsed source line.
type statement struct {
	lineNo int
	text   string
	labels []string
	op     string // upper case mnemonic, or lower case directive
	args   []string
	addr   int
	size   int
}

// Parse assembles input. Errors are *ErrLine values wrapping one of the
// package sentinels.
func (asm *Assembler) Parse(input io.Reader) (*Program, error) {
	var stmts []*statement
	symbols := maps.Clone(sysEquate)
	for name, value := range asm.predefine {
		symbols[name] = value
	}
	labels := map[string]uint16{}

	// Pass one: split lines, size them and place labels.
	scanner := bufio.NewScanner(input)
	lineno := 0
	pc := Origin
	for scanner.Scan() {
		lineno++
		text := scanner.Text()
		if asm.Verbose {
			log.Printf("%v: %v", lineno, text)
		}

		st, err := parseStatement(text)
		if err != nil {
			return nil, lineError(lineno, text, err)
		}
		st.lineNo = lineno
		st.addr = pc

		for _, label := range st.labels {
			if _, ok := symbols[label]; ok {
				return nil, lineError(lineno, text, ErrLabelDuplicate)
			}
			symbols[label] = pc
			labels[label] = uint16(pc)
		}

		switch st.op {
		case "":
		case ".equ":
			if err := asm.equate(st, symbols); err != nil {
				return nil, lineError(lineno, text, err)
			}
		case ".org":
			if len(st.args) != 1 {
				return nil, lineError(lineno, text, ErrOperandsInvalid)
			}
			addr, err := asm.value(st.args[0], symbols)
			if err != nil {
				return nil, lineError(lineno, text, err)
			}
			if addr < pc {
				return nil, lineError(lineno, text, fmt.Errorf("%w: %#x < %#x", ErrOrgBackwards, addr, pc))
			}
			st.size = addr - pc
		case ".byte":
			st.size = len(st.args)
		case ".word":
			st.size = 2 * len(st.args)
		default:
			st.size = 2
		}
		pc += st.size
		if pc > memoryEnd {
			return nil, lineError(lineno, text, ErrOverflow)
		}
		stmts = append(stmts, st)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Pass two: encode with every symbol known.
	prog := &Program{
		Origin: Origin,
		Bytes:  make([]byte, 0, pc-Origin),
		Labels: labels,
	}
	for _, st := range stmts {
		out, err := asm.emit(st, symbols)
		if err != nil {
			return nil, lineError(st.lineNo, st.text, err)
		}
		if len(out) > 0 {
			prog.Lines = append(prog.Lines, Line{LineNo: st.lineNo, Addr: uint16(st.addr), Bytes: out, Text: strings.TrimSpace(st.text)})
		}
		prog.Bytes = append(prog.Bytes, out...)
	}

	return prog, nil
}

func lineError(lineno int, text string, err error) error {
	return &ErrLine{LineNo: lineno, Line: strings.TrimSpace(text), Err: err}
}

// equate handles .equ NAME value. The value may only use symbols defined above it.
func (asm *Assembler) equate(st *statement, symbols map[string]int) error {
	if len(st.args) != 1 {
		return ErrEquateSyntax
	}
	name, rest := cutField(st.args[0])
	name = strings.TrimSuffix(name, ",")
	if !isIdent(name) || rest == "" {
		return ErrEquateSyntax
	}
	if reserved(name) {
		return fmt.Errorf("%w: %q", ErrLabelInvalid, name)
	}
	if _, ok := symbols[name]; ok {
		if _, sys := sysEquate[name]; !sys {
			return ErrEquateDuplicate
		}
	}
	value, err := asm.value(rest, symbols)
	if err != nil {
		return err
	}
	symbols[name] = value
	return nil
}

// emit produces the bytes for one statement.
func (asm *Assembler) emit(st *statement, symbols map[string]int) ([]byte, error) {
	switch st.op {
	case "", ".equ":
		return nil, nil
	case ".org":
		return make([]byte, st.size), nil
	case ".byte":
		out := make([]byte, 0, len(st.args))
		for _, arg := range st.args {
			v, err := asm.ranged(arg, symbols, 0xFF)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(v))
		}
		return out, nil
	case ".word":
		out := make([]byte, 0, 2*len(st.args))
		for _, arg := range st.args {
			v, err := asm.ranged(arg, symbols, 0xFFFF)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(v>>8), byte(v))
		}
		return out, nil
	}

	w, err := asm.encode(st.op, st.args, symbols)
	if err != nil {
		return nil, err
	}
	return []byte{byte(w >> 8), byte(w)}, nil
}

// ranged evaluates tok and checks it lies in [0, limit].
func (asm *Assembler) ranged(tok string, symbols map[string]int, limit int) (int, error) {
	v, err := asm.value(tok, symbols)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > limit {
		return 0, fmt.Errorf("%w: %s = %d, limit %d", ErrRange, tok, v, limit)
	}
	return v, nil
}

// value evaluates a numeric operand.
func (asm *Assembler) value(tok string, symbols map[string]int) (int, error) {
	tok = strings.TrimSpace(tok)
	switch {
	case tok == "":
		return 0, ErrParseNumber(tok)
	case strings.HasPrefix(tok, "$(") && strings.HasSuffix(tok, ")"):
		return asm.parenEval(tok[2:len(tok)-1], symbols)
	case tok[0] == '$':
		return parseInt(tok, tok[1:], 16)
	case len(tok) == 3 && tok[0] == '\'' && tok[2] == '\'':
		return int(tok[1]), nil
	case strings.HasPrefix(tok, "0x"), strings.HasPrefix(tok, "0X"):
		return parseInt(tok, tok[2:], 16)
	case strings.HasPrefix(tok, "0b"), strings.HasPrefix(tok, "0B"):
		return parseInt(tok, tok[2:], 2)
	case tok[0] >= '0' && tok[0] <= '9':
		return parseInt(tok, tok, 10)
	case isIdent(tok):
		v, ok := symbols[tok]
		if !ok {
			return 0, ErrLabelMissing(tok)
		}
		return v, nil
	}
	return 0, ErrParseNumber(tok)
}

func parseInt(tok, digits string, base int) (int, error) {
	v, err := strconv.ParseInt(strings.ReplaceAll(digits, "_", ""), base, 32)
	if err != nil {
		return 0, ErrParseNumber(tok)
	}
	return int(v), nil
}

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string, symbols map[string]int) (int, error) {
	thread := &starlark.Thread{Name: "asm"}
	opts := &syntax.FileOptions{}
	pred := make(starlark.StringDict, len(symbols))
	for name, value := range symbols {
		pred[name] = starlark.MakeInt(value)
	}
	dict, err := starlark.ExecFileOptions(opts, thread, "expr", "rc = "+expr+"\n", pred)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrParseExpression(expr), err)
	}
	rc, ok := dict["rc"].(starlark.Int)
	if !ok {
		return 0, ErrParseExpression(expr)
	}
	v, ok := rc.Int64()
	if !ok {
		return 0, ErrParseExpression(expr)
	}
	return int(v), nil
}

// parseStatement splits a source line into labels, operation and operands.
func parseStatement(text string) (*statement, error) {
	st := &statement{text: text}
	code := strings.TrimSpace(stripComment(text))

	for code != "" {
		tok, rest := cutField(code)
		if !strings.HasSuffix(tok, ":") {
			break
		}
		label := strings.TrimSuffix(tok, ":")
		if !isIdent(label) || reserved(label) {
			return nil, fmt.Errorf("%w: %q", ErrLabelInvalid, label)
		}
		st.labels = append(st.labels, label)
		code = rest
	}
	if code == "" {
		return st, nil
	}

	op, rest := cutField(code)
	if strings.HasPrefix(op, ".") {
		st.op = strings.ToLower(op)
	} else {
		st.op = strings.ToUpper(op)
	}

	if st.op == ".equ" {
		if rest != "" {
			st.args = []string{rest}
		}
		return st, nil
	}

	args, err := splitOperands(rest)
	if err != nil {
		return nil, err
	}
	st.args = args
	return st, nil
}

// stripComment removes a trailing ; comment, ignoring ; inside quotes.
func stripComment(text string) string {
	quoted := false
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\'':
			quoted = !quoted
		case ';':
			if !quoted {
				return text[:i]
			}
		}
	}
	return text
}

// splitOperands splits on commas outside quotes and parentheses.
func splitOperands(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []string
	depth, quoted, start := 0, false, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\'':
			quoted = !quoted
		case quoted:
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced ')'", ErrSyntax)
			}
		case c == ',' && depth == 0:
			out = append(out, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if depth != 0 || quoted {
		return nil, fmt.Errorf("%w: unterminated operand", ErrSyntax)
	}
	out = append(out, strings.TrimSpace(s[start:]))
	for _, arg := range out {
		if arg == "" {
			return nil, fmt.Errorf("%w: empty operand", ErrSyntax)
		}
	}
	return out, nil
}

func cutField(s string) (field, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// reserved reports names that operands would read as a register or keyword.
func reserved(name string) bool {
	return operandKind(name) != kindValue
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
