package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":     "0",
	"STACK_BASE": fmt.Sprintf("0x%04x", StackBase),
}

// Assembler is a single pass macro assembler for the documented 6502
// instruction set.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Origin  uint16   // Load origin; set with .org before any code.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of jump labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word. '$' and '%' prefix
// hexadecimal and binary literals; everything else is up to strconv.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(word)
		return
	}

	num := word
	base := 0
	switch word[0] {
	case '$':
		num = word[1:]
		base = 16
	case '%':
		num = word[1:]
		base = 2
	}

	v64, parseErr := strconv.ParseInt(num, base, 32)
	if parseErr != nil || v64 > 0xffff || v64 < -0x8000 {
		err = ErrParseNumber(word)
		return
	}

	value = uint16(v64)

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value16, valueErr := asm.valueOf(str)
		if valueErr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if len(words) > 0 && words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		if len(word) == 0 {
			continue
		}

		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			macroLine := macro.LineNo + n

			// '@' labels are uniquified per invocation site.
			line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_", name, lineno))
			words, err = asm.parseLine(line, macroLine)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: macroLine, Err: err}
				err = &ErrSyntax{LineNo: macroLine, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, macroLine)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: macroLine, Err: err}
				err = &ErrSyntax{LineNo: macroLine, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentAddr gets the address of the next instruction to assemble.
func (asm *Assembler) currentAddr() int {
	if len(asm.Opcode) == 0 {
		return int(asm.Origin)
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return int(last.Addr) + last.Inst.Size()
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Origin = 0
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		all_words := strings.Split(line, " ")

		var words []string
		for _, single := range all_words {
			if len(single) > 0 {
				words = append(words, single)
			}
		}

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of jump and branch labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		target, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}

		switch op.Inst.Address.Mode {
		case ModeRelative:
			disp := target - (int(op.Addr) + op.Inst.Size())
			if disp < -128 || disp > 127 {
				err = ErrBranchRange
				return
			}
			op.Inst.Address.Operand = uint16(uint8(int8(disp)))
		default:
			op.Inst.Address.Operand = uint16(target)
		}
	}

	prog = &Program{
		Origin:  asm.Origin,
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// encodable reports whether a mnemonic/mode pairing has an opcode.
func encodable(mnemonic Mnemonic, mode Mode) bool {
	_, ok := encodeTable[opcodeEntry{mnemonic, mode}]
	return ok
}

// isBranch reports whether the mnemonic takes a relative displacement.
func (mn Mnemonic) isBranch() bool {
	return mn >= BCC && mn <= BVS
}

// hasIndexSuffix matches a ,X or ,Y indexing suffix, either case.
func hasIndexSuffix(word, suffix string) bool {
	return len(word) > len(suffix) && strings.EqualFold(word[len(word)-len(suffix):], suffix)
}

// parseIndirect parses the three parenthesized operand forms:
// (zp,X), (zp),Y, and (addr).
func (asm *Assembler) parseIndirect(word string) (address AddressingMode, err error) {
	var inner string

	switch {
	case hasIndexSuffix(word, "),Y"):
		address.Mode = ModeIndirectIndexed
		inner = word[1 : len(word)-3]
	case hasIndexSuffix(word, ",X)"):
		address.Mode = ModeIndexedIndirect
		inner = word[1 : len(word)-3]
	case strings.HasSuffix(word, ")"):
		address.Mode = ModeIndirect
		inner = word[1 : len(word)-1]
	default:
		err = ErrParseOperand(word)
		return
	}

	value, err := asm.valueOf(inner)
	if err != nil {
		return
	}
	if address.Mode != ModeIndirect && value > 0xff {
		err = ErrOperandRange
		return
	}

	address.Operand = value

	return
}

// parseIndexed parses a ,X or ,Y operand, choosing the zero-page form when
// the base fits in one byte and the mnemonic encodes it.
func (asm *Assembler) parseIndexed(mnemonic Mnemonic, base string, zpMode, absMode Mode) (address AddressingMode, err error) {
	value, err := asm.valueOf(base)
	if err != nil {
		return
	}

	if value <= 0xff && encodable(mnemonic, zpMode) {
		address = AddressingMode{Mode: zpMode, Operand: value}
	} else {
		address = AddressingMode{Mode: absMode, Operand: value}
	}

	return
}

// parseOperand parses a single operand word into an addressing mode, or a
// label reference to be linked after the scan.
func (asm *Assembler) parseOperand(mnemonic Mnemonic, word string) (address AddressingMode, label string, err error) {
	switch {
	case len(word) == 0:
		// Bare shifts operate on the accumulator.
		address.Mode = ModeImplied
		if encodable(mnemonic, ModeAccumulator) {
			address.Mode = ModeAccumulator
		}
	case strings.EqualFold(word, "A"):
		address.Mode = ModeAccumulator
	case word[0] == '#':
		var value uint16
		value, err = asm.valueOf(word[1:])
		if err != nil {
			return
		}
		if value > 0xff {
			err = ErrOperandRange
			return
		}
		address = AddressingMode{Mode: ModeImmediate, Operand: value}
	case word[0] == '(':
		address, err = asm.parseIndirect(word)
	case hasIndexSuffix(word, ",X"):
		address, err = asm.parseIndexed(mnemonic, word[:len(word)-2], ModeZeroPageX, ModeAbsoluteX)
	case hasIndexSuffix(word, ",Y"):
		address, err = asm.parseIndexed(mnemonic, word[:len(word)-2], ModeZeroPageY, ModeAbsoluteY)
	case mnemonic.isBranch():
		address.Mode = ModeRelative
		value, valueErr := asm.valueOf(word)
		if valueErr != nil {
			// Label target, linked after the scan.
			label = word
			return
		}
		if value > 0xff {
			err = ErrBranchRange
			return
		}
		address.Operand = value
	default:
		value, valueErr := asm.valueOf(word)
		if valueErr != nil {
			// Label target; labels are always 16-bit addresses.
			address.Mode = ModeAbsolute
			label = word
			return
		}
		if value <= 0xff && encodable(mnemonic, ModeZeroPage) {
			address = AddressingMode{Mode: ModeZeroPage, Operand: value}
		} else {
			address = AddressingMode{Mode: ModeAbsolute, Operand: value}
		}
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	// .org ADDR
	if words[0] == ".org" {
		if len(words) != 2 {
			return ErrOrgSyntax
		}
		if len(asm.Opcode) != 0 {
			return ErrOrgTooLate
		}
		asm.Origin, err = asm.valueOf(words[1])
		return
	}

	mnemonic, ok := mnemonicMap[strings.ToUpper(words[0])]
	if !ok {
		return ErrMnemonicInvalid(words[0])
	}

	if len(words) > 2 {
		return ErrOperandExtra
	}

	var operand string
	if len(words) == 2 {
		operand = words[1]
	}

	address, label, err := asm.parseOperand(mnemonic, operand)
	if err != nil {
		return
	}

	inst := Instruction{Mnemonic: mnemonic, Address: address}
	if !encodable(mnemonic, address.Mode) {
		return ErrEncode(inst)
	}

	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo:    lineno,
		Addr:      uint16(asm.currentAddr()),
		Words:     initial_words,
		Inst:      inst,
		LinkLabel: label,
	})

	return
}
