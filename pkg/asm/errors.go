package asm

import "errors"

// Sentinel errors returned by the lexer, parser, and encoder. Wrap these
// with fmt.Errorf("%w: ...") so callers can still errors.Is against them.
var (
	ErrCannotEncode        = errors.New("asm: cannot encode instruction")
	ErrOutOfRange          = errors.New("asm: immediate out of range")
	ErrTooManyInstructions = errors.New("asm: too many instructions")
	ErrUnknownMnemonic     = errors.New("asm: unknown mnemonic")
	ErrUnknownRegister     = errors.New("asm: unknown register")
	ErrSyntax              = errors.New("asm: syntax error")
	ErrUnknownLabel        = errors.New("asm: undefined label")
)
