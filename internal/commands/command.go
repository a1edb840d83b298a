package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd   Type = "add"
	TypeDone  Type = "done"
	TypeEdit  Type = "edit"
	TypeRm    Type = "rm"
	TypeClear Type = "clear"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

// Positions are 1-based rows as displayed.
type DoneArgs struct {
	Position int
}

type EditArgs struct {
	Position int
	Text     string
}

type RmArgs struct {
	Position int
}

type Command struct {
	Type  Type
	Raw   string
	Add   *AddArgs
	Done  *DoneArgs
	Edit  *EditArgs
	Rm    *RmArgs
	Clear bool
}

var aliases = map[string]Type{
	"new":    TypeAdd,
	"toggle": TypeDone,
	"x":      TypeDone,
	"del":    TypeRm,
	"delete": TypeRm,
	"remove": TypeRm,
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	kind := Type(head)
	if alias, ok := aliases[head]; ok {
		kind = alias
	}

	switch kind {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeEdit:
		return parseEdit(input, args)
	case TypeRm:
		return parseRm(input, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input, Clear: true}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task number"}
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Position: pos}}, nil
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires a task number and text"}
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Position: pos, Text: strings.Join(args[1:], " ")}}, nil
}

func parseRm(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rm requires a task number"}
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeRm, Raw: raw, Rm: &RmArgs{Position: pos}}, nil
}

func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task number: %s", s)}
	}
	return n, nil
}
