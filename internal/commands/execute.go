package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add   func(AddArgs) (Result, error)
	Done  func(DoneArgs) (Result, error)
	Edit  func(EditArgs) (Result, error)
	Rm    func(RmArgs) (Result, error)
	Clear func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "edit handler not configured"}
		}
		return handlers.Edit(*cmd.Edit)
	case TypeRm:
		if handlers.Rm == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "rm handler not configured"}
		}
		return handlers.Rm(*cmd.Rm)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "clear handler not configured"}
		}
		return handlers.Clear()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
