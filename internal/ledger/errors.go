package ledger

// Code classifies a rejected ledger operation.
type Code string

const (
	CodeInvalidInitialState Code = "InvalidInitialState"
	CodeInvalidAmount       Code = "InvalidAmount"
	CodeInvalidWager        Code = "InvalidWager"
	CodeInvalidPayout       Code = "InvalidPayout"
	CodeInsufficientFunds   Code = "InsufficientFunds"
)

// Error is a domain rejection. Message is safe to show to API callers as is.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrInvalidInitialState = &Error{Code: CodeInvalidInitialState, Message: "Initial balance must be a non-negative number."}
	ErrInvalidAmount       = &Error{Code: CodeInvalidAmount, Message: "Invalid amount."}
	ErrInvalidWager        = &Error{Code: CodeInvalidWager, Message: "Invalid bet amount."}
	ErrInvalidPayout       = &Error{Code: CodeInvalidPayout, Message: "Invalid winnings amount."}
	ErrInsufficientFunds   = &Error{Code: CodeInsufficientFunds, Message: "Insufficient funds."}
)
