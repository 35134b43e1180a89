package trip

import "errors"

// Sentinel errors returned by [Holder] methods. Callers should match them with
// [errors.Is]; illegal transitions are wrapped with the event and source phase.
var (
	// ErrIllegalTransition is returned when an operation is not allowed from
	// the current phase. The holder state is left untouched.
	ErrIllegalTransition = errors.New("illegal trip transition")

	// ErrEmptyLocation is returned by StartSearch when origin or destination
	// carries neither coordinates nor an address.
	ErrEmptyLocation = errors.New("origin and destination must not be empty")

	// ErrEmptyDriver is returned by AssignDriver when the driver has neither
	// an ID nor a name.
	ErrEmptyDriver = errors.New("driver must not be empty")

	// ErrInvalidFare is returned for negative fare amounts.
	ErrInvalidFare = errors.New("fare must not be negative")
)
