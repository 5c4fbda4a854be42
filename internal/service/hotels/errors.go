package hotels

import "errors"

var (
	ErrHotelNotFound = errors.New("hotel not found")
	// ErrNotOwner is returned when the caller is not signed in as a hotel owner.
	ErrNotOwner = errors.New("hotel owner account required")
)

// StoreError wraps a failed catalogue read or write.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
