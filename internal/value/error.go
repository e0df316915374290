package value

// Error is the reconstructed form of any error that went through the codec.
// Cause may hold any catalogue value, mirroring error causes that are not
// themselves errors.
type Error struct {
	Name    string
	Message string
	Cause   any
}

func (e *Error) Error() string {
	if e.Name == "" || e.Name == DefaultErrorName {
		return e.Message
	}
	return e.Name + ": " + e.Message
}

// Unwrap exposes Cause to errors.Is and errors.As when it is an error.
func (e *Error) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// DefaultErrorName is the name recorded for errors that do not carry one.
const DefaultErrorName = "Error"
