package kernel

// Error describes a kernel error. Kernel errors are declared as package-level
// pointers to Error so that handlers can compare them by identity, both when
// they are returned and when they are raised through panic.
type Error struct {
	// The module where the error occurred.
	Module string

	// The error message
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// String returns the error formatted as "[module] message".
func (e *Error) String() string {
	return "[" + e.Module + "] " + e.Message
}
