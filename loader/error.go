package loader

import "fmt"

// LoadLibError reports a failure to open a shared library.
type LoadLibError struct {
	Path   string
	Reason string
}

func (e *LoadLibError) Error() string {
	return fmt.Sprintf("loader: load %q: %s", e.Path, e.Reason)
}

// GetSymbolError reports a failure to resolve a named symbol in an
// otherwise successfully loaded library.
type GetSymbolError struct {
	Path   string
	Symbol string
	Reason string
}

func (e *GetSymbolError) Error() string {
	return fmt.Sprintf("loader: %q: symbol %q: %s", e.Path, e.Symbol, e.Reason)
}
