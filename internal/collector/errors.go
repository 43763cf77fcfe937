package collector

import "fmt"

// NoDataError means the provider has no data at all for a symbol, as opposed
// to a transient fetch fault. Callers turn it into a user-facing "not found"
// message.
type NoDataError struct {
	Symbol string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data for symbol %s", e.Symbol)
}
