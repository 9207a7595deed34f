package catalog

import "fmt"

// FetchError reports that the metadata table could not be loaded: the remote
// resource was unreachable or its content did not parse into track records.
type FetchError struct {
	Op  string // "fetch" or "parse"
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func fetchErr(err error) error {
	return &FetchError{Op: "fetch", Err: err}
}

func parseErr(format string, args ...any) error {
	return &FetchError{Op: "parse", Err: fmt.Errorf(format, args...)}
}
