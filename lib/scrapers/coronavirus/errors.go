package coronavirus

import (
	"errors"
	"fmt"
)

// every error in this package is fatal for the scrape run: the page
// layout contract is fixed and versioned, so a mismatch means the
// upstream page drifted and a corrupt record must not be produced.

var ErrZeroDenominator = errors.New("ratio denominator is zero")

// FetchError wraps a network or document-load failure.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// LayoutError reports an expected page element that matched nothing.
type LayoutError struct {
	Page     string
	Selector string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("page layout changed: %q matched no elements on %s page", e.Selector, e.Page)
}

// FormatError reports a cell that should have held a counter but
// could not be parsed as one.
type FormatError struct {
	Token string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cell %q is not a counter value", e.Token)
}

// DateFormatError reports a publication header whose token layout
// no longer matches the expected shape.
type DateFormatError struct {
	Header string
	Reason string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("cannot resolve publication date from header %q: %s", e.Header, e.Reason)
}

// DecodeError reports a table whose cell sequence does not fit the
// positional schema.
type DecodeError struct {
	Table  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode table %s: %s", e.Table, e.Reason)
}
