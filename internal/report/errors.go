package report

import "fmt"

// UnsupportedFormatError is returned for a report format other than csv or json.
type UnsupportedFormatError struct {
	Format string
}

func (err UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported report format %q", err.Format)
}
