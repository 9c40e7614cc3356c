package fetch

import "fmt"

// NotFoundError is returned when the rules document does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("The <code>%s</code> file was not found. It may not have been generated yet.", e.Name)
}

// FetchError is returned for any other unsuccessful HTTP status.
type FetchError struct {
	Status     int
	StatusText string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Error fetching rules: %d %s", e.Status, e.StatusText)
}

// FormatError is returned when the document decodes to something other than
// a JSON array.
type FormatError struct {
	Name string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("The <code>%s</code> file is not in the correct format (expected an array).", e.Name)
}
