package boundary

import "fmt"

// StartDirNotFoundError is returned when the directory the search starts from does not exist.
type StartDirNotFoundError struct {
	Dir string
}

func (err StartDirNotFoundError) Error() string {
	return fmt.Sprintf("directory %s does not exist", err.Dir)
}
