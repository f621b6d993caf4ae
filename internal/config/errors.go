package config

import "fmt"

// NotFoundError is returned when the configuration file does not exist.
type NotFoundError struct {
	Path string
}

func (err NotFoundError) Error() string {
	return "configuration file not found: " + err.Path
}

// ParseError is returned when the configuration file cannot be read or parsed.
type ParseError struct {
	Err     error
	Path    string
	Message string
}

func (err ParseError) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("%s: %s", err.Path, err.Message)
	}

	return fmt.Sprintf("%s: %s: %v", err.Path, err.Message, err.Err)
}

func (err ParseError) Unwrap() error {
	return err.Err
}

// VersionMismatchError is returned when a configuration requires a newer treehook.
type VersionMismatchError struct {
	Path     string
	Required string
	Current  string
}

func (err VersionMismatchError) Error() string {
	return fmt.Sprintf("%s requires version %s or later, current version is %s", err.Path, err.Required, err.Current)
}
