package cli

// MissingCommandError is returned when `exec` is given no command.
type MissingCommandError struct{}

func (err MissingCommandError) Error() string {
	return "no command given, pass it after `--` or with --" + CommandFlagName
}
