package log

import (
	"regexp"
	"strings"
)

const (
	// startANSISeq is the ANSI start escape sequence
	startANSISeq = "\033["

	ansiSeq = "[\u001B\u009B][[\\]()#;?]*(?:(?:(?:[a-zA-Z\\d]*(?:;[a-zA-Z\\d]*)*)?\u0007)|(?:(?:\\d{1,4}(?:;\\d{0,4})*)?[\\dA-PRZcf-ntqry=><~]))"
)

// ansiReg matches ANSI sequences found in shell output, used for colors etc.
var ansiReg = regexp.MustCompile(ansiSeq)

// RemoveAllANSISeq returns a string with all ANSI color sequences removed.
func RemoveAllANSISeq(str string) string {
	if strings.Contains(str, startANSISeq) {
		str = ansiReg.ReplaceAllString(str, "")
	}

	return str
}
