package log

import (
	"hash/fnv"

	"github.com/mgutz/ansi"
)

var (
	DefaultColorScheme = ColorScheme{
		StderrLevelStyle: "red",
		StdoutLevelStyle: "white",
		ErrorLevelStyle:  "red",
		WarnLevelStyle:   "yellow",
		InfoLevelStyle:   "green",
		DebugLevelStyle:  "blue+h",
		TraceLevelStyle:  "white",
		TimestampStyle:   "black+h",
	}

	// prefixStyles are rotated between projects so that interleaved output stays readable.
	prefixStyles = []ColorStyle{"cyan", "magenta", "blue", "green+h", "yellow+h", "cyan+h", "magenta+h"}
)

const (
	None ColorStyleName = iota
	StderrLevelStyle
	StdoutLevelStyle
	ErrorLevelStyle
	WarnLevelStyle
	InfoLevelStyle
	DebugLevelStyle
	TraceLevelStyle
	TimestampStyle
)

type ColorStyleName byte

type ColorFunc func(string) string

type ColorStyle string

func (style ColorStyle) ColorFunc() ColorFunc {
	return ansi.ColorFunc(string(style))
}

type ColorScheme map[ColorStyleName]ColorStyle

func (scheme ColorScheme) Compile() CompiledColorScheme {
	compiled := make(CompiledColorScheme, len(scheme))

	for name, style := range scheme {
		compiled[name] = style.ColorFunc()
	}

	return compiled
}

type CompiledColorScheme map[ColorStyleName]ColorFunc

func (scheme CompiledColorScheme) LevelColorFunc(level Level) ColorFunc {
	switch level {
	case StdoutLevel:
		return scheme.ColorFunc(StdoutLevelStyle)
	case StderrLevel:
		return scheme.ColorFunc(StderrLevelStyle)
	case ErrorLevel:
		return scheme.ColorFunc(ErrorLevelStyle)
	case WarnLevel:
		return scheme.ColorFunc(WarnLevelStyle)
	case InfoLevel:
		return scheme.ColorFunc(InfoLevelStyle)
	case DebugLevel:
		return scheme.ColorFunc(DebugLevelStyle)
	case TraceLevel:
		return scheme.ColorFunc(TraceLevelStyle)
	default:
		return scheme.ColorFunc(None)
	}
}

func (scheme CompiledColorScheme) ColorFunc(name ColorStyleName) ColorFunc {
	if colorFunc, ok := scheme[name]; ok {
		return colorFunc
	}

	return func(s string) string { return s }
}

// PrefixColorFunc returns a stable color for the given prefix.
func PrefixColorFunc(prefix string) ColorFunc {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(prefix))

	return prefixStyles[hash.Sum32()%uint32(len(prefixStyles))].ColorFunc()
}
