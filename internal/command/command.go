// Package command parses the line-oriented control protocol read from stdin.
//
// Matching is by case-sensitive prefix on each line:
//
//	OFF  STOP  START  SCALE=F  SCALE=C  PERIOD=<seconds>
//
// Anything after a recognised keyword is ignored ("STOPPED" is STOP).
package command

import (
	"bytes"
	"strconv"
	"strings"

	"codeberg.org/mutker/tempmon/internal/control"
)

// Kind identifies a parsed command.
type Kind int

const (
	Unrecognized Kind = iota
	Off
	Stop
	Start
	SetScale
	SetPeriod
)

func (k Kind) String() string {
	switch k {
	case Off:
		return "OFF"
	case Stop:
		return "STOP"
	case Start:
		return "START"
	case SetScale:
		return "SCALE"
	case SetPeriod:
		return "PERIOD"
	default:
		return "UNRECOGNIZED"
	}
}

// Command is one parsed line. Scale is set for SetScale and Period for
// SetPeriod; Raw always holds the line without its terminator.
type Command struct {
	Kind   Kind
	Scale  control.Scale
	Period int64
	Raw    string
}

const periodPrefix = "PERIOD="

// Parse interprets a single line. A PERIOD value outside
// [1, control.MaxPeriod] yields Unrecognized.
func Parse(line string) Command {
	line = strings.TrimRight(line, "\r\n")
	cmd := Command{Raw: line}

	switch {
	case strings.HasPrefix(line, "OFF"):
		cmd.Kind = Off
	case strings.HasPrefix(line, "STOP"):
		cmd.Kind = Stop
	case strings.HasPrefix(line, "START"):
		cmd.Kind = Start
	case strings.HasPrefix(line, "SCALE=F"):
		cmd.Kind, cmd.Scale = SetScale, control.Fahrenheit
	case strings.HasPrefix(line, "SCALE=C"):
		cmd.Kind, cmd.Scale = SetScale, control.Celsius
	case strings.HasPrefix(line, periodPrefix):
		n, err := strconv.ParseInt(strings.TrimSpace(line[len(periodPrefix):]), 10, 64)
		if err == nil && control.ValidPeriod(n) {
			cmd.Kind, cmd.Period = SetPeriod, n
		}
	}

	return cmd
}

// Split breaks a chunk of input into lines. Empty lines are kept so they
// are reported like any other unrecognised command. A chunk without a
// trailing newline yields its content as the last line.
func Split(chunk []byte) []string {
	if len(chunk) == 0 {
		return nil
	}

	parts := bytes.Split(bytes.TrimSuffix(chunk, []byte{'\n'}), []byte{'\n'})
	lines := make([]string, 0, len(parts))
	for _, line := range parts {
		lines = append(lines, string(bytes.TrimRight(line, "\r")))
	}

	return lines
}
