package control

import "fmt"

// Scale is the temperature unit used for reports.
type Scale int32

const (
	Fahrenheit Scale = iota
	Celsius
)

// ParseScale accepts "C" or "F" in either case.
func ParseScale(s string) (Scale, error) {
	switch s {
	case "F", "f":
		return Fahrenheit, nil
	case "C", "c":
		return Celsius, nil
	default:
		return Fahrenheit, fmt.Errorf("unknown scale %q", s)
	}
}

func (s Scale) String() string {
	if s == Celsius {
		return "C"
	}
	return "F"
}
