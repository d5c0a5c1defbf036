package command_test

import (
	"testing"

	"codeberg.org/mutker/tempmon/internal/command"
	"codeberg.org/mutker/tempmon/internal/control"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want command.Command
	}{
		{"OFF\n", command.Command{Kind: command.Off, Raw: "OFF"}},
		{"STOP", command.Command{Kind: command.Stop, Raw: "STOP"}},
		{"STOPPED\n", command.Command{Kind: command.Stop, Raw: "STOPPED"}},
		{"START\r\n", command.Command{Kind: command.Start, Raw: "START"}},
		{"SCALE=F\n", command.Command{Kind: command.SetScale, Scale: control.Fahrenheit, Raw: "SCALE=F"}},
		{"SCALE=C\n", command.Command{Kind: command.SetScale, Scale: control.Celsius, Raw: "SCALE=C"}},
		{"PERIOD=5\n", command.Command{Kind: command.SetPeriod, Period: 5, Raw: "PERIOD=5"}},
		{"PERIOD= 12 \n", command.Command{Kind: command.SetPeriod, Period: 12, Raw: "PERIOD= 12 "}},
		{"PERIOD=0\n", command.Command{Kind: command.Unrecognized, Raw: "PERIOD=0"}},
		{"PERIOD=-3\n", command.Command{Kind: command.Unrecognized, Raw: "PERIOD=-3"}},
		{"PERIOD=abc\n", command.Command{Kind: command.Unrecognized, Raw: "PERIOD=abc"}},
		{"PERIOD=9223372036\n", command.Command{Kind: command.SetPeriod, Period: control.MaxPeriod, Raw: "PERIOD=9223372036"}},
		{"PERIOD=9223372037\n", command.Command{Kind: command.Unrecognized, Raw: "PERIOD=9223372037"}},
		{"PERIOD=10000000000\n", command.Command{Kind: command.Unrecognized, Raw: "PERIOD=10000000000"}},
		{"PERIOD=99999999999999999999\n", command.Command{Kind: command.Unrecognized, Raw: "PERIOD=99999999999999999999"}},
		{"BOGUS\n", command.Command{Kind: command.Unrecognized, Raw: "BOGUS"}},
		{"off\n", command.Command{Kind: command.Unrecognized, Raw: "off"}},
		{"SCALE=K\n", command.Command{Kind: command.Unrecognized, Raw: "SCALE=K"}},
		{" OFF\n", command.Command{Kind: command.Unrecognized, Raw: " OFF"}},
		{"\n", command.Command{Kind: command.Unrecognized, Raw: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, command.Parse(tt.line))
		})
	}
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"STOP", "SCALE=C", "", "START"}, command.Split([]byte("STOP\nSCALE=C\r\n\nSTART")))
	assert.Equal(t, []string{"OFF"}, command.Split([]byte("OFF\n")))
	assert.Equal(t, []string{""}, command.Split([]byte("\n")))
	assert.Equal(t, []string{"", ""}, command.Split([]byte("\r\n\n")))
	assert.Nil(t, command.Split(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "OFF", command.Off.String())
	assert.Equal(t, "PERIOD", command.SetPeriod.String())
	assert.Equal(t, "UNRECOGNIZED", command.Unrecognized.String())
}
