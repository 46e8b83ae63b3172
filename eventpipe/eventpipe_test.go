package eventpipe

import "testing"

func TestParseLine(t *testing.T) {
	cases := []struct {
		line string
		want Command
		ok   bool
	}{
		{"spin 2", Command{Op: OpSpin, Prize: 2}, true},
		{"SPIN 0", Command{Op: OpSpin, Prize: 0}, true},
		{"  spin   7  ", Command{Op: OpSpin, Prize: 7}, true},
		{"show", Command{Op: OpShow}, true},
		{"spin", Command{}, false},
		{"spin x", Command{}, false},
		{"open sesame", Command{}, false},
		{"", Command{}, false},
	}
	for _, c := range cases {
		got, err := parseLine(c.line)
		if c.ok && err != nil {
			t.Errorf("parseLine(%q): %v", c.line, err)
			continue
		}
		if !c.ok {
			if err == nil {
				t.Errorf("parseLine(%q) accepted", c.line)
			}
			continue
		}
		if got != c.want {
			t.Errorf("parseLine(%q) = %+v, want %+v", c.line, got, c.want)
		}
	}
}
