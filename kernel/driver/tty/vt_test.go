package tty

import (
	"testing"

	"github.com/vedadux/sweb/kernel/driver/video/console"
)

func TestVtPosition(t *testing.T) {
	specs := []struct {
		inX, inY   uint32
		expX, expY uint32
	}{
		{20, 20, 20, 20},
		{100, 20, 79, 20},
		{10, 200, 10, 23},
		{100, 100, 79, 23},
	}

	vt := NewVt(console.NewText(80, 25), 1)

	w, h := vt.Dimensions()
	if w != 80 || h != 24 {
		t.Fatalf("Dimensions wrong: got %v x %v", w, h)
	}

	for specIndex, spec := range specs {
		vt.SetPosition(spec.inX, spec.inY)
		if x, y := vt.Position(); x != spec.expX || y != spec.expY {
			t.Errorf("[spec %d] expected setting position to (%d, %d) to update the position to (%d, %d); got (%d, %d)", specIndex, spec.inX, spec.inY, spec.expX, spec.expY, x, y)
		}
	}
}

func TestVtWrite(t *testing.T) {
	cons := console.NewText(80, 25)
	cons.SetCharacter(0, 0, '/', console.Green)

	vt := NewVt(cons, 1)
	vt.Write([]byte("12\n\t3\n4\r567\b8"))

	// Tab spanning rows
	vt.SetPosition(78, 4)
	vt.WriteByte('\t')
	vt.WriteByte('9')

	specs := []struct {
		x, y    uint32
		expChar byte
	}{
		{0, 1, '1'},
		{1, 1, '2'},
		{0, 2, ' '},
		{3, 2, ' '},
		{4, 2, '3'},
		{0, 3, '5'},
		{1, 3, '6'},
		{2, 3, '8'},
		{3, 3, ' '},
		{78, 5, ' '},
		{79, 5, ' '},
		{0, 6, ' '},
		{1, 6, ' '},
		{2, 6, '9'},
	}

	for specIndex, spec := range specs {
		if ch, _ := cons.Character(spec.x, spec.y); ch != spec.expChar {
			t.Errorf("[spec %d] expected char at (%d, %d) to be %c; got %c", specIndex, spec.x, spec.y, spec.expChar, ch)
		}
	}

	if ch, attr := cons.Character(0, 0); ch != '/' || attr != console.Green {
		t.Fatal("expected the row above the terminal to be left untouched")
	}
}

func TestVtScroll(t *testing.T) {
	cons := console.NewText(10, 4)
	vt := NewVt(cons, 1)

	vt.SetColor(console.Red)
	vt.Write([]byte("a\nb\nc\nd"))

	for y, exp := range []string{"", "b", "c", "d"} {
		if y == 0 {
			continue
		}
		if ch, _ := cons.Character(0, uint32(y)); ch != exp[0] {
			t.Errorf("expected row %d to start with %q; got %q", y, exp, ch)
		}
	}

	if _, attr := cons.Character(0, 3); attr != console.Red {
		t.Errorf("expected scrolled text to keep its color; got %d", attr)
	}
	if x, y := vt.Position(); x != 1 || y != 2 {
		t.Errorf("expected cursor at (1, 2); got (%d, %d)", x, y)
	}

	vt.Clear()
	if got := cons.Row(1); got != "          " {
		t.Errorf("expected cleared row; got %q", got)
	}
}
