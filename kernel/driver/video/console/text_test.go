package console

import (
	"strings"
	"testing"
)

func TestTextSetCharacter(t *testing.T) {
	cons := NewText(80, 25)

	if w, h := cons.Dimensions(); w != 80 || h != 25 {
		t.Fatalf("expected console dimensions to be 80x25; got %dx%d", w, h)
	}

	cons.SetCharacter(0, 0, '/', Green)
	cons.SetCharacter(79, 24, 'x', LightRed)

	if ch, attr := cons.Character(0, 0); ch != '/' || attr != Green {
		t.Errorf("expected cell (0,0) to contain '/' in Green; got %q in %d", ch, attr)
	}

	if ch, attr := cons.Character(79, 24); ch != 'x' || attr != LightRed {
		t.Errorf("expected cell (79,24) to contain 'x' in LightRed; got %q in %d", ch, attr)
	}

	// Out of bounds writes and reads are ignored.
	cons.SetCharacter(80, 0, '!', White)
	cons.SetCharacter(0, 25, '!', White)
	if ch, _ := cons.Character(80, 0); ch != 0 {
		t.Errorf("expected out of bounds read to return 0; got %q", ch)
	}

	if exp, got := "/"+strings.Repeat(" ", 79), cons.Row(0); got != exp {
		t.Errorf("expected row 0 to be %q; got %q", exp, got)
	}

	if got := cons.Row(25); got != "" {
		t.Errorf("expected out of bounds row to be empty; got %q", got)
	}

	cons.Clear()
	if ch, attr := cons.Character(0, 0); ch != ' ' || attr != Black {
		t.Errorf("expected cleared cell; got %q in %d", ch, attr)
	}
}
