package lineedit

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestInsert(t *testing.T) {
	e := New()
	e.Insert('h')
	e.Insert('é')
	if e.Text() != "hé" {
		t.Errorf("expected 'hé', got %q", e.Text())
	}
	if e.Cursor() != 2 {
		t.Errorf("expected cursor at 2, got %d", e.Cursor())
	}
}

func TestInsertMiddle(t *testing.T) {
	e := New()
	e.Set("hllo")
	e.SetCursor(1)
	e.Insert('e')
	if e.Text() != "hello" {
		t.Errorf("expected 'hello', got %q", e.Text())
	}
}

func TestDelete(t *testing.T) {
	e := New()
	e.Set("hello")
	e.DeleteBackward()
	if e.Text() != "hell" {
		t.Errorf("expected 'hell', got %q", e.Text())
	}
	e.Home()
	if e.DeleteBackward() {
		t.Error("DeleteBackward at start should return false")
	}
	e.DeleteForward()
	if e.Text() != "ell" {
		t.Errorf("expected 'ell', got %q", e.Text())
	}
	e.End()
	if e.DeleteForward() {
		t.Error("DeleteForward at end should return false")
	}
}

func TestDeleteWordBackward(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"example.com/docs", "example.com/"},
		{"example.com/", "example.com"},
		{"example.com", "example."},
		{"one two  ", "one "},
		{"", ""},
	}
	for _, tt := range tests {
		e := New()
		e.Set(tt.in)
		e.DeleteWordBackward()
		if e.Text() != tt.want {
			t.Errorf("DeleteWordBackward(%q) = %q, expected %q", tt.in, e.Text(), tt.want)
		}
	}
}

func TestKill(t *testing.T) {
	e := New()
	e.Set("https://example.com")
	e.SetCursor(8)
	e.KillToStart()
	if e.Text() != "example.com" || e.Cursor() != 0 {
		t.Errorf("KillToStart: %q cursor %d", e.Text(), e.Cursor())
	}
	e.SetCursor(7)
	e.KillToEnd()
	if e.Text() != "example" {
		t.Errorf("KillToEnd: %q", e.Text())
	}
}

func TestHandleKey(t *testing.T) {
	e := New()
	for _, r := range "exmple" {
		e.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	e.HandleKey(tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl))
	e.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	e.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	e.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	if e.Text() != "example" {
		t.Errorf("got %q, expected %q", e.Text(), "example")
	}

	if ev := e.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); !ev.Submit {
		t.Error("Enter should submit")
	}
	if ev := e.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); !ev.Cancel {
		t.Error("Escape should cancel")
	}
	if ev := e.HandleKey(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone)); ev.Consumed {
		t.Error("F1 should not be consumed")
	}

	e.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	ev := e.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if !ev.TextChanged || e.Text() != "exampl" {
		t.Errorf("backspace: %+v, %q", ev, e.Text())
	}
}
