package lineedit

import "github.com/gdamore/tcell/v2"

// Event represents the result of handling a key press.
type Event struct {
	Consumed    bool // true if the editor handled the key
	TextChanged bool // true if editor content was modified
	Submit      bool // true if user wants to submit (Enter)
	Cancel      bool // true if user wants to cancel/exit
}

// HandleKey applies a tcell key event using emacs keybindings.
func (e *Editor) HandleKey(ev *tcell.EventKey) Event {
	if ev.Modifiers()&tcell.ModAlt != 0 && ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case 'b', 'B':
			e.WordLeft()
			return Event{Consumed: true}
		case 'f', 'F':
			e.WordRight()
			return Event{Consumed: true}
		}
		return Event{}
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Event{Consumed: true, Cancel: true}
	case tcell.KeyEnter:
		return Event{Consumed: true, Submit: true}
	case tcell.KeyCtrlA, tcell.KeyHome:
		e.Home()
	case tcell.KeyCtrlE, tcell.KeyEnd:
		e.End()
	case tcell.KeyCtrlF, tcell.KeyRight:
		e.Right()
	case tcell.KeyCtrlB, tcell.KeyLeft:
		e.Left()
	case tcell.KeyCtrlD, tcell.KeyDelete:
		return Event{Consumed: true, TextChanged: e.DeleteForward()}
	case tcell.KeyCtrlK:
		e.KillToEnd()
		return Event{Consumed: true, TextChanged: true}
	case tcell.KeyCtrlU:
		e.KillToStart()
		return Event{Consumed: true, TextChanged: true}
	case tcell.KeyCtrlW:
		e.DeleteWordBackward()
		return Event{Consumed: true, TextChanged: true}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Consumed: true, TextChanged: e.DeleteBackward()}
	case tcell.KeyRune:
		e.Insert(ev.Rune())
		return Event{Consumed: true, TextChanged: true}
	default:
		return Event{}
	}
	return Event{Consumed: true}
}
