package teatest

import tea "github.com/charmbracelet/bubbletea"

func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyEsc})
}

func (d *Driver) PressShiftRight() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyShiftRight})
}

func (d *Driver) PressShiftLeft() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyShiftLeft})
}

func (d *Driver) MouseDown(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// MouseMove reports motion with the left button held.
func (d *Driver) MouseMove(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
}

func (d *Driver) MouseUp(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
}

// Drag presses at (x0, y0), moves one column at a time along y0 to x1,
// hops to y1 and releases there.
func (d *Driver) Drag(x0, y0, x1, y1 int) {
	d.T.Helper()
	d.drag(tea.MouseMsg{X: x0, Y: y0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, x1, y1)
}

// AltDrag is Drag with Alt held on the press.
func (d *Driver) AltDrag(x0, y0, x1, y1 int) {
	d.T.Helper()
	d.drag(tea.MouseMsg{X: x0, Y: y0, Alt: true, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, x1, y1)
}

func (d *Driver) drag(press tea.MouseMsg, x1, y1 int) {
	d.T.Helper()
	d.Send(press)
	x0, y0 := press.X, press.Y
	step := 1
	if x1 < x0 {
		step = -1
	}
	for x := x0; x != x1; x += step {
		d.MouseMove(x+step, y0)
	}
	if y1 != y0 {
		d.MouseMove(x1, y1)
	}
	d.MouseUp(x1, y1)
}
