package sdlpad

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/dshills/joyride/internal/input/key"
)

// TriggerThreshold is the trigger travel above which a trigger button
// reports pressed.
const TriggerThreshold = 0.1

// control is one slot of the standard button layout: either a digital
// button or an analog trigger axis.
type control struct {
	button  sdl.GameControllerButton
	trigger sdl.GameControllerAxis
	analog  bool
}

var standardButtons = []control{
	{button: sdl.CONTROLLER_BUTTON_A},
	{button: sdl.CONTROLLER_BUTTON_B},
	{button: sdl.CONTROLLER_BUTTON_X},
	{button: sdl.CONTROLLER_BUTTON_Y},
	{button: sdl.CONTROLLER_BUTTON_LEFTSHOULDER},
	{button: sdl.CONTROLLER_BUTTON_RIGHTSHOULDER},
	{trigger: sdl.CONTROLLER_AXIS_TRIGGERLEFT, analog: true},
	{trigger: sdl.CONTROLLER_AXIS_TRIGGERRIGHT, analog: true},
	{button: sdl.CONTROLLER_BUTTON_BACK},
	{button: sdl.CONTROLLER_BUTTON_START},
	{button: sdl.CONTROLLER_BUTTON_LEFTSTICK},
	{button: sdl.CONTROLLER_BUTTON_RIGHTSTICK},
	{button: sdl.CONTROLLER_BUTTON_DPAD_UP},
	{button: sdl.CONTROLLER_BUTTON_DPAD_DOWN},
	{button: sdl.CONTROLLER_BUTTON_DPAD_LEFT},
	{button: sdl.CONTROLLER_BUTTON_DPAD_RIGHT},
	{button: sdl.CONTROLLER_BUTTON_GUIDE},
}

var standardAxes = []sdl.GameControllerAxis{
	sdl.CONTROLLER_AXIS_LEFTX,
	sdl.CONTROLLER_AXIS_LEFTY,
	sdl.CONTROLLER_AXIS_RIGHTX,
	sdl.CONTROLLER_AXIS_RIGHTY,
}

// normalizeAxis maps a raw stick value onto [-1, 1].
func normalizeAxis(v int16) float64 {
	if v < 0 {
		return float64(v) / 32768
	}
	return float64(v) / 32767
}

// triggerValue maps a raw trigger value onto [0, 1].
func triggerValue(v int16) float64 {
	if v <= 0 {
		return 0
	}
	return float64(v) / 32767
}

var namedKeycodes = map[sdl.Keycode]int{
	sdl.K_BACKSPACE: key.CodeBackspace,
	sdl.K_TAB:       key.CodeTab,
	sdl.K_RETURN:    key.CodeEnter,
	sdl.K_KP_ENTER:  key.CodeEnter,
	sdl.K_LSHIFT:    key.CodeShift,
	sdl.K_RSHIFT:    key.CodeShift,
	sdl.K_LCTRL:     key.CodeCtrl,
	sdl.K_RCTRL:     key.CodeCtrl,
	sdl.K_LALT:      key.CodeAlt,
	sdl.K_RALT:      key.CodeAlt,
	sdl.K_PAUSE:     key.CodePause,
	sdl.K_CAPSLOCK:  key.CodeCapsLock,
	sdl.K_ESCAPE:    key.CodeEscape,
	sdl.K_SPACE:     key.CodeSpace,
	sdl.K_PAGEUP:    key.CodePageUp,
	sdl.K_PAGEDOWN:  key.CodePageDown,
	sdl.K_END:       key.CodeEnd,
	sdl.K_HOME:      key.CodeHome,
	sdl.K_LEFT:      key.CodeLeft,
	sdl.K_UP:        key.CodeUp,
	sdl.K_RIGHT:     key.CodeRight,
	sdl.K_DOWN:      key.CodeDown,
	sdl.K_INSERT:    key.CodeInsert,
	sdl.K_DELETE:    key.CodeDelete,
}

// keyCode converts an SDL keycode into a key code.
func keyCode(sym sdl.Keycode) (int, bool) {
	switch {
	case sym >= sdl.K_a && sym <= sdl.K_z:
		return key.CodeA + int(sym-sdl.K_a), true
	case sym >= sdl.K_0 && sym <= sdl.K_9:
		return key.Code0 + int(sym-sdl.K_0), true
	case sym >= sdl.K_F1 && sym <= sdl.K_F12:
		return key.CodeF1 + int(sym-sdl.K_F1), true
	}
	c, ok := namedKeycodes[sym]
	return c, ok
}
