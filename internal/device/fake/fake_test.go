package fake

import "testing"

func TestProviderScript(t *testing.T) {
	p := NewProvider(1)
	if got := p.Devices(); len(got) != 1 || got[0] != nil {
		t.Fatalf("Devices() = %v, want one empty slot", got)
	}

	p.Connect(2, "pad")
	p.Press(2, 0)
	p.SetAxis(2, 1, -0.5)
	p.Press(0, 3)

	devs := p.Devices()
	if len(devs) != 3 {
		t.Fatalf("len(Devices()) = %d, want 3", len(devs))
	}
	if devs[0] != nil {
		t.Error("pressing on an empty slot created a device")
	}
	pad := devs[2]
	if !pad.Connected || pad.Name != "pad" || !pad.Buttons[0].Pressed || pad.Axes[1] != -0.5 {
		t.Errorf("slot 2 = %+v", pad)
	}

	pad.Buttons[0].Pressed = false
	if !p.Devices()[2].Buttons[0].Pressed {
		t.Error("Devices() result aliases provider state")
	}

	p.Release(2, 0)
	p.Disconnect(2)
	if p.Devices()[2] != nil {
		t.Error("Disconnect() left a device")
	}
	if p.Polls() != 4 {
		t.Errorf("Polls() = %d, want 4", p.Polls())
	}
}

func TestKeyboardScript(t *testing.T) {
	kb := NewKeyboard()
	var downs, ups []int
	kb.OnKeyDown(func(c int) { downs = append(downs, c) })
	sub := kb.OnKeyUp(func(c int) { ups = append(ups, c) })

	kb.Down(32)
	kb.Up(32)
	sub.Cancel()
	kb.Up(27)

	if len(downs) != 1 || downs[0] != 32 {
		t.Errorf("downs = %v", downs)
	}
	if len(ups) != 1 || ups[0] != 32 {
		t.Errorf("ups = %v", ups)
	}
}
