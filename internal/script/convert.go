package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/joyride/internal/event"
	"github.com/dshills/joyride/internal/input/key"
)

// stringList reads a whitespace-separated string or an array of strings.
func stringList(L *lua.LState, n int) []string {
	switch v := L.Get(n).(type) {
	case lua.LString:
		return strings.Fields(string(v))
	case *lua.LTable:
		var out []string
		for i := 1; i <= v.Len(); i++ {
			s, ok := v.RawGetInt(i).(lua.LString)
			if !ok {
				L.ArgError(n, "expected an array of strings")
			}
			out = append(out, strings.Fields(string(s))...)
		}
		return out
	default:
		L.ArgError(n, "expected a string or an array of strings")
		return nil
	}
}

// valueArg reads a number or an array of numbers. A missing value is 1.
func valueArg(L *lua.LState, n int) key.Value {
	switch v := L.Get(n).(type) {
	case *lua.LNilType:
		return key.Scalar(1)
	case lua.LNumber:
		return key.Scalar(float64(v))
	case *lua.LTable:
		out := make(key.Value, 0, v.Len())
		for i := 1; i <= v.Len(); i++ {
			num, ok := v.RawGetInt(i).(lua.LNumber)
			if !ok {
				L.ArgError(n, "expected an array of numbers")
			}
			out = append(out, float64(num))
		}
		return out
	default:
		L.ArgError(n, "expected a number or an array of numbers")
		return nil
	}
}

func valueTable(L *lua.LState, v key.Value) *lua.LTable {
	t := L.CreateTable(len(v), 0)
	for _, f := range v {
		t.Append(lua.LNumber(f))
	}
	return t
}

// eventTable converts an event into the table passed to listeners.
func eventTable(L *lua.LState, ev event.Event) *lua.LTable {
	t := L.CreateTable(0, 5)
	t.RawSetString("type", lua.LString(ev.Type))
	t.RawSetString("button", lua.LString(ev.Button))
	t.RawSetString("value", valueTable(L, ev.Value))
	t.RawSetString("player", lua.LNumber(ev.Player))
	t.RawSetString("timestamp", lua.LNumber(ev.Timestamp.UnixMilli()))
	return t
}
