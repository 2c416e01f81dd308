package script

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/event"
	"github.com/dshills/joyride/internal/input/key"
)

// module builds the joyride table. Its functions run with r.mu held.
func (r *Runtime) module() *lua.LTable {
	return r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"on":            r.luaOn,
		"off":           r.luaOff,
		"trigger":       r.luaTrigger,
		"threshold":     r.luaThreshold,
		"on_connect":    r.luaOnConnection(key.Connect),
		"on_disconnect": r.luaOnConnection(key.Disconnect),
		"log":           r.luaLog,
	})
}

func (r *Runtime) luaOn(L *lua.LState) int {
	types := stringList(L, 1)
	keys := stringList(L, 2)
	fn := L.CheckFunction(3)

	ids, err := r.host.OnList(types, keys, r.listener(fn), event.Options{Tag: r.tag})
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(lua.LNumber(len(ids)))
	return 1
}

func (r *Runtime) luaOff(L *lua.LState) int {
	n := r.host.OffList(stringList(L, 1), stringList(L, 2))
	L.Push(lua.LNumber(n))
	return 1
}

func (r *Runtime) luaTrigger(L *lua.LState) int {
	typ := L.CheckString(1)
	k := L.CheckString(2)
	v := valueArg(L, 3)
	slot := L.OptInt(4, 0)
	if typ == "" || k == "" {
		L.RaiseError("trigger needs a type and a key")
	}
	r.pending = append(r.pending, trigger{
		typ:   key.EventType(typ),
		key:   key.Logical(k),
		value: v,
		slot:  key.Slot(slot),
	})
	return 0
}

func (r *Runtime) luaThreshold(L *lua.LState) int {
	if L.GetTop() >= 1 {
		if err := r.host.SetGlobalThreshold(float64(L.CheckNumber(1))); err != nil {
			L.RaiseError("%s", err.Error())
		}
	}
	L.Push(lua.LNumber(r.host.Threshold()))
	return 1
}

func (r *Runtime) luaOnConnection(t key.EventType) lua.LGFunction {
	return func(L *lua.LState) int {
		fn := L.CheckFunction(1)
		if t == key.Connect {
			r.connect = append(r.connect, fn)
		} else {
			r.disconnect = append(r.disconnect, fn)
		}
		if !r.installed[t] {
			if err := r.host.OnConnection(t, r.connection(t)); err != nil {
				L.RaiseError("%s", err.Error())
			}
			r.installed[t] = true
		}
		return 0
	}
}

func (r *Runtime) luaLog(L *lua.LState) int {
	r.logger.Info(L.CheckString(1), zap.String("source", "lua"))
	return 0
}
