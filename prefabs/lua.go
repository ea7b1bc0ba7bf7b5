package prefabs

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// RunLua runs a Lua scene script with the global seed set and reads back
// its global bodies table.
func RunLua(src []byte, seed int64) ([]BodySpec, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	defer vm.Close()

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	vm.SetContext(ctx)

	vm.SetGlobal("seed", lua.LNumber(seed))
	if err := vm.DoString(string(src)); err != nil {
		return nil, fmt.Errorf("lua: run: %w", err)
	}

	tbl, ok := vm.GetGlobal("bodies").(*lua.LTable)
	if !ok {
		return nil, ErrScriptOutput
	}

	n := tbl.Len()
	out := make([]BodySpec, 0, n)
	for i := 1; i <= n; i++ {
		item, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("%w: bodies[%d] is not a table", ErrScriptOutput, i)
		}
		bs, err := bodyFromFields(func(key string) (any, bool) {
			switch v := item.RawGetString(key).(type) {
			case lua.LNumber:
				return float64(v), true
			case lua.LString:
				return string(v), true
			case *lua.LNilType:
				return nil, false
			default:
				return v.String(), true
			}
		})
		if err != nil {
			return nil, fmt.Errorf("%w: bodies[%d]: %v", ErrScriptOutput, i, err)
		}
		out = append(out, bs)
	}
	return out, nil
}
