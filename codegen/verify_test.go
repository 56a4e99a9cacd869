package codegen

import (
	"errors"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/require"
)

func newTraceFunc(mod *ir.Module, name string) *ir.Func {
	return mod.NewFunc(name, types.Void, ir.NewParam("arg", types.I8Ptr))
}

func TestFinishFuncAcceptsTrace(t *testing.T) {
	mod := ir.NewModule()
	st := types.NewStruct(types.I32, types.I8Ptr)
	mod.NewTypeDef("Pair", st)
	rt := mod.NewFunc("rt_trace_tag", types.Void, ir.NewParam("p", types.I8Ptr))

	fn := newTraceFunc(mod, "Pair$trace")
	entry := fn.NewBlock("entry")
	obj := entry.NewBitCast(fn.Params[0], types.NewPointer(st))
	field := entry.NewGetElementPtr(st, obj, constant.NewInt(types.I32, 0), constant.NewInt(types.I32, 1))
	val := entry.NewLoad(types.I8Ptr, field)
	entry.NewCall(rt, val)
	entry.NewRet(nil)

	require.NoError(t, FinishFunc(mod, fn))
}

func TestFinishFuncRejects(t *testing.T) {
	type testCase struct {
		name  string
		build func(mod *ir.Module) *ir.Func
	}
	tcs := []testCase{
		{"no body", func(mod *ir.Module) *ir.Func {
			return newTraceFunc(mod, "f")
		}},
		{"no terminator", func(mod *ir.Module) *ir.Func {
			fn := newTraceFunc(mod, "f")
			fn.NewBlock("entry")
			return fn
		}},
		{"bad return", func(mod *ir.Module) *ir.Func {
			fn := newTraceFunc(mod, "f")
			fn.NewBlock("entry").NewRet(constant.NewInt(types.I32, 1))
			return fn
		}},
		{"foreign callee", func(mod *ir.Module) *ir.Func {
			other := ir.NewModule()
			rt := other.NewFunc("rt", types.Void)
			fn := newTraceFunc(mod, "f")
			entry := fn.NewBlock("entry")
			entry.NewCall(rt)
			entry.NewRet(nil)
			return fn
		}},
		{"arity", func(mod *ir.Module) *ir.Func {
			rt := mod.NewFunc("rt", types.Void, ir.NewParam("p", types.I8Ptr))
			fn := newTraceFunc(mod, "f")
			entry := fn.NewBlock("entry")
			entry.NewCall(rt)
			entry.NewRet(nil)
			return fn
		}},
		{"arg type", func(mod *ir.Module) *ir.Func {
			rt := mod.NewFunc("rt", types.Void, ir.NewParam("p", types.I8Ptr))
			fn := newTraceFunc(mod, "f")
			entry := fn.NewBlock("entry")
			entry.NewCall(rt, constant.NewInt(types.I32, 0))
			entry.NewRet(nil)
			return fn
		}},
		{"load type", func(mod *ir.Module) *ir.Func {
			st := types.NewStruct(types.I32)
			mod.NewTypeDef("One", st)
			fn := newTraceFunc(mod, "f")
			entry := fn.NewBlock("entry")
			obj := entry.NewBitCast(fn.Params[0], types.NewPointer(st))
			entry.NewLoad(types.I64, obj)
			entry.NewRet(nil)
			return fn
		}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			mod := ir.NewModule()
			fn := tc.build(mod)

			err := FinishFunc(mod, fn)
			require.Error(t, err)

			var ve *VerifyError
			require.True(t, errors.As(err, &ve))
			require.Equal(t, "f", ve.Func)
		})
	}
}
