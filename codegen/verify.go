// Package codegen contains the checks run over LLVM functions once the
// generator has finished building them.  The llir library only produces IR
// text and performs no validation of its own, so malformed functions must be
// caught here before they reach `opt` or `llc`.
package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// VerifyError reports a function that failed verification.
type VerifyError struct {
	Func   string
	Block  string
	Reason string
}

func (ve *VerifyError) Error() string {
	if ve.Block == "" {
		return fmt.Sprintf("verification of `%s` failed: %s", ve.Func, ve.Reason)
	}

	return fmt.Sprintf("verification of `%s` failed in block `%s`: %s", ve.Func, ve.Block, ve.Reason)
}

// FinishFunc verifies a newly built function of the given module.  It returns
// nil if the function is well-formed.
func FinishFunc(mod *ir.Module, fn *ir.Func) error {
	v := verifier{mod: mod, fn: fn}
	return v.verify()
}

// verifier holds the state of a single verification run.
type verifier struct {
	mod *ir.Module
	fn  *ir.Func

	// block is the name of the block being verified.
	block string
}

func (v *verifier) fail(reason string, args ...interface{}) error {
	return &VerifyError{Func: v.fn.Name(), Block: v.block, Reason: fmt.Sprintf(reason, args...)}
}

func (v *verifier) verify() error {
	if len(v.fn.Blocks) == 0 {
		return v.fail("function has no body")
	}

	if !v.declared(v.fn) {
		return v.fail("function is not part of the module")
	}

	for _, b := range v.fn.Blocks {
		v.block = b.Name()

		for _, inst := range b.Insts {
			if err := v.verifyInst(inst); err != nil {
				return err
			}
		}

		if b.Term == nil {
			return v.fail("block has no terminator")
		}

		if ret, ok := b.Term.(*ir.TermRet); ok {
			if err := v.verifyRet(ret); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *verifier) verifyInst(inst ir.Instruction) error {
	switch x := inst.(type) {
	case *ir.InstCall:
		callee, ok := x.Callee.(*ir.Func)
		if !ok {
			return v.fail("indirect calls are not supported")
		}

		if !v.declared(callee) {
			return v.fail("call to undeclared function `%s`", callee.Name())
		}

		params := callee.Sig.Params
		if len(x.Args) != len(params) {
			return v.fail("call to `%s` passes %d arguments but it takes %d", callee.Name(), len(x.Args), len(params))
		}

		for i, arg := range x.Args {
			if !arg.Type().Equal(params[i]) {
				return v.fail("argument %d of call to `%s` has type %s but %s is expected", i, callee.Name(), arg.Type(), params[i])
			}
		}
	case *ir.InstBitCast:
		if _, ok := x.From.Type().(*types.PointerType); !ok {
			return v.fail("bitcast of non-pointer value %s", x.From.Ident())
		}

		if _, ok := x.To.(*types.PointerType); !ok {
			return v.fail("bitcast to non-pointer type %s", x.To)
		}
	case *ir.InstLoad:
		if err := v.checkPointee(x.Src, x.ElemType); err != nil {
			return err
		}
	case *ir.InstGetElementPtr:
		if err := v.checkPointee(x.Src, x.ElemType); err != nil {
			return err
		}

		if err := v.checkIndices(x.ElemType, x.Indices); err != nil {
			return err
		}
	}

	return nil
}

// checkPointee checks that src is a pointer to elemType.
func (v *verifier) checkPointee(src value.Value, elemType types.Type) error {
	pt, ok := src.Type().(*types.PointerType)
	if !ok {
		return v.fail("%s is not a pointer", src.Ident())
	}

	if !pt.ElemType.Equal(elemType) {
		return v.fail("%s points to %s not %s", src.Ident(), pt.ElemType, elemType)
	}

	return nil
}

// checkIndices checks the struct indices of a getelementptr.
func (v *verifier) checkIndices(elemType types.Type, indices []value.Value) error {
	if len(indices) < 2 {
		return nil
	}

	st, ok := elemType.(*types.StructType)
	if !ok {
		return nil
	}

	if st.Opaque {
		return v.fail("getelementptr into opaque struct %s", st)
	}

	ndx, ok := indices[1].(*constant.Int)
	if !ok {
		return v.fail("struct index must be a constant")
	}

	if !ndx.X.IsInt64() || ndx.X.Int64() < 0 || ndx.X.Int64() >= int64(len(st.Fields)) {
		return v.fail("struct index %s out of range for %s", ndx.X, st)
	}

	return nil
}

func (v *verifier) verifyRet(ret *ir.TermRet) error {
	retType := v.fn.Sig.RetType

	if ret.X == nil {
		if !retType.Equal(types.Void) {
			return v.fail("missing return value of type %s", retType)
		}

		return nil
	}

	if !ret.X.Type().Equal(retType) {
		return v.fail("return value has type %s but %s is expected", ret.X.Type(), retType)
	}

	return nil
}

// declared returns whether a function belongs to the module being verified.
func (v *verifier) declared(fn *ir.Func) bool {
	for _, f := range v.mod.Funcs {
		if f == fn {
			return true
		}
	}

	return false
}
