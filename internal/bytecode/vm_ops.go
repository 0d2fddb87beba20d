package bytecode

import (
	"math"

	"github.com/es3vm/es3vm/internal/cerr"
	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/runtime"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// execOne runs a single already-fetched instruction and reports
// whether the calling exec loop should return now (block depth at or
// below floor after an END/THROW/runtime-error unwind).
func (f *frame) execOne(instr Instruction, floor int) bool {
	vm := f.vm
	switch instr.OpCode() {
	case NOP:

	case DUP:
		f.push(f.peek())
	case POP:
		f.pop()
	case EXCH:
		n := len(f.stack)
		f.stack[n-1], f.stack[n-2] = f.stack[n-2], f.stack[n-1]
	case ROLL3:
		n := len(f.stack)
		f.stack[n-2], f.stack[n-3] = f.stack[n-3], f.stack[n-2]
	case BASE:
		ref := f.pop()
		if base, ok := ref.RefBase(); ok && base != nil {
			f.push(values.FromObject(base))
		} else {
			f.push(values.Undefined)
		}

	case SETLAST:
		f.lastValue = f.pop()

	case THIS:
		f.push(f.this)

	case LITERAL:
		f.push(f.chunk.Literals[instr.B()])
	case LOC:
		f.push(values.StringFromGo(f.chunk.Names[instr.B()]))

	case LOOKUP:
		name := f.pop()
		base, _ := f.scope.Resolve(name.Str())
		f.push(values.NewReference(base, name.Str()))
	case REF:
		name := f.pop()
		objV := f.pop()
		propName, err := values.ToString(name)
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(values.NewReference(objV.Obj(), propName))

	case GETVALUE:
		ref := f.pop()
		v, err := runtime.GetValue(ref, vm.undefDef())
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(v)
	case PUTVALUE:
		value := f.pop()
		ref := f.pop()
		if err := runtime.PutValue(ref, value, vm.global); err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(value)

	case VAR:
		name := f.pop()
		key := name.Str()
		if !f.varObj.HasProperty(key) {
			if err := f.varObj.Put(key, values.Undefined, values.DontDelete); err != nil {
				if f.raise(err, floor) {
					return true
				}
			}
		}
	case PUTVAR:
		value := f.pop()
		name := f.pop()
		if err := f.varObj.Put(name.Str(), value, values.DontDelete); err != nil {
			if f.raise(err, floor) {
				return true
			}
		}

	case DELETE:
		ref := f.pop()
		base, hasBase := ref.RefBase()
		if !hasBase {
			f.push(values.True)
			break
		}
		ok, err := base.Delete(ref.RefProperty())
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(values.Bool(ok))

	case TYPEOF:
		v := f.pop()
		if v.IsReference() {
			base, hasBase := v.RefBase()
			if !hasBase {
				f.push(values.StringFromGo("undefined"))
				break
			}
			resolved, err := base.Get(v.RefProperty())
			if err != nil {
				if f.raise(err, floor) {
					return true
				}
				break
			}
			f.push(values.StringFromGo(typeofString(resolved)))
			break
		}
		f.push(values.StringFromGo(typeofString(v)))

	case TOOBJECT:
		v := f.pop()
		obj, err := toObjectForMember(v)
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(values.FromObject(obj))
	case TONUMBER:
		v := f.pop()
		n, err := values.ToNumber(v)
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(values.Number(n))
	case TOBOOLEAN:
		f.push(values.Bool(values.ToBoolean(f.pop())))
	case TOSTRING:
		v := f.pop()
		s, err := values.ToString(v)
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(values.String(s))
	case TOPRIMITIVE:
		v := f.pop()
		p, err := values.ToPrimitive(v, values.Kind(instr.A()))
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(p)

	case NEG:
		n, err := values.ToNumber(f.pop())
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(values.Number(-n))
	case INV:
		n, err := values.ToInt32(f.pop())
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(values.Number(float64(^n)))
	case NOT:
		f.push(values.Bool(!values.ToBoolean(f.pop())))

	case MUL, DIV, MOD, SUB:
		right := f.pop()
		left := f.pop()
		rn, err := values.ToNumber(right)
		if err == nil {
			var ln float64
			ln, err = values.ToNumber(left)
			if err == nil {
				f.push(values.Number(numericOp(instr.OpCode(), ln, rn)))
				break
			}
		}
		if f.raise(err, floor) {
			return true
		}
	case ADD:
		right := f.pop()
		left := f.pop()
		v, err := addValues(left, right)
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(v)

	case LSHIFT, RSHIFT, URSHIFT, BAND, BXOR, BOR:
		right := f.pop()
		left := f.pop()
		v, err := bitOp(instr.OpCode(), left, right)
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(v)

	case LT:
		right, left := f.pop(), f.pop()
		r, err := values.AbstractRelCompare(left, right, true)
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(values.Bool(r == values.RelLess))
	case GE:
		right, left := f.pop(), f.pop()
		r, err := values.AbstractRelCompare(left, right, true)
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(relResult(r, values.RelGreaterOrEqual))
	case GT:
		right, left := f.pop(), f.pop()
		r, err := values.AbstractRelCompare(right, left, false)
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(values.Bool(r == values.RelLess))
	case LE:
		right, left := f.pop(), f.pop()
		r, err := values.AbstractRelCompare(right, left, false)
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(relResult(r, values.RelGreaterOrEqual))

	case EQ:
		right, left := f.pop(), f.pop()
		ok, err := values.AbstractEquals(left, right)
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(values.Bool(ok))
	case SEQ:
		right, left := f.pop(), f.pop()
		f.push(values.Bool(values.StrictEquals(left, right)))

	case INSTANCEOF:
		right, left := f.pop(), f.pop()
		if right.Kind() != values.KindObject || !right.Obj().HasInstance() {
			if f.raiseValue(vm.throwNative(cerr.TypeErrorKind, "right-hand side of 'instanceof' is not callable"), floor) {
				return true
			}
			break
		}
		ok, err := right.Obj().HasInstanceOf(left)
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(values.Bool(ok))
	case IN:
		right, left := f.pop(), f.pop()
		if right.Kind() != values.KindObject {
			if f.raiseValue(vm.throwNative(cerr.TypeErrorKind, "'in' requires an object right-hand side"), floor) {
				return true
			}
			break
		}
		name, err := values.ToString(left)
		if err != nil {
			if f.raise(err, floor) {
				return true
			}
			break
		}
		f.push(values.Bool(right.Obj().HasProperty(name)))

	case OBJECT:
		n := int(instr.B())
		obj := object.New("Object", vm.builtins.ObjectProto)
		pairs := make([]values.Value, 2*n)
		for i := 2*n - 1; i >= 0; i-- {
			pairs[i] = f.pop()
		}
		for i := 0; i < n; i++ {
			key, err := values.ToString(pairs[2*i])
			if err != nil {
				if f.raise(err, floor) {
					return true
				}
				break
			}
			obj.DefineOwnProperty(key, pairs[2*i+1], 0)
		}
		f.push(values.FromObject(obj))
	case ARRAY:
		n := int(instr.B())
		vals := make([]values.Value, n)
		for i := n - 1; i >= 0; i-- {
			vals[i] = f.pop()
		}
		arr := object.NewArray(vm.builtins.ObjectProto, uint32(n))
		for i, v := range vals {
			_ = arr.Put(strs.New(itoa(i)), v, 0)
		}
		f.push(values.FromObject(arr))
	case REGEXP:
		flags := f.pop()
		pattern := f.pop()
		f.push(makeRegexp(vm, pattern, flags))

	case FUNC:
		proto := f.chunk.Funcs[instr.B()]
		f.push(vm.makeFunction(proto, f.scope))

	case CALL:
		n := int(instr.B())
		args := make([]values.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = f.pop()
		}
		callee := f.pop()
		this := f.pop()
		if callee.Kind() != values.KindObject || !callee.Obj().HasCall() {
			if f.raiseValue(vm.throwNative(cerr.TypeErrorKind, "value is not a function"), floor) {
				return true
			}
			break
		}
		result, err := callee.Obj().Call(this, args)
		if err != nil {
			if f.raiseValue(vm.rethrow(err), floor) {
				return true
			}
			break
		}
		f.push(result)
	case EVALCALL:
		n := int(instr.B())
		args := make([]values.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = f.pop()
		}
		callee := f.pop()
		this := f.pop()
		if vm.isDirectEvalName(f.scope) {
			result := vm.directEval(f, args)
			if result.CompletionKind() == values.Throw {
				if f.raiseValue(result.CompletionValue(), floor) {
					return true
				}
				break
			}
			f.push(result.CompletionValue())
			break
		}
		if callee.Kind() != values.KindObject || !callee.Obj().HasCall() {
			if f.raiseValue(vm.throwNative(cerr.TypeErrorKind, "value is not a function"), floor) {
				return true
			}
			break
		}
		result, err := callee.Obj().Call(this, args)
		if err != nil {
			if f.raiseValue(vm.rethrow(err), floor) {
				return true
			}
			break
		}
		f.push(result)
	case NEW:
		n := int(instr.B())
		args := make([]values.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = f.pop()
		}
		callee := f.pop()
		if callee.Kind() != values.KindObject || !callee.Obj().HasConstruct() {
			if f.raiseValue(vm.throwNative(cerr.TypeErrorKind, "value is not a constructor"), floor) {
				return true
			}
			break
		}
		result, err := callee.Obj().Construct(args)
		if err != nil {
			if f.raiseValue(vm.rethrow(err), floor) {
				return true
			}
			break
		}
		f.push(result)

	case SETC:
		f.cvalue = f.pop()
		f.c = values.CompletionKind(instr.A())
	case GETC:
		f.push(f.cvalue)

	case END:
		f.doEnd(int(instr.B()))
		return len(f.blocks) <= floor
	case THROW:
		thrown := f.pop()
		f.stampThrowLine()
		f.unwindThrow(thrown)
		return len(f.blocks) <= floor

	case B_ALWAYS:
		f.pc += int(instr.SignedB())
	case B_TRUE:
		v := f.pop()
		if values.ToBoolean(v) {
			f.pc += int(instr.SignedB())
		}
	case B_ENUM:
		if f.enumIdx < len(f.enumNames) {
			f.push(values.String(f.enumNames[f.enumIdx]))
			f.enumIdx++
		} else {
			f.pc += int(instr.SignedB())
		}

	case S_WITH:
		obj := f.pop()
		f.blocks = append(f.blocks, block{kind: blockWith, savedScope: f.scope})
		f.scope = runtime.NewScope(obj.Obj(), f.scope)
	case S_ENUM:
		obj := f.pop()
		f.blocks = append(f.blocks, block{kind: blockEnum, savedEnum: f.enumNames, savedEnumIdx: f.enumIdx})
		f.enumNames = enumerateNames(obj.Obj())
		f.enumIdx = 0
	case S_TRYC:
		f.blocks = append(f.blocks, block{
			kind:      blockTryCatch,
			stackLen:  len(f.stack),
			handlerPC: f.pc + int(instr.SignedB()),
			catchName: strs.New(f.chunk.Names[instr.A()]),
		})
	case S_TRYF:
		f.blocks = append(f.blocks, block{
			kind:      blockTryFinally,
			stackLen:  len(f.stack),
			handlerPC: f.pc + int(instr.SignedB()),
		})

	default:
		if f.raiseValue(vm.throwNative(cerr.Error, "unimplemented opcode "+instr.OpCode().String()), floor) {
			return true
		}
	}
	return false
}

func relResult(r values.RelCompareResult, want values.RelCompareResult) values.Value {
	if r == values.RelUndefined {
		return values.False
	}
	return values.Bool(r == want)
}

func typeofString(v values.Value) string {
	switch v.Kind() {
	case values.KindUndefined:
		return "undefined"
	case values.KindNull:
		return "object"
	case values.KindBoolean:
		return "boolean"
	case values.KindNumber:
		return "number"
	case values.KindString:
		return "string"
	case values.KindObject:
		if v.Obj().HasCall() {
			return "function"
		}
		return "object"
	default:
		return "undefined"
	}
}

// toObjectForMember mirrors internal/eval's toObjectForMember: no
// primitive-wrapper objects exist (Non-goal), so only an Object value
// converts.
func toObjectForMember(v values.Value) (values.Object, error) {
	switch v.Kind() {
	case values.KindObject:
		return v.Obj(), nil
	case values.KindUndefined, values.KindNull:
		return nil, &values.TypeError{Message: "cannot read properties of " + v.Kind().String()}
	default:
		return nil, &values.TypeError{Message: "cannot convert " + v.Kind().String() + " to an object (primitive wrapper objects are not implemented)"}
	}
}

func numericOp(op Op, a, b float64) float64 {
	switch op {
	case MUL:
		return a * b
	case DIV:
		return a / b
	case MOD:
		return math.Mod(a, b)
	case SUB:
		return a - b
	}
	return math.NaN()
}

func addValues(left, right values.Value) (values.Value, error) {
	lp, err := values.ToPrimitive(left, 0)
	if err != nil {
		return values.Undefined, err
	}
	rp, err := values.ToPrimitive(right, 0)
	if err != nil {
		return values.Undefined, err
	}
	if lp.Kind() == values.KindString || rp.Kind() == values.KindString {
		ls, err := values.ToString(lp)
		if err != nil {
			return values.Undefined, err
		}
		rs, err := values.ToString(rp)
		if err != nil {
			return values.Undefined, err
		}
		return values.String(strs.Concat(ls, rs)), nil
	}
	ln, err := values.ToNumber(lp)
	if err != nil {
		return values.Undefined, err
	}
	rn, err := values.ToNumber(rp)
	if err != nil {
		return values.Undefined, err
	}
	return values.Number(ln + rn), nil
}

func bitOp(op Op, left, right values.Value) (values.Value, error) {
	switch op {
	case BAND, BXOR, BOR:
		ln, err := values.ToInt32(left)
		if err != nil {
			return values.Undefined, err
		}
		rn, err := values.ToInt32(right)
		if err != nil {
			return values.Undefined, err
		}
		switch op {
		case BAND:
			return values.Number(float64(ln & rn)), nil
		case BXOR:
			return values.Number(float64(ln ^ rn)), nil
		default:
			return values.Number(float64(ln | rn)), nil
		}
	case LSHIFT:
		ln, err := values.ToInt32(left)
		if err != nil {
			return values.Undefined, err
		}
		rn, err := values.ToUint32(right)
		if err != nil {
			return values.Undefined, err
		}
		return values.Number(float64(ln << (rn & 31))), nil
	case RSHIFT:
		ln, err := values.ToInt32(left)
		if err != nil {
			return values.Undefined, err
		}
		rn, err := values.ToUint32(right)
		if err != nil {
			return values.Undefined, err
		}
		return values.Number(float64(ln >> (rn & 31))), nil
	default: // URSHIFT
		ln, err := values.ToUint32(left)
		if err != nil {
			return values.Undefined, err
		}
		rn, err := values.ToUint32(right)
		if err != nil {
			return values.Undefined, err
		}
		return values.Number(float64(ln >> (rn & 31))), nil
	}
}

func makeRegexp(vm *VM, pattern, flags values.Value) values.Value {
	obj := object.New("RegExp", vm.builtins.ObjectProto)
	ps, _ := values.ToString(pattern)
	fs, _ := values.ToString(flags)
	obj.DefineOwnProperty(strs.New("source"), values.String(ps), values.DontDelete|values.ReadOnly)
	obj.DefineOwnProperty(strs.New("flags"), values.String(fs), values.DontDelete|values.ReadOnly)
	obj.DefineOwnProperty(strs.New("lastIndex"), values.Number(0), values.DontDelete)
	return values.FromObject(obj)
}

// enumerateNames implements the for-in prototype-chain walk ECMA-262
// §12.6.4 requires: own enumerable names at each level, most-derived
// object first, each name visited only once even if shadowed up the
// chain.
func enumerateNames(obj values.Object) []*strs.String {
	var out []*strs.String
	seen := make(map[string]bool)
	for cur := obj; cur != nil; cur = cur.Prototype() {
		for _, n := range cur.PropertyNames() {
			key := n.MustUTF8()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, n)
		}
	}
	return out
}
