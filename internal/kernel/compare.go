package kernel

import (
	"math"

	"github.com/vbridgekit/vbridge/internal/hostval"
	"github.com/vbridgekit/vbridge/pkg/handle"
)

func (k *Kernel) IsString(h handle.Handle) bool {
	_, ok := k.Table.GetOr(h).(hostval.String)
	return ok
}

// IsNumber matches `typeof obj === "number" || obj instanceof Number`;
// this bridge has no boxed-Number type, so it reduces to a Kind check.
func (k *Kernel) IsNumber(h handle.Handle) bool {
	_, ok := k.Table.GetOr(h).(hostval.Number)
	return ok
}

func (k *Kernel) Not(h handle.Handle) bool {
	return !hostval.Truthy(k.Table.GetOr(h))
}

func (k *Kernel) Gt(a, b handle.Handle) bool {
	return k.relate(a, b, func(x, y float64) bool { return x > y }, func(x, y string) bool { return x > y })
}

func (k *Kernel) Gte(a, b handle.Handle) bool {
	return k.relate(a, b, func(x, y float64) bool { return x >= y }, func(x, y string) bool { return x >= y })
}

func (k *Kernel) Lt(a, b handle.Handle) bool {
	return k.relate(a, b, func(x, y float64) bool { return x < y }, func(x, y string) bool { return x < y })
}

func (k *Kernel) Lte(a, b handle.Handle) bool {
	return k.relate(a, b, func(x, y float64) bool { return x <= y }, func(x, y string) bool { return x <= y })
}

// relate implements the host's relational comparison closely enough for
// the bridge's purposes: string-string compares lexicographically,
// everything else coerces to float64 and compares numerically. Either
// side coercing to NaN makes the comparison false, matching JS relational
// operators.
func (k *Kernel) relate(a, b handle.Handle, numCmp func(float64, float64) bool, strCmp func(string, string) bool) bool {
	av := k.Table.GetOr(a)
	bv := k.Table.GetOr(b)
	if as, ok := av.(hostval.String); ok {
		if bs, ok := bv.(hostval.String); ok {
			return strCmp(string(as), string(bs))
		}
	}
	af, aok := hostval.ToFloat64(av)
	bf, bok := hostval.ToFloat64(bv)
	if !aok || !bok || math.IsNaN(af) || math.IsNaN(bf) {
		return false
	}
	return numCmp(af, bf)
}

// Equals implements host loose equality: nullish values are mutually
// equal, same-kind values compare by value/identity, otherwise both sides
// coerce to float64 and compare numerically.
func (k *Kernel) Equals(a, b handle.Handle) bool {
	av := k.Table.GetOr(a)
	bv := k.Table.GetOr(b)
	if isNullish(av) && isNullish(bv) {
		return true
	}
	if av.Kind() == bv.Kind() {
		return strictEquals(av, bv)
	}
	af, aok := hostval.ToFloat64(av)
	bf, bok := hostval.ToFloat64(bv)
	return aok && bok && af == bf
}

// StrictlyEquals implements host identity-equality.
func (k *Kernel) StrictlyEquals(a, b handle.Handle) bool {
	return strictEquals(k.Table.GetOr(a), k.Table.GetOr(b))
}

func isNullish(v hostval.Value) bool {
	switch v.Kind() {
	case hostval.KindNull, hostval.KindUndefined:
		return true
	default:
		return false
	}
}

func strictEquals(av, bv hostval.Value) bool {
	if av.Kind() != bv.Kind() {
		return false
	}
	switch x := av.(type) {
	case hostval.Bool:
		y := bv.(hostval.Bool)
		return x == y
	case hostval.Number:
		y := bv.(hostval.Number)
		return x == y
	case hostval.String:
		y := bv.(hostval.String)
		return x == y
	case *hostval.BigInt:
		y := bv.(*hostval.BigInt)
		return x.String() == y.String()
	default:
		return av == bv
	}
}

// InstanceOf checks a against the constructor b. Without a full
// prototype-chain model, instanceof recognises the bridge's own
// Error/Array/Object constructors by identity and user constructors via
// the Ctor recorded by ConstructNew.
func (k *Kernel) InstanceOf(a, b handle.Handle) bool {
	ctor, ok := k.Table.GetOr(b).(*hostval.Function)
	if !ok {
		return false
	}
	av := k.Table.GetOr(a)
	if ctor.IsErrorCtor {
		_, isErr := av.(*hostval.ErrorValue)
		return isErr
	}
	switch v := av.(type) {
	case *hostval.Array:
		return ctor == k.arrayCtor || ctor == k.objectCtor
	case *hostval.Object:
		if ctor == k.objectCtor {
			return true
		}
		return v.Ctor == ctor
	case *hostval.ErrorValue:
		return ctor == k.objectCtor
	case *hostval.Function:
		return ctor == k.objectCtor
	default:
		return false
	}
}
