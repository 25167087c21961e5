package kernel

import (
	"fmt"
	"strings"

	"github.com/vbridgekit/vbridge/internal/hostval"
	"github.com/vbridgekit/vbridge/pkg/handle"
)

// installGlobals wires the bridge's built-in Error/Array/Object
// constructors onto the reserved global object and, under the extended
// variant, a console.log implementation onto the reserved console object.
// These stand in for what a real JS host already provides as ambient
// globalThis members.
func (k *Kernel) installGlobals() {
	global, ok := k.Table.GetOr(handle.Global).(*hostval.Object)
	if !ok {
		return
	}

	k.errorCtor = &hostval.Function{Name: "Error", IsErrorCtor: true}
	k.errorCtor.Construct = func(_ hostval.Value, args []hostval.Value) (hostval.Value, error) {
		msg := ""
		if len(args) > 0 {
			if s, ok := args[0].(hostval.String); ok {
				msg = string(s)
			} else {
				msg = fmt.Sprint(args[0])
			}
		}
		return hostval.NewErrorValue(msg), nil
	}
	k.errorCtor.Call = k.errorCtor.Construct

	k.arrayCtor = &hostval.Function{Name: "Array"}
	k.arrayCtor.Construct = func(_ hostval.Value, args []hostval.Value) (hostval.Value, error) {
		a := hostval.NewArray()
		a.Elems = args
		return a, nil
	}
	k.arrayCtor.Call = k.arrayCtor.Construct

	k.objectCtor = &hostval.Function{Name: "Object"}
	k.objectCtor.Construct = func(_ hostval.Value, _ []hostval.Value) (hostval.Value, error) {
		return hostval.NewObject(), nil
	}
	k.objectCtor.Call = k.objectCtor.Construct

	global.Props["Error"] = k.errorCtor
	global.Props["Array"] = k.arrayCtor
	global.Props["Object"] = k.objectCtor

	if k.Table.ReservedMax() < handle.Console {
		return // minimal variant has no console singleton
	}
	console, ok := k.Table.GetOr(handle.Console).(*hostval.Object)
	if !ok {
		return
	}
	console.Props["log"] = &hostval.Function{
		Name: "log",
		Call: func(_ hostval.Value, args []hostval.Value) (hostval.Value, error) {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = fmt.Sprint(a)
			}
			fmt.Fprintln(k.consoleOut, strings.Join(parts, " "))
			return hostval.Undefined, nil
		},
	}
}

// ErrorCtor returns the bridge's Error constructor function value, for
// embedders that want to register it directly rather than look it up via
// get(global, "Error").
func (k *Kernel) ErrorCtor() *hostval.Function { return k.errorCtor }
