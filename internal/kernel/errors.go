package kernel

import (
	"fmt"

	"github.com/vbridgekit/vbridge/internal/hostval"
)

// normalizeThrown transforms an arbitrary thrown value (or plain Go
// error) into a host Error-equivalent.
//
//   - already an ErrorValue: pass through.
//   - anything else: build a new ErrorValue with Message = String(thrown),
//     copying name/code when the thrown value exposes them, recording the
//     original value as Cause.
//   - if that construction itself panics, substitute the fixed
//     "Unknown host exception" message.
func (k *Kernel) normalizeThrown(thrown error) (ev *hostval.ErrorValue) {
	defer func() {
		if recover() != nil {
			ev = hostval.NewErrorValue("Unknown host exception")
		}
	}()

	tv, ok := thrown.(*hostval.ThrownValue)
	if !ok {
		ev = hostval.NewErrorValue(thrown.Error())
		ev.Cause = hostval.String(thrown.Error())
		return ev
	}

	if existing, ok := tv.Value.(*hostval.ErrorValue); ok {
		return existing
	}

	ev = hostval.NewErrorValue(fmt.Sprint(tv.Value))
	ev.Cause = tv.Value
	if idx, ok := tv.Value.(hostval.Indexable); ok {
		if n, ok := idx.Get(hostval.String("name")); ok {
			if s, ok := n.(hostval.String); ok {
				ev.Name = string(s)
			}
		}
		if c, ok := idx.Get(hostval.String("code")); ok {
			if s, ok := c.(hostval.String); ok {
				ev.Code = string(s)
			}
		}
	}
	return ev
}
