package kernel

import (
	"fmt"

	"github.com/vbridgekit/vbridge/internal/hostval"
	"github.com/vbridgekit/vbridge/internal/logctx"
	"github.com/vbridgekit/vbridge/pkg/handle"
)

// PrintObjectMap writes the table's live entries to the ambient logger,
// the closest Go-native analogue of `console.log(EMLITE_VALMAP)`.
func (k *Kernel) PrintObjectMap() {
	k.Table.Each(func(h handle.Handle, v hostval.Value, refs uint64, reserved bool) {
		if reserved {
			logctx.Info("handle table entry", "handle", h, "reserved", true, "value", fmt.Sprintf("%v", v))
			return
		}
		logctx.Info("handle table entry", "handle", h, "refs", refs, "value", fmt.Sprintf("%v", v))
	})
}

// ResetObjectMap drops every non-reserved entry.
func (k *Kernel) ResetObjectMap() { k.Table.Reset() }

// IncRef and DecRef are the guest's only lifetime controls, exposed
// verbatim from the underlying table.
func (k *Kernel) IncRef(h handle.Handle) { k.Table.IncRef(h) }
func (k *Kernel) DecRef(h handle.Handle) { k.Table.DecRef(h) }
