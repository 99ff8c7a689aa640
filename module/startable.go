package module

import (
	"errors"

	"github.com/compilerbench/perfsite/module/irrecoverable"
)

// ErrMultipleStartup is returned when Start is called more than once on a
// component that only supports a single startup.
var ErrMultipleStartup = errors.New("component may only be started once")

// Startable provides an interface to start a component. Once started, the
// component can be stopped by cancelling the given context. Irrecoverable
// errors are thrown on the context rather than returned.
type Startable interface {
	Start(irrecoverable.SignalerContext)
}
