package modules

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/socialhub/socialhub-go/pkg/hub"
)

// ModuleBase carries the hub address a module was deployed against and guards
// hook invocations so that only the hub may call them.
type ModuleBase struct {
	hubAddr common.Address
}

// NewModuleBase creates a base bound to the given hub address.
func NewModuleBase(hubAddr common.Address) ModuleBase {
	return ModuleBase{hubAddr: hubAddr}
}

// HubAddress returns the hub address this module is bound to.
func (b ModuleBase) HubAddress() common.Address {
	return b.hubAddr
}

// CheckHub returns hub.ErrNotHub unless sender is the hub address.
func (b ModuleBase) CheckHub(sender common.Address) error {
	if sender != b.hubAddr {
		return hub.ErrNotHub
	}
	return nil
}
