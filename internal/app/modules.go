package app

import (
	"github.com/vk/attrflow/internal/registry"
	"github.com/vk/attrflow/modules/stringcalc"
)

// coreModules is the definitive list of updater modules compiled into the
// attrflow binary.
var coreModules = []registry.Module{
	&stringcalc.Module{},
}
