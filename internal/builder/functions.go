package builder

import (
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// exprFunctions is the function table available to update expressions. Kept
// deliberately small: update rules are arithmetic and formatting over
// dependency values, not a general-purpose language.
var exprFunctions = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"format": stdlib.FormatFunc,
	"upper":  stdlib.UpperFunc,
	"lower":  stdlib.LowerFunc,
}
