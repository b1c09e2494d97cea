package configload

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/fieldnation/devportal/config/env"
)

// newEvalContext exposes the process environment as 'env' object and
// a small set of string and collection functions.
func newEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for k, v := range env.Map() {
		vars[k] = cty.StringVal(v)
	}

	envVal := cty.EmptyObjectVal
	if len(vars) > 0 {
		envVal = cty.ObjectVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envVal,
		},
		Functions: map[string]function.Function{
			"coalesce": stdlib.CoalesceFunc,
			"lookup":   stdlib.LookupFunc,
			"lower":    stdlib.LowerFunc,
			"upper":    stdlib.UpperFunc,
		},
	}
}
