package configload

import (
	"regexp"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

const environment = "environment"

var regexLabel = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// preprocessEnvironmentBlocks inlines the content of all 'environment' blocks
// labeled with env and drops the other ones.
func preprocessEnvironmentBlocks(body *hclsyntax.Body, env string) error {
	return preprocessBody(body, env)
}

func preprocessBody(parent *hclsyntax.Body, env string) error {
	var blocks []*hclsyntax.Block

	for _, block := range parent.Blocks {
		if block.Type != environment {
			blocks = append(blocks, block)

			continue
		}

		if len(block.Labels) == 0 {
			defRange := block.DefRange()

			return hcl.Diagnostics{
				&hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Missing label(s) for 'environment' block",
					Subject:  &defRange,
				},
			}
		}

		for i, label := range block.Labels {
			if !regexLabel.MatchString(label) {
				return hcl.Diagnostics{&hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "label contains invalid character(s), allowed are 'a-z', 'A-Z', '0-9', '-' and '_'",
					Subject:  &block.LabelRanges[i],
				}}
			}

			if label != env {
				continue
			}

			for _, inner := range block.Body.Blocks {
				blocks = mergeBlock(blocks, inner)
			}

			for name, attr := range block.Body.Attributes {
				parent.Attributes[name] = attr
			}
		}
	}

	for _, block := range blocks {
		if err := preprocessBody(block.Body, env); err != nil {
			return err
		}
	}

	parent.Blocks = blocks

	return nil
}

// mergeBlock overrides the attributes of an already defined block with the same
// type and labels or appends the block otherwise.
func mergeBlock(blocks []*hclsyntax.Block, block *hclsyntax.Block) []*hclsyntax.Block {
	for _, b := range blocks {
		if b.Type != block.Type || !equalLabels(b.Labels, block.Labels) {
			continue
		}
		for name, attr := range block.Body.Attributes {
			b.Body.Attributes[name] = attr
		}
		return blocks
	}
	return append(blocks, block)
}

func equalLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
