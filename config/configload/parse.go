package configload

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

func parseFile(filePath string) (*hclsyntax.Body, []byte, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	body, diags := parseBytes(src, filePath)
	if diags.HasErrors() {
		return nil, src, diags
	}
	return body, src, nil
}

func parseBytes(src []byte, filename string) (*hclsyntax.Body, hcl.Diagnostics) {
	if strings.HasSuffix(filename, ".json") {
		return nil, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "json configuration files are not supported",
		}}
	}

	parsed, diags := hclparse.NewParser().ParseHCL(src, filename)
	if parsed == nil || parsed.Body == nil {
		return &hclsyntax.Body{}, diags
	}

	body, ok := parsed.Body.(*hclsyntax.Body)
	if !ok {
		return &hclsyntax.Body{}, diags
	}
	return body, diags
}
