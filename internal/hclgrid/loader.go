// Package hclgrid loads search-space declarations from HCL files. A file
// holds one or more `space "<name>" { ... }` blocks whose attributes are
// scalars, lists of candidate values, or nested objects.
package hclgrid

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/expgridgo/internal/ctxlog"
	"github.com/vk/expgridgo/internal/fsutil"
	"github.com/vk/expgridgo/internal/grid"
)

// spaceBlock is the raw decode target for a single `space` block. Its body
// stays undecoded so arbitrary attribute names pass through.
type spaceBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// fileRoot decodes all top-level blocks of one search-space file.
type fileRoot struct {
	Spaces []*spaceBlock `hcl:"space,block"`
	Remain hcl.Body      `hcl:",remain"`
}

// Load discovers every .hcl file under the given paths and decodes all
// space blocks into named search spaces. A space name appearing twice
// across the loaded files is an error.
func Load(ctx context.Context, paths ...string) (map[string]grid.SearchSpace, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("discovering search-space files under %s: %w", path, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered search-space files.", "count", len(files))

	parser := hclparse.NewParser()
	spaces := make(map[string]grid.SearchSpace)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}

		for _, block := range root.Spaces {
			if _, exists := spaces[block.Name]; exists {
				return nil, fmt.Errorf("search space %q declared twice (second time in %s)", block.Name, file)
			}
			space, err := decodeSpace(block)
			if err != nil {
				return nil, fmt.Errorf("in %s, space %q: %w", file, block.Name, err)
			}
			spaces[block.Name] = space
			logger.Debug("Loaded search space.", "name", block.Name, "keys", len(space), "file", file)
		}
	}

	return spaces, nil
}

// decodeSpace evaluates every attribute of a space block into its native Go
// value.
func decodeSpace(block *spaceBlock) (grid.SearchSpace, error) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("reading attributes: %w", diags)
	}

	space := make(grid.SearchSpace, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating attribute %q: %w", name, diags)
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("in attribute %q: %w", name, err)
		}
		space[name] = native
	}
	return space, nil
}
