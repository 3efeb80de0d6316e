package tinymce

import (
	"context"

	"github.com/goliatone/go-tinymce/pkg/config"
	"github.com/goliatone/go-tinymce/pkg/markers"
)

// LoadParameters reads a parameters file into a store usable with
// extension.WithParameters.
func LoadParameters(ctx context.Context, path string) (config.Parameters, error) {
	return config.LoadParameters(ctx, path)
}

// LoadRoutes reads a routes file (name: path) into a route table. prefix is
// prepended to every generated URL.
func LoadRoutes(ctx context.Context, path, prefix string) (*markers.RouteTable, error) {
	tree, err := config.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return markers.RouteTableFromTree(prefix, tree)
}
