package adapters

import (
	"context"

	"github.com/rowzip/rowzip/core"
	"github.com/rowzip/rowzip/core/builders"
)

var _ core.Driver = (*duckDriver)(nil)

type duckDriver struct {
	c *builders.Client
}

func (d *duckDriver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	return d.c.QueryUntilNotEmpty(ctx, query)
}

func (d *duckDriver) Close() {
	d.c.Close()
}
