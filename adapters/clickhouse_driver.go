package adapters

import (
	"context"

	"github.com/rowzip/rowzip/core"
	"github.com/rowzip/rowzip/core/builders"
)

var _ core.Driver = (*clickhouseDriver)(nil)

type clickhouseDriver struct {
	c *builders.Client
}

func (c *clickhouseDriver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	return c.c.QueryUntilNotEmpty(ctx, query)
}

func (c *clickhouseDriver) Close() {
	c.c.Close()
}
