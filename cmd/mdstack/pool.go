package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdstack"
)

// CLIConverter is the part of mdstack.Converter the CLI uses.
type CLIConverter interface {
	Convert(ctx context.Context, input mdstack.Input) (*mdstack.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*mdstack.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// poolAdapter exposes *mdstack.ConverterPool as a Pool.
type poolAdapter struct {
	pool *mdstack.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func newConverterPool(size int, opts ...mdstack.Option) Pool {
	return &poolAdapter{pool: mdstack.NewConverterPool(size, opts...)}
}

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics when c did not come from this pool: that is a programming
// error, not a runtime condition.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*mdstack.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
