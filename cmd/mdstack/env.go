package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-mdstack"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// NewPool builds the converter pool for a build. Tests swap it for a
	// mock to avoid goldmark and Chrome entirely.
	NewPool func(size int, opts ...mdstack.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newConverterPool,
	}
}
