package parser

import (
	"io"

	"github.com/sergev/rlang/ast"
)

// ParseReader consumes rl source from an io.Reader and parses it.
func ParseReader(name string, r io.Reader) (*ast.Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(name, string(data))
}
