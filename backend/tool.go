package backend

import (
	"bytes"
	"fmt"
	"os/exec"
)

// Runner executes the cross-compiler with args, feeding it a SPIR-V binary
// on stdin, and returns the generated source.
type Runner interface {
	Run(args []string, module []byte) ([]byte, error)
}

// Tool is the Runner backed by the spirv-cross executable.
type Tool struct {
	Bin string
}

// NewTool returns a runner for spirv-cross on PATH.
func NewTool() *Tool { return &Tool{Bin: "spirv-cross"} }

// Run runs the tool, reading the module from stdin.
func (t *Tool) Run(args []string, module []byte) ([]byte, error) {
	cmd := exec.Command(t.Bin, append(args, "-")...)
	cmd.Stdin = bytes.NewReader(module)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s\nfailed to run %v: %w", stderr.Bytes(), cmd.Args, err)
	}
	return out, nil
}
