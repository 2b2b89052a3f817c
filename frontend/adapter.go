package frontend

import "fmt"

// Request is a single-stage compile submitted to an Adapter.
type Request struct {
	Stage   Stage
	Source  string
	Dialect Dialect
	Limits  ResourceLimits
	Lower   LowerOptions
}

// Output is the outcome of a frontend compile.
type Output struct {
	// Valid is false when the source failed to parse or link. Log then
	// holds the toolchain's diagnostics and SPIRV is nil.
	Valid bool
	Log   string

	SPIRV       []uint32
	Disassembly string
}

// Adapter drives a Toolchain through parse, link and lower.
type Adapter struct {
	Toolchain Toolchain
}

// NewAdapter returns an adapter for tc.
func NewAdapter(tc Toolchain) *Adapter {
	return &Adapter{Toolchain: tc}
}

// Compile validates and lowers req inside a process scope. Parse and link
// failures are reported through Output; the error is reserved for failures
// of the toolchain itself.
func (a *Adapter) Compile(req Request) (*Output, error) {
	if !req.Stage.Valid() {
		return nil, fmt.Errorf("frontend: unknown stage %v", req.Stage)
	}

	release, err := Acquire(a.Toolchain)
	if err != nil {
		return nil, err
	}
	defer release()

	shader := &Shader{
		Stage:            req.Stage,
		Source:           req.Source,
		Dialect:          req.Dialect,
		Env:              DefaultEnvironment(),
		AutoMapLocations: true,
		AutoMapBindings:  true,
	}

	slogger().Debug("frontend: parse", "stage", req.Stage, "dialect", req.Dialect)
	unit, ok, err := a.Toolchain.Parse(shader, req.Limits)
	if err != nil {
		return nil, fmt.Errorf("frontend: parse: %w", err)
	}
	if !ok {
		return &Output{Log: unit.InfoLog()}, nil
	}

	program, ok, err := a.Toolchain.Link(unit)
	if err != nil {
		return nil, fmt.Errorf("frontend: link: %w", err)
	}
	if !ok {
		return &Output{Log: program.InfoLog()}, nil
	}

	lowered, err := a.Toolchain.Lower(program, req.Stage, req.Lower)
	if err != nil {
		return nil, fmt.Errorf("frontend: lower: %w", err)
	}
	slogger().Debug("frontend: lowered", "words", len(lowered.Words))

	return &Output{
		Valid:       true,
		Log:         lowered.Log,
		SPIRV:       lowered.Words,
		Disassembly: lowered.Disassembly,
	}, nil
}
