package shadercross

import (
	"errors"
	"strings"
)

// Config holds the per-request compile flags.
type Config struct {
	// IncludeSPIRV keeps the SPIR-V module in the Result even when the
	// conversion targets a text dialect.
	IncludeSPIRV bool
	Optimize     bool
	OptimizeSize bool
	Disassemble  bool
	Validate     bool

	// OutputVersion is the target dialect version. For HLSL it is the
	// shader model in major*10+minor form.
	OutputVersion int
	UseOpenGLES   bool
	// TargetIOS selects the iOS flavor of MSL output.
	TargetIOS bool
}

// DefaultConfig returns the flags used when a request sets none.
func DefaultConfig() Config {
	return Config{
		Optimize:      true,
		Validate:      true,
		OutputVersion: 350,
	}
}

// Input is a single compile request.
type Input struct {
	SourceCode string
	// EntryPoint replaces the name of the module's "main" entry point.
	EntryPoint     string
	Stage          ShaderStage
	ConversionType ConversionType
	Config         Config
}

// NewInput returns a GLSL to GLSL vertex request with the default config.
func NewInput(source, entryPoint string) Input {
	return Input{
		SourceCode: source,
		EntryPoint: entryPoint,
		Config:     DefaultConfig(),
	}
}

func (in *Input) validate() error {
	switch {
	case strings.TrimSpace(in.SourceCode) == "":
		return newError(KindInvalidInput, "empty source code", ErrInvalidInput)
	case in.EntryPoint == "":
		return newError(KindInvalidInput, "empty entry point", ErrInvalidInput)
	case !in.Stage.Valid():
		return unsupportedStage(in.Stage)
	case !in.ConversionType.Valid():
		return unsupportedConversion(in.ConversionType)
	}
	return nil
}

// Result is the outcome of one compile.
//
// A compile either succeeds, or fails with Errors set for a fatal failure,
// or fails with only Logs set when the source was rejected.
type Result struct {
	Success bool
	// Logs holds the toolchain's diagnostics. They are kept on success.
	Logs string
	// Errors holds the text of a fatal failure.
	Errors string

	OutputCode  string
	SPIRV       []uint32
	Disassembly string
}

// Failed reports whether the compile did not succeed.
func (r Result) Failed() bool { return !r.Success }

// Err returns nil on success, otherwise an error carrying the fatal error
// or the diagnostics.
func (r Result) Err() error {
	switch {
	case r.Success:
		return nil
	case r.Errors != "":
		return errors.New(r.Errors)
	case r.Logs != "":
		return errors.New(strings.TrimSpace(r.Logs))
	default:
		return errors.New("shadercross: compile failed")
	}
}
