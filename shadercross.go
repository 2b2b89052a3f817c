// Package shadercross cross-compiles GLSL and HLSL shaders to GLSL, HLSL,
// MSL or SPIR-V.
//
// Source is validated and lowered to SPIR-V by a frontend toolchain
// (glslangValidator by default). Conversions that target SPIR-V stop there.
// The others hand the module to a backend (spirv-cross by default), after
// renaming the entry point and applying the naming, binding and vertex
// attribute rules of the target API.
//
// Example:
//
//	in := shadercross.NewInput(source, "stageMain")
//	in.Stage = shadercross.StageFragment
//	in.ConversionType = shadercross.GLSLToMSL
//	res := shadercross.Compile(in)
//	if res.Failed() {
//	    log.Fatal(res.Err())
//	}
//	fmt.Println(res.OutputCode)
//
// Compile never panics. A shader the frontend rejects is reported through
// Result.Logs; toolchain and configuration failures through Result.Errors.
package shadercross

import (
	"errors"
	"fmt"

	"github.com/gogpu/shadercross/backend"
	"github.com/gogpu/shadercross/frontend"
)

// Compiler runs the cross-compilation pipeline.
type Compiler struct {
	// Frontend validates and lowers source to SPIR-V.
	Frontend frontend.Toolchain
	// Runner executes the cross-compiler.
	Runner backend.Runner
	// Limits are enforced by the frontend.
	Limits frontend.ResourceLimits
}

// NewCompiler returns a compiler driving glslangValidator and spirv-cross.
func NewCompiler() *Compiler {
	return &Compiler{
		Frontend: frontend.NewGlslang(),
		Runner:   backend.NewTool(),
		Limits:   frontend.DefaultResourceLimits(),
	}
}

// Compile runs in through a compiler returned by NewCompiler.
func Compile(in Input) Result {
	return NewCompiler().Compile(in)
}

// Compile runs the pipeline for in.
func (c *Compiler) Compile(in Input) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			slogger().Error("shadercross: panic", "panic", r)
			res.fail()
			if err, ok := r.(error); ok {
				res.Errors = err.Error()
			} else {
				res.Errors = "exception while compiling"
			}
		}
	}()

	if err := c.compile(&in, &res); err != nil {
		slogger().Debug("shadercross: failed", "stage", in.Stage, "conversion", in.ConversionType, "err", err)
		res.fail()
		res.Errors = err.Error()
	}
	return res
}

func (c *Compiler) compile(in *Input, res *Result) error {
	if err := in.validate(); err != nil {
		return err
	}
	stage, err := frontendStage(in.Stage)
	if err != nil {
		return err
	}
	model, err := executionModel(in.Stage)
	if err != nil {
		return err
	}
	dialect, err := sourceDialect(in.ConversionType)
	if err != nil {
		return err
	}
	if c.Frontend == nil {
		return newError(KindInternal, "no frontend toolchain", nil)
	}

	limits := c.Limits
	if limits.Len() == 0 {
		limits = frontend.DefaultResourceLimits()
	}

	slogger().Debug("shadercross: compile", "stage", in.Stage, "conversion", in.ConversionType, "entry", in.EntryPoint)
	out, err := frontend.NewAdapter(c.Frontend).Compile(frontend.Request{
		Stage:   stage,
		Source:  in.SourceCode,
		Dialect: dialect,
		Limits:  limits,
		Lower: frontend.LowerOptions{
			DisableOptimizer: !in.Config.Optimize,
			OptimizeSize:     in.Config.OptimizeSize,
			Disassemble:      in.Config.Disassemble,
			Validate:         in.Config.Validate,
		},
	})
	if err != nil {
		return newError(KindFrontend, "", err)
	}
	res.Logs = out.Log
	if !out.Valid {
		slogger().Debug("shadercross: rejected by frontend", "stage", in.Stage)
		return nil
	}
	res.Disassembly = out.Disassembly

	if isSPIRVTarget(in.ConversionType) || in.Config.IncludeSPIRV {
		res.SPIRV = out.SPIRV
	}
	if isSPIRVTarget(in.ConversionType) {
		res.Success = true
		return nil
	}

	family, err := targetFamily(in.ConversionType)
	if err != nil {
		return err
	}
	bc, err := backend.New(family, out.SPIRV, c.Runner)
	if err != nil {
		return newError(KindBackend, "", err)
	}
	if err := configure(bc, in, model); err != nil {
		var se *Error
		if errors.As(err, &se) {
			return err
		}
		return newError(KindBackend, "configure", err)
	}

	code, err := bc.Compile()
	if err != nil {
		return newError(KindBackend, "", err)
	}
	if code == "" {
		return newError(KindBackend, "empty output", errors.New("cross-compiler produced no code"))
	}

	res.OutputCode = code
	res.Success = true
	slogger().Debug("shadercross: compiled", "family", family, "bytes", len(code))
	return nil
}

// fail drops any artifact of a compile that did not finish.
func (r *Result) fail() {
	r.Success = false
	r.OutputCode = ""
	r.SPIRV = nil
}

// String returns a one-line summary of the result.
func (r Result) String() string {
	switch {
	case r.Success:
		return fmt.Sprintf("success (%d bytes of code, %d SPIR-V words)", len(r.OutputCode), len(r.SPIRV))
	case r.Errors != "":
		return "error: " + r.Errors
	default:
		return "rejected"
	}
}
