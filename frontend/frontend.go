// Package frontend turns GLSL or HLSL source into a SPIR-V module.
//
// The work is delegated to a Toolchain, the collaborator that parses,
// validates, links and lowers a single shader stage. Glslang is the
// implementation backed by the Khronos reference compiler. Adapter drives a
// Toolchain through the fixed parse, link and lower sequence and reports
// the outcome as an Output.
//
// Toolchains are not safe for concurrent use. Every compile runs inside a
// process scope obtained from Acquire, which serializes compiles across the
// whole process.
package frontend

import "fmt"

// Stage identifies the shader stage a source is compiled for.
type Stage uint8

// Stages understood by the toolchain.
const (
	StageVertex Stage = iota
	StageTessControl
	StageTessEvaluation
	StageGeometry
	StageFragment
	StageCompute
	StageRayGen
	StageIntersect
	StageAnyHit
	StageClosestHit
	StageMiss
	StageCallable
	StageTask
	StageMesh
)

var stageNames = [...]string{
	StageVertex:         "vert",
	StageTessControl:    "tesc",
	StageTessEvaluation: "tese",
	StageGeometry:       "geom",
	StageFragment:       "frag",
	StageCompute:        "comp",
	StageRayGen:         "rgen",
	StageIntersect:      "rint",
	StageAnyHit:         "rahit",
	StageClosestHit:     "rchit",
	StageMiss:           "rmiss",
	StageCallable:       "rcall",
	StageTask:           "task",
	StageMesh:           "mesh",
}

// String returns the stage name used by glslangValidator's -S option.
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", s)
}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	return int(s) < len(stageNames)
}

// Dialect is the source language of a shader.
type Dialect uint8

// Source dialects.
const (
	DialectNone Dialect = iota
	DialectGLSL
	DialectHLSL
)

func (d Dialect) String() string {
	switch d {
	case DialectGLSL:
		return "GLSL"
	case DialectHLSL:
		return "HLSL"
	default:
		return "none"
	}
}

// Client is the API whose rules the source is checked against.
type Client uint8

// Clients.
const (
	ClientVulkan Client = iota
)

// Environment describes the input and target environment of a compile.
type Environment struct {
	Client Client
	// ClientVersion is the Vulkan version, encoded as major*100+minor*10.
	ClientVersion int
	// TargetVersion is the SPIR-V version of the lowered module.
	TargetVersion int
	// DialectVersion is the client input semantics version.
	DialectVersion int
}

// DefaultEnvironment returns the environment every shader is compiled in:
// Vulkan semantics 100, Vulkan 1.1 rules and SPIR-V 1.0 output.
func DefaultEnvironment() Environment {
	return Environment{
		Client:         ClientVulkan,
		ClientVersion:  110,
		TargetVersion:  100,
		DialectVersion: 100,
	}
}

// Shader is one stage of source submitted to a Toolchain.
type Shader struct {
	Stage   Stage
	Source  string
	Dialect Dialect
	Env     Environment

	// AutoMapLocations assigns locations to stage inputs and outputs that
	// do not declare one.
	AutoMapLocations bool
	// AutoMapBindings assigns bindings to resources that do not declare one.
	AutoMapBindings bool
}

// LowerOptions controls SPIR-V generation.
type LowerOptions struct {
	DisableOptimizer bool
	OptimizeSize     bool
	Disassemble      bool
	Validate         bool
}

// Unit is a parsed shader.
type Unit interface {
	InfoLog() string
}

// Program is a linked set of units.
type Program interface {
	InfoLog() string
}

// Lowered is the result of lowering a program to SPIR-V.
type Lowered struct {
	Words       []uint32
	Log         string
	Disassembly string
}

// Toolchain is the compiler collaborator.
//
// Parse and Link report the validation verdict through their bool result.
// A false verdict is not an error: the diagnostics are available from the
// InfoLog of the returned Unit or Program. The error result is reserved for
// failures to run the toolchain at all.
type Toolchain interface {
	Initialize() error
	Finalize()
	Parse(shader *Shader, limits ResourceLimits) (Unit, bool, error)
	Link(unit Unit) (Program, bool, error)
	Lower(program Program, stage Stage, opts LowerOptions) (*Lowered, error)
}
