package shadercross

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadercross/backend"
	"github.com/gogpu/shadercross/frontend"
	"github.com/gogpu/shadercross/spirv"
)

// ConversionType is a source dialect and target dialect pair.
type ConversionType uint8

// Conversions. The zero value is GLSL to GLSL.
const (
	GLSLToGLSL ConversionType = iota
	GLSLToMSL
	GLSLToHLSL
	GLSLToSPIRV
	HLSLToGLSL
	HLSLToMSL
	HLSLToHLSL
	HLSLToSPIRV
)

var conversionNames = [...]string{
	GLSLToGLSL:  "glsl2glsl",
	GLSLToMSL:   "glsl2msl",
	GLSLToHLSL:  "glsl2hlsl",
	GLSLToSPIRV: "glsl2spirv",
	HLSLToGLSL:  "hlsl2glsl",
	HLSLToMSL:   "hlsl2msl",
	HLSLToHLSL:  "hlsl2hlsl",
	HLSLToSPIRV: "hlsl2spirv",
}

func (c ConversionType) String() string {
	if c.Valid() {
		return conversionNames[c]
	}
	return fmt.Sprintf("ConversionType(%d)", c)
}

// Valid reports whether c is one of the eight conversions.
func (c ConversionType) Valid() bool { return int(c) < len(conversionNames) }

// ParseConversionType parses names such as "glsl2msl".
func ParseConversionType(s string) (ConversionType, error) {
	s = strings.ToLower(s)
	for i, name := range conversionNames {
		if name == s {
			return ConversionType(i), nil
		}
	}
	return 0, newError(KindUnsupportedConversion, fmt.Sprintf("unknown conversion %q", s), ErrUnsupportedConversion)
}

// ShaderStage is a pipeline stage.
type ShaderStage uint8

// Stages. The zero value is the vertex stage.
const (
	StageVertex ShaderStage = iota
	StageTessControl
	StageTessEvaluation
	StageGeometry
	StageFragment
	StageCompute
	StageRayGen
	StageIntersection
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
	StageIntersection:   "rint",
	StageAnyHit:         "rahit",
	StageClosestHit:     "rchit",
	StageMiss:           "rmiss",
	StageCallable:       "rcall",
	StageTask:           "task",
	StageMesh:           "mesh",
}

func (s ShaderStage) String() string {
	if s.Valid() {
		return stageNames[s]
	}
	return fmt.Sprintf("ShaderStage(%d)", s)
}

// Valid reports whether s is one of the fourteen stages.
func (s ShaderStage) Valid() bool { return int(s) < len(stageNames) }

// ParseShaderStage parses a stage name or file extension, such as "frag"
// or ".vert".
func ParseShaderStage(s string) (ShaderStage, error) {
	s = strings.TrimPrefix(strings.ToLower(s), ".")
	for i, name := range stageNames {
		if name == s {
			return ShaderStage(i), nil
		}
	}
	return 0, newError(KindUnsupportedStage, fmt.Sprintf("unknown stage %q", s), ErrUnsupportedStage)
}

// frontendStage maps a stage to the frontend's stage id.
func frontendStage(s ShaderStage) (frontend.Stage, error) {
	switch s {
	case StageVertex:
		return frontend.StageVertex, nil
	case StageTessControl:
		return frontend.StageTessControl, nil
	case StageTessEvaluation:
		return frontend.StageTessEvaluation, nil
	case StageGeometry:
		return frontend.StageGeometry, nil
	case StageFragment:
		return frontend.StageFragment, nil
	case StageCompute:
		return frontend.StageCompute, nil
	case StageRayGen:
		return frontend.StageRayGen, nil
	case StageIntersection:
		return frontend.StageIntersect, nil
	case StageAnyHit:
		return frontend.StageAnyHit, nil
	case StageClosestHit:
		return frontend.StageClosestHit, nil
	case StageMiss:
		return frontend.StageMiss, nil
	case StageCallable:
		return frontend.StageCallable, nil
	case StageTask:
		return frontend.StageTask, nil
	case StageMesh:
		return frontend.StageMesh, nil
	}
	return 0, unsupportedStage(s)
}

// executionModel maps a stage to the execution model of its entry point.
func executionModel(s ShaderStage) (spirv.ExecutionModel, error) {
	switch s {
	case StageVertex:
		return spirv.ExecutionModelVertex, nil
	case StageTessControl:
		return spirv.ExecutionModelTessellationControl, nil
	case StageTessEvaluation:
		return spirv.ExecutionModelTessellationEvaluation, nil
	case StageGeometry:
		return spirv.ExecutionModelGeometry, nil
	case StageFragment:
		return spirv.ExecutionModelFragment, nil
	case StageCompute:
		return spirv.ExecutionModelGLCompute, nil
	case StageRayGen:
		return spirv.ExecutionModelRayGenerationNV, nil
	case StageIntersection:
		return spirv.ExecutionModelIntersectionNV, nil
	case StageAnyHit:
		return spirv.ExecutionModelAnyHitNV, nil
	case StageClosestHit:
		return spirv.ExecutionModelClosestHitNV, nil
	case StageMiss:
		return spirv.ExecutionModelMissNV, nil
	case StageCallable:
		return spirv.ExecutionModelCallableNV, nil
	case StageTask:
		return spirv.ExecutionModelTaskNV, nil
	case StageMesh:
		return spirv.ExecutionModelMeshNV, nil
	}
	return 0, unsupportedStage(s)
}

func unsupportedStage(s ShaderStage) error {
	return newError(KindUnsupportedStage, s.String(), ErrUnsupportedStage)
}

func unsupportedConversion(c ConversionType) error {
	return newError(KindUnsupportedConversion, c.String(), ErrUnsupportedConversion)
}

// sourceDialect maps a conversion to the dialect of its source.
func sourceDialect(c ConversionType) (frontend.Dialect, error) {
	switch c {
	case GLSLToGLSL, GLSLToMSL, GLSLToHLSL, GLSLToSPIRV:
		return frontend.DialectGLSL, nil
	case HLSLToGLSL, HLSLToMSL, HLSLToHLSL, HLSLToSPIRV:
		return frontend.DialectHLSL, nil
	}
	return frontend.DialectNone, unsupportedConversion(c)
}

func isGLSLTarget(c ConversionType) bool  { return c == GLSLToGLSL || c == HLSLToGLSL }
func isHLSLTarget(c ConversionType) bool  { return c == GLSLToHLSL || c == HLSLToHLSL }
func isMSLTarget(c ConversionType) bool   { return c == GLSLToMSL || c == HLSLToMSL }
func isSPIRVTarget(c ConversionType) bool { return c == GLSLToSPIRV || c == HLSLToSPIRV }

// targetFamily selects the backend for a conversion that goes past SPIR-V.
func targetFamily(c ConversionType) (backend.Family, error) {
	switch {
	case isGLSLTarget(c):
		return backend.FamilyGLSL, nil
	case isHLSLTarget(c):
		return backend.FamilyHLSL, nil
	case isMSLTarget(c):
		return backend.FamilyMSL, nil
	}
	return 0, unsupportedConversion(c)
}
