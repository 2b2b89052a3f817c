package frontend

import (
	"strconv"
	"strings"
)

// Limit is a single named resource limit.
type Limit struct {
	Name  string
	Value int
}

// ResourceLimits is an ordered table of the implementation limits a shader
// is validated against. The zero value has no entries; use
// DefaultResourceLimits for the reference compiler defaults.
type ResourceLimits struct {
	entries []Limit
}

var defaultLimits = []Limit{
	{"MaxLights", 32},
	{"MaxClipPlanes", 6},
	{"MaxTextureUnits", 32},
	{"MaxTextureCoords", 32},
	{"MaxVertexAttribs", 64},
	{"MaxVertexUniformComponents", 4096},
	{"MaxVaryingFloats", 64},
	{"MaxVertexTextureImageUnits", 32},
	{"MaxCombinedTextureImageUnits", 80},
	{"MaxTextureImageUnits", 32},
	{"MaxFragmentUniformComponents", 4096},
	{"MaxDrawBuffers", 32},
	{"MaxVertexUniformVectors", 128},
	{"MaxVaryingVectors", 8},
	{"MaxFragmentUniformVectors", 16},
	{"MaxVertexOutputVectors", 16},
	{"MaxFragmentInputVectors", 15},
	{"MinProgramTexelOffset", -8},
	{"MaxProgramTexelOffset", 7},
	{"MaxClipDistances", 8},
	{"MaxComputeWorkGroupCountX", 65535},
	{"MaxComputeWorkGroupCountY", 65535},
	{"MaxComputeWorkGroupCountZ", 65535},
	{"MaxComputeWorkGroupSizeX", 1024},
	{"MaxComputeWorkGroupSizeY", 1024},
	{"MaxComputeWorkGroupSizeZ", 64},
	{"MaxComputeUniformComponents", 1024},
	{"MaxComputeTextureImageUnits", 16},
	{"MaxComputeImageUniforms", 8},
	{"MaxComputeAtomicCounters", 8},
	{"MaxComputeAtomicCounterBuffers", 1},
	{"MaxVaryingComponents", 60},
	{"MaxVertexOutputComponents", 64},
	{"MaxGeometryInputComponents", 64},
	{"MaxGeometryOutputComponents", 128},
	{"MaxFragmentInputComponents", 128},
	{"MaxImageUnits", 8},
	{"MaxCombinedImageUnitsAndFragmentOutputs", 8},
	{"MaxCombinedShaderOutputResources", 8},
	{"MaxImageSamples", 0},
	{"MaxVertexImageUniforms", 0},
	{"MaxTessControlImageUniforms", 0},
	{"MaxTessEvaluationImageUniforms", 0},
	{"MaxGeometryImageUniforms", 0},
	{"MaxFragmentImageUniforms", 8},
	{"MaxCombinedImageUniforms", 8},
	{"MaxGeometryTextureImageUnits", 16},
	{"MaxGeometryOutputVertices", 256},
	{"MaxGeometryTotalOutputComponents", 1024},
	{"MaxGeometryUniformComponents", 1024},
	{"MaxGeometryVaryingComponents", 64},
	{"MaxTessControlInputComponents", 128},
	{"MaxTessControlOutputComponents", 128},
	{"MaxTessControlTextureImageUnits", 16},
	{"MaxTessControlUniformComponents", 1024},
	{"MaxTessControlTotalOutputComponents", 4096},
	{"MaxTessEvaluationInputComponents", 128},
	{"MaxTessEvaluationOutputComponents", 128},
	{"MaxTessEvaluationTextureImageUnits", 16},
	{"MaxTessEvaluationUniformComponents", 1024},
	{"MaxTessPatchComponents", 120},
	{"MaxPatchVertices", 32},
	{"MaxTessGenLevel", 64},
	{"MaxViewports", 16},
	{"MaxVertexAtomicCounters", 0},
	{"MaxTessControlAtomicCounters", 0},
	{"MaxTessEvaluationAtomicCounters", 0},
	{"MaxGeometryAtomicCounters", 0},
	{"MaxFragmentAtomicCounters", 8},
	{"MaxCombinedAtomicCounters", 8},
	{"MaxAtomicCounterBindings", 1},
	{"MaxVertexAtomicCounterBuffers", 0},
	{"MaxTessControlAtomicCounterBuffers", 0},
	{"MaxTessEvaluationAtomicCounterBuffers", 0},
	{"MaxGeometryAtomicCounterBuffers", 0},
	{"MaxFragmentAtomicCounterBuffers", 1},
	{"MaxCombinedAtomicCounterBuffers", 1},
	{"MaxAtomicCounterBufferSize", 16384},
	{"MaxTransformFeedbackBuffers", 4},
	{"MaxTransformFeedbackInterleavedComponents", 64},
	{"MaxCullDistances", 8},
	{"MaxCombinedClipAndCullDistances", 8},
	{"MaxSamples", 4},
	{"MaxMeshOutputVerticesNV", 256},
	{"MaxMeshOutputPrimitivesNV", 512},
	{"MaxMeshWorkGroupSizeX_NV", 32},
	{"MaxMeshWorkGroupSizeY_NV", 1},
	{"MaxMeshWorkGroupSizeZ_NV", 1},
	{"MaxTaskWorkGroupSizeX_NV", 32},
	{"MaxTaskWorkGroupSizeY_NV", 1},
	{"MaxTaskWorkGroupSizeZ_NV", 1},
	{"MaxMeshViewCountNV", 4},

	// Language capability flags, 1 when allowed.
	{"nonInductiveForLoops", 1},
	{"whileLoops", 1},
	{"doWhileLoops", 1},
	{"generalUniformIndexing", 1},
	{"generalAttributeMatrixVectorIndexing", 1},
	{"generalVaryingIndexing", 1},
	{"generalSamplerIndexing", 1},
	{"generalVariableIndexing", 1},
	{"generalConstantMatrixVectorIndexing", 1},
}

// DefaultResourceLimits returns the reference compiler's default limits.
func DefaultResourceLimits() ResourceLimits {
	return ResourceLimits{entries: append([]Limit(nil), defaultLimits...)}
}

// Len returns the number of limits in the table.
func (r ResourceLimits) Len() int { return len(r.entries) }

// Limits returns a copy of the table in order.
func (r ResourceLimits) Limits() []Limit {
	return append([]Limit(nil), r.entries...)
}

// Get returns the value of the named limit.
func (r ResourceLimits) Get(name string) (int, bool) {
	for _, l := range r.entries {
		if l.Name == name {
			return l.Value, true
		}
	}
	return 0, false
}

// With returns a copy of r with the named limit set to value. Unknown names
// are appended to the end of the table.
func (r ResourceLimits) With(name string, value int) ResourceLimits {
	out := r.Limits()
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return ResourceLimits{entries: out}
		}
	}
	return ResourceLimits{entries: append(out, Limit{Name: name, Value: value})}
}

// Conf renders the table in the glslangValidator .conf format, one
// "name value" pair per line.
func (r ResourceLimits) Conf() string {
	var sb strings.Builder
	for _, l := range r.entries {
		sb.WriteString(l.Name)
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(l.Value))
		sb.WriteByte('\n')
	}
	return sb.String()
}
