package spirv_test

import (
	"strings"
	"testing"

	"github.com/gogpu/shadercross/internal/spirvtest"
	"github.com/gogpu/shadercross/spirv"
)

func TestDisassemble(t *testing.T) {
	fx := spirvtest.Vertex(spirvtest.GLSL450)
	text := spirv.Disassemble(fx.Module())

	for _, want := range []string{
		"; SPIR-V",
		"; Version: 1.0",
		"OpCapability Shader",
		`OpExtInstImport "GLSL.std.450"`,
		"OpMemoryModel Logical GLSL450",
		`OpEntryPoint Vertex`,
		`"main"`,
		"OpSource GLSL 450",
		`OpName`,
		`"Globals"`,
		"OpDecorate",
		"Location 3",
		"OpMemberDecorate",
		"BuiltIn Position",
		"OpTypePointer Uniform",
		"OpVariable",
		"OpFunctionEnd",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("disassembly missing %q", want)
		}
	}
}

func TestDisassemble_ComputeModes(t *testing.T) {
	text := spirv.Disassemble(spirvtest.Compute(spirvtest.GLSL450).Module())

	for _, want := range []string{
		"OpEntryPoint GLCompute",
		"LocalSize 8 8 1",
		"BuiltIn NumWorkgroups",
		"BufferBlock",
		"OpTypeRuntimeArray",
		"OpTypeImage",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("disassembly missing %q", want)
		}
	}
}

func TestDisassembleWords_Invalid(t *testing.T) {
	if _, err := spirv.DisassembleWords([]uint32{1, 2, 3}); err == nil {
		t.Error("expected error for malformed module")
	}
}

func TestStringers(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{spirv.ExecutionModelFragment.String(), "Fragment"},
		{spirv.ExecutionModelMeshNV.String(), "MeshNV"},
		{spirv.StorageClassPushConstant.String(), "PushConstant"},
		{spirv.DecorationDescriptorSet.String(), "DescriptorSet"},
		{spirv.BuiltInNumWorkgroups.String(), "NumWorkgroups"},
		{spirv.BuiltInFragCoord.String(), "FragCoord"},
		{spirv.OpEntryPoint.String(), "OpEntryPoint"},
		{spirv.OpCode(9999).String(), "Op9999"},
		{spirv.StorageClass(99).String(), "99"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
