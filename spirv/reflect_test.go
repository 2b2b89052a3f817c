package spirv_test

import (
	"strconv"
	"testing"

	"github.com/gogpu/shadercross/internal/spirvtest"
	"github.com/gogpu/shadercross/spirv"
)

func names(rs []spirv.Resource) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResources_Vertex(t *testing.T) {
	fx := spirvtest.Vertex(spirvtest.GLSL450)
	res := fx.Module().Resources()

	if len(res.UniformBuffers) != 1 {
		t.Fatalf("got %d uniform buffers, want 1", len(res.UniformBuffers))
	}
	ubo := res.UniformBuffers[0]
	// Buffer blocks are named after their block type, not the instance.
	if ubo.Name != "Globals" {
		t.Errorf("uniform buffer name = %q, want Globals", ubo.Name)
	}
	if ubo.ID != fx.IDs["globals"] {
		t.Errorf("uniform buffer id = %d, want %d", ubo.ID, fx.IDs["globals"])
	}
	if ubo.BaseTypeID != fx.IDs["Globals"] {
		t.Errorf("uniform buffer base type = %d, want %d", ubo.BaseTypeID, fx.IDs["Globals"])
	}

	if got, want := names(res.StageInputs), []string{"inPos", "inUV", "inColor"}; !equal(got, want) {
		t.Errorf("stage inputs = %v, want %v", got, want)
	}
	if got, want := names(res.StageOutputs), []string{"outUV"}; !equal(got, want) {
		t.Errorf("stage outputs = %v, want %v", got, want)
	}
	if len(res.BuiltinOutputs) != 1 || res.BuiltinOutputs[0].ID != fx.IDs["gl_PerVertex"] {
		t.Errorf("builtin outputs = %+v, want gl_PerVertex block", res.BuiltinOutputs)
	}
	if len(res.StorageBuffers) != 0 || len(res.SampledImages) != 0 {
		t.Errorf("unexpected resources: %+v", res)
	}
}

func TestResources_Fragment(t *testing.T) {
	res := spirvtest.Fragment(spirvtest.GLSL450).Module().Resources()

	tests := []struct {
		kind string
		got  []spirv.Resource
		want []string
	}{
		{"sampled images", res.SampledImages, []string{"tex"}},
		{"separate images", res.SeparateImages, []string{"albedo"}},
		{"separate samplers", res.SeparateSamplers, []string{"samp"}},
		{"stage inputs", res.StageInputs, []string{"inUV"}},
		{"stage outputs", res.StageOutputs, []string{"fragColor"}},
		{"uniform buffers", res.UniformBuffers, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			if got := names(tt.got); !equal(got, tt.want) {
				t.Errorf("%s = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestResources_Compute(t *testing.T) {
	fx := spirvtest.Compute(spirvtest.GLSL450)
	m := fx.Module()
	res := m.Resources()

	if got, want := names(res.StorageBuffers), []string{"Data", "Out"}; !equal(got, want) {
		t.Errorf("storage buffers = %v, want %v", got, want)
	}
	if got, want := names(res.StorageImages), []string{"dst"}; !equal(got, want) {
		t.Errorf("storage images = %v, want %v", got, want)
	}
	if got, want := names(res.BuiltinInputs), []string{"gl_NumWorkGroups"}; !equal(got, want) {
		t.Errorf("builtin inputs = %v, want %v", got, want)
	}

	id := m.BuiltinVariable(spirv.StorageClassInput, spirv.BuiltInNumWorkgroups)
	if id != fx.IDs["gl_NumWorkGroups"] {
		t.Errorf("BuiltinVariable = %d, want %d", id, fx.IDs["gl_NumWorkGroups"])
	}
	if id := m.BuiltinVariable(spirv.StorageClassInput, spirv.BuiltInVertexIndex); id != 0 {
		t.Errorf("BuiltinVariable(VertexIndex) = %d, want 0", id)
	}

	sc, ok := m.VariableStorageClass(fx.IDs["data"])
	if !ok || sc != spirv.StorageClassUniform {
		t.Errorf("VariableStorageClass = %v, %v; want Uniform", sc, ok)
	}
}

func TestResources_UnnamedBlock(t *testing.T) {
	b := spirv.NewModuleBuilder(spirv.Version1_0)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	float := b.AddTypeFloat(32)
	block := b.AddTypeStruct(float)
	b.AddDecorate(block, spirv.DecorationBlock)
	ptr := b.AddTypePointer(spirv.StorageClassPushConstant, block)
	v := b.AddVariable(ptr, spirv.StorageClassPushConstant)

	m, err := spirv.Parse(b.Words())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	res := m.Resources()
	if len(res.PushConstantBuffers) != 1 {
		t.Fatalf("got %d push constant buffers, want 1", len(res.PushConstantBuffers))
	}
	want := "_" + strconv.FormatUint(uint64(v), 10)
	if got := res.PushConstantBuffers[0].Name; got != want {
		t.Errorf("name = %q, want %q", got, want)
	}
}

func TestResources_ArrayOfBlocks(t *testing.T) {
	b := spirv.NewModuleBuilder(spirv.Version1_0)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	float := b.AddTypeFloat(32)
	vec4 := b.AddTypeVector(float, 4)
	u32 := b.AddTypeInt(32, false)
	four := b.AddConstant(u32, 4)

	light := b.AddTypeStruct(vec4)
	b.AddName(light, "Light")
	b.AddDecorate(light, spirv.DecorationBlock)
	lights := b.AddTypeArray(light, four)
	ptr := b.AddTypePointer(spirv.StorageClassUniform, lights)
	v := b.AddVariable(ptr, spirv.StorageClassUniform)
	b.AddName(v, "lights")

	m, err := spirv.Parse(b.Words())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ubos := m.Resources().UniformBuffers
	if len(ubos) != 1 {
		t.Fatalf("got %d uniform buffers, want 1", len(ubos))
	}
	if ubos[0].TypeID != lights || ubos[0].BaseTypeID != light {
		t.Errorf("type ids = %d/%d, want %d/%d", ubos[0].TypeID, ubos[0].BaseTypeID, lights, light)
	}
	if ubos[0].Name != "Light" {
		t.Errorf("name = %q, want Light", ubos[0].Name)
	}
}

func TestImageDim(t *testing.T) {
	fx := spirvtest.Fragment(spirvtest.GLSL450)
	m := fx.Module()
	res := m.Resources()

	for _, r := range append(res.SampledImages, res.SeparateImages...) {
		if dim, ok := m.ImageDim(r.BaseTypeID); !ok || dim != spirv.Dim2D {
			t.Errorf("%s: ImageDim = %v, %v; want 2D", r.Name, dim, ok)
		}
	}
	if _, ok := m.ImageDim(res.SeparateSamplers[0].BaseTypeID); ok {
		t.Error("ImageDim accepted a sampler type")
	}
}

func TestNonWritable(t *testing.T) {
	fx := spirvtest.Compute(spirvtest.GLSL450)
	m := fx.Module()
	ssbos := m.Resources().StorageBuffers
	if len(ssbos) != 2 {
		t.Fatalf("got %d storage buffers, want 2", len(ssbos))
	}
	if !m.NonWritable(ssbos[0]) {
		t.Errorf("%s: every member is NonWritable", ssbos[0].Name)
	}
	if m.NonWritable(ssbos[1]) {
		t.Errorf("%s: reported read-only", ssbos[1].Name)
	}

	m.SetDecoration(ssbos[1].ID, spirv.DecorationNonWritable)
	if !m.NonWritable(ssbos[1]) {
		t.Errorf("%s: NonWritable variable not reported read-only", ssbos[1].Name)
	}
}

func TestResources_AccelerationStructure(t *testing.T) {
	b := spirv.NewModuleBuilder(spirv.Version1_4)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	accel := b.AddTypeAccelerationStructure()
	ptr := b.AddTypePointer(spirv.StorageClassUniformConstant, accel)
	v := b.AddVariable(ptr, spirv.StorageClassUniformConstant)
	b.AddName(v, "topLevel")

	m, err := spirv.Parse(b.Words())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := m.Resources().AccelerationStructures
	if len(got) != 1 || got[0].ID != v || got[0].BaseTypeID != accel {
		t.Fatalf("AccelerationStructures = %+v, want the variable %d", got, v)
	}
	if got[0].Name != "topLevel" {
		t.Errorf("name = %q, want topLevel", got[0].Name)
	}
}
