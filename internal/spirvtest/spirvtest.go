// Package spirvtest builds small SPIR-V modules shaped like glslang output.
// They are used as fixtures by tests across the module.
package spirvtest

import (
	"strconv"

	"github.com/gogpu/shadercross/spirv"
)

// Fixture is a built module plus the ids of its named declarations.
type Fixture struct {
	Words []uint32
	IDs   map[string]uint32
}

// Module parses the fixture words. It panics on malformed fixtures.
func (f Fixture) Module() *spirv.Module {
	m, err := spirv.Parse(f.Words)
	if err != nil {
		panic(err)
	}
	return m
}

// Source selects the OpSource recorded by a fixture.
type Source struct {
	Language spirv.SourceLanguage
	Version  uint32
}

// GLSL450 is the default source of every fixture.
var GLSL450 = Source{Language: spirv.SourceLanguageGLSL, Version: 450}

type builder struct {
	b        *spirv.ModuleBuilder
	ids      map[string]uint32
	pointers map[[2]uint32]uint32

	void, float, vec4, vec2 uint32

	// copy, when set, makes main load copy[0] and store it to copy[1].
	copy [2]uint32
	// body, when set, emits extra statements at the start of main.
	body func(b *spirv.ModuleBuilder)
}

func newBuilder(src Source) *builder {
	b := spirv.NewModuleBuilder(spirv.Version1_0)
	b.AddCapability(spirv.CapabilityShader)
	b.AddExtInstImport("GLSL.std.450")
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	b.AddSource(src.Language, src.Version)

	tb := &builder{b: b, ids: make(map[string]uint32), pointers: make(map[[2]uint32]uint32)}
	tb.void = b.AddTypeVoid()
	tb.float = b.AddTypeFloat(32)
	tb.vec2 = b.AddTypeVector(tb.float, 2)
	tb.vec4 = b.AddTypeVector(tb.float, 4)
	return tb
}

func (tb *builder) pointer(sc spirv.StorageClass, typ uint32) uint32 {
	key := [2]uint32{uint32(sc), typ}
	ptr, ok := tb.pointers[key]
	if !ok {
		ptr = tb.b.AddTypePointer(sc, typ)
		tb.pointers[key] = ptr
	}
	return ptr
}

func (tb *builder) variable(name string, typ uint32, sc spirv.StorageClass) uint32 {
	id := tb.b.AddVariable(tb.pointer(sc, typ), sc)
	if name != "" {
		tb.b.AddName(id, name)
		tb.ids[name] = id
	}
	return id
}

func (tb *builder) block(name string, dec spirv.Decoration, members ...uint32) uint32 {
	id := tb.b.AddTypeStruct(members...)
	tb.b.AddName(id, name)
	tb.b.AddDecorate(id, dec)
	for i := range members {
		tb.b.AddMemberName(id, uint32(i), "m"+strconv.Itoa(i))
		tb.b.AddMemberDecorate(id, uint32(i), spirv.DecorationOffset, uint32(i*16))
	}
	tb.ids[name] = id
	return id
}

func (tb *builder) finish(model spirv.ExecutionModel, interfaces []uint32) Fixture {
	funcType := tb.b.AddTypeFunction(tb.void)
	fn := tb.b.AddFunction(funcType, tb.void, spirv.FunctionControlNone)
	tb.b.AddName(fn, "main")
	tb.b.AddLabel()
	if tb.body != nil {
		tb.body(tb.b)
	}
	if tb.copy[0] != 0 {
		v := tb.b.AddLoad(tb.vec2, tb.copy[0])
		tb.b.AddStore(tb.copy[1], v)
	}
	tb.b.AddReturn()
	tb.b.AddFunctionEnd()
	tb.b.AddEntryPoint(model, fn, "main", interfaces)
	switch model {
	case spirv.ExecutionModelFragment:
		tb.b.AddExecutionMode(fn, spirv.ExecutionModeOriginUpperLeft)
	case spirv.ExecutionModelGLCompute:
		tb.b.AddExecutionMode(fn, spirv.ExecutionModeLocalSize, 8, 8, 1)
	}
	tb.ids["main"] = fn
	return Fixture{Words: tb.b.Words(), IDs: tb.ids}
}

// Vertex builds a vertex shader with a uniform block named Globals
// (instance "globals", set 0 binding 0), stage inputs inPos, inUV and
// inColor at locations 3, 7 and 9, one stage output at location 0 and a
// gl_Position builtin output.
func Vertex(src Source) Fixture {
	tb := newBuilder(src)

	globals := tb.block("Globals", spirv.DecorationBlock, tb.vec4)
	ubo := tb.variable("globals", globals, spirv.StorageClassUniform)
	tb.b.AddDecorate(ubo, spirv.DecorationDescriptorSet, 0)
	tb.b.AddDecorate(ubo, spirv.DecorationBinding, 0)

	inPos := tb.variable("inPos", tb.vec4, spirv.StorageClassInput)
	tb.b.AddDecorate(inPos, spirv.DecorationLocation, 3)
	inUV := tb.variable("inUV", tb.vec2, spirv.StorageClassInput)
	tb.b.AddDecorate(inUV, spirv.DecorationLocation, 7)
	inColor := tb.variable("inColor", tb.vec4, spirv.StorageClassInput)
	tb.b.AddDecorate(inColor, spirv.DecorationLocation, 9)

	outUV := tb.variable("outUV", tb.vec2, spirv.StorageClassOutput)
	tb.b.AddDecorate(outUV, spirv.DecorationLocation, 0)

	tb.copy = [2]uint32{inUV, outUV}

	perVertex := tb.b.AddTypeStruct(tb.vec4)
	tb.b.AddName(perVertex, "gl_PerVertex")
	tb.b.AddMemberDecorate(perVertex, 0, spirv.DecorationBuiltIn, uint32(spirv.BuiltInPosition))
	tb.b.AddDecorate(perVertex, spirv.DecorationBlock)
	out := tb.variable("", perVertex, spirv.StorageClassOutput)
	tb.ids["gl_PerVertex"] = out

	return tb.finish(spirv.ExecutionModelVertex, []uint32{inPos, inUV, inColor, outUV, out})
}

// Fragment builds a fragment shader with a combined image sampler "tex"
// (set 0 binding 1), a separate image, a separate sampler, one input and a
// color output at location 0.
func Fragment(src Source) Fixture {
	tb := newBuilder(src)

	image := tb.b.AddTypeImage(tb.float, spirv.Dim2D, 0, 0, 0, 1)
	sampled := tb.b.AddTypeSampledImage(image)
	tex := tb.variable("tex", sampled, spirv.StorageClassUniformConstant)
	tb.b.AddDecorate(tex, spirv.DecorationDescriptorSet, 0)
	tb.b.AddDecorate(tex, spirv.DecorationBinding, 1)

	sepImage := tb.variable("albedo", image, spirv.StorageClassUniformConstant)
	tb.b.AddDecorate(sepImage, spirv.DecorationDescriptorSet, 1)
	tb.b.AddDecorate(sepImage, spirv.DecorationBinding, 0)

	sampler := tb.b.AddTypeSampler()
	samp := tb.variable("samp", sampler, spirv.StorageClassUniformConstant)
	tb.b.AddDecorate(samp, spirv.DecorationDescriptorSet, 1)
	tb.b.AddDecorate(samp, spirv.DecorationBinding, 1)

	inUV := tb.variable("inUV", tb.vec2, spirv.StorageClassInput)
	tb.b.AddDecorate(inUV, spirv.DecorationLocation, 0)
	fragColor := tb.variable("fragColor", tb.vec4, spirv.StorageClassOutput)
	tb.b.AddDecorate(fragColor, spirv.DecorationLocation, 0)

	return tb.finish(spirv.ExecutionModelFragment, []uint32{inUV, fragColor})
}

// Compute builds a compute shader whose main loads gl_NumWorkGroups whole
// and through an access chain to .x ("numGroupsX"), with a
// read-only storage buffer Data (set 0 binding 0), a writable storage
// buffer Out (set 0 binding 2) and a storage image "dst" (set 0 binding 1).
func Compute(src Source) Fixture {
	tb := newBuilder(src)

	u32 := tb.b.AddTypeInt(32, false)
	uvec3 := tb.b.AddTypeVector(u32, 3)
	numGroups := tb.variable("gl_NumWorkGroups", uvec3, spirv.StorageClassInput)
	tb.b.AddDecorate(numGroups, spirv.DecorationBuiltIn, uint32(spirv.BuiltInNumWorkgroups))
	inputU32 := tb.pointer(spirv.StorageClassInput, u32)
	zero := tb.b.AddConstant(u32, 0)
	tb.body = func(b *spirv.ModuleBuilder) {
		b.AddLoad(uvec3, numGroups)
		tb.ids["numGroupsX"] = b.AddAccessChain(inputU32, numGroups, zero)
		b.AddLoad(u32, tb.ids["numGroupsX"])
	}

	values := tb.b.AddTypeRuntimeArray(tb.float)
	tb.b.AddDecorate(values, spirv.DecorationArrayStride, 4)
	data := tb.block("Data", spirv.DecorationBufferBlock, values)
	tb.b.AddMemberDecorate(data, 0, spirv.DecorationNonWritable)
	ssbo := tb.variable("data", data, spirv.StorageClassUniform)
	tb.b.AddDecorate(ssbo, spirv.DecorationDescriptorSet, 0)
	tb.b.AddDecorate(ssbo, spirv.DecorationBinding, 0)

	outValues := tb.b.AddTypeRuntimeArray(tb.float)
	tb.b.AddDecorate(outValues, spirv.DecorationArrayStride, 4)
	outBlock := tb.block("Out", spirv.DecorationBufferBlock, outValues)
	out := tb.variable("results", outBlock, spirv.StorageClassUniform)
	tb.b.AddDecorate(out, spirv.DecorationDescriptorSet, 0)
	tb.b.AddDecorate(out, spirv.DecorationBinding, 2)

	image := tb.b.AddTypeImage(tb.float, spirv.Dim2D, 0, 0, 0, 2)
	dst := tb.variable("dst", image, spirv.StorageClassUniformConstant)
	tb.b.AddDecorate(dst, spirv.DecorationDescriptorSet, 0)
	tb.b.AddDecorate(dst, spirv.DecorationBinding, 1)

	return tb.finish(spirv.ExecutionModelGLCompute, []uint32{numGroups})
}
