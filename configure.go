package shadercross

import (
	"fmt"

	"github.com/gogpu/shadercross/backend"
	"github.com/gogpu/shadercross/spirv"
)

// vertexSemantics are the HLSL semantics of vertex inputs, indexed by
// location.
var vertexSemantics = [...]string{
	"POSITION",
	"NORMAL",
	"TEXCOORD0",
	"TEXCOORD1",
	"TEXCOORD2",
	"TEXCOORD3",
	"TEXCOORD4",
	"TEXCOORD5",
	"TEXCOORD6",
	"TEXCOORD7",
	"COLOR0",
	"COLOR1",
	"COLOR2",
	"COLOR3",
	"TANGENT",
	"BINORMAL",
	"BLENDINDICES",
	"BLENDWEIGHT",
}

// configure applies the request's options to c and renames the entry point.
func configure(c backend.Compiler, in *Input, model spirv.ExecutionModel) error {
	opts := c.CommonOptions()
	opts.ES = in.Config.UseOpenGLES
	c.SetCommonOptions(opts)

	switch c.Family() {
	case backend.FamilyGLSL:
		opts := c.CommonOptions()
		opts.Enable420PackExtension = false
		c.SetCommonOptions(opts)

	case backend.FamilyHLSL:
		hc, ok := c.(backend.HLSLCompiler)
		if !ok {
			return newError(KindInternal, fmt.Sprintf("%T has no HLSL options", c), nil)
		}
		configureHLSL(hc, in, model)

	case backend.FamilyMSL:
		mc, ok := c.(backend.MSLCompiler)
		if !ok {
			return newError(KindInternal, fmt.Sprintf("%T has no MSL options", c), nil)
		}
		mopts := mc.MSLOptions()
		if in.Config.TargetIOS {
			mopts.Platform = backend.MSLPlatformIOS
		}
		mc.SetMSLOptions(mopts)
		if in.Stage == StageVertex {
			renumberInputs(c)
		}
		renameUniformBuffers(c)
	}

	return c.RenameEntryPoint("main", in.EntryPoint, model)
}

func configureHLSL(c backend.HLSLCompiler, in *Input, model spirv.ExecutionModel) {
	sm := backend.ShaderModel(in.Config.OutputVersion)
	switch {
	case !sm.Valid():
		slogger().Warn("shadercross: unknown shader model", "version", in.Config.OutputVersion)
	case model == spirv.ExecutionModelGLCompute && !sm.SupportsCompute():
		slogger().Warn("shadercross: shader model lacks compute shaders", "model", sm, "stage", in.Stage)
	case (model == spirv.ExecutionModelTaskNV || model == spirv.ExecutionModelMeshNV) && !sm.SupportsMeshShaders():
		slogger().Warn("shadercross: shader model lacks mesh shaders", "model", sm, "stage", in.Stage)
	case isRayTracing(model) && !sm.SupportsRayTracing():
		slogger().Warn("shadercross: shader model lacks ray tracing", "model", sm, "stage", in.Stage)
	}

	opts := c.HLSLOptions()
	opts.ShaderModel = sm
	opts.PointSizeCompat = true
	opts.PointCoordCompat = true
	c.SetHLSLOptions(opts)

	if id := c.RemapNumWorkgroupsBuiltin(); id != 0 {
		c.SetDecoration(id, spirv.DecorationDescriptorSet, 0)
		c.SetDecoration(id, spirv.DecorationBinding, 0)
	}

	for i, semantic := range vertexSemantics {
		c.AddVertexAttributeRemap(backend.VertexAttributeRemap{Location: uint32(i), Semantic: semantic})
	}
}

func isRayTracing(model spirv.ExecutionModel) bool {
	return model >= spirv.ExecutionModelRayGenerationNV && model <= spirv.ExecutionModelCallableNV
}

// renumberInputs gives the located stage inputs dense locations in
// declaration order.
func renumberInputs(c backend.Compiler) {
	for i, r := range c.Resources().StageInputs {
		if _, ok := c.Decoration(r.ID, spirv.DecorationLocation); ok {
			c.SetDecoration(r.ID, spirv.DecorationLocation, uint32(i))
		}
	}
}

// renameUniformBuffers names each uniform buffer after its block and
// suffixes the block type so the two do not collide in MSL.
func renameUniformBuffers(c backend.Compiler) {
	for _, r := range c.Resources().UniformBuffers {
		c.SetName(r.ID, r.Name)
		c.SetName(r.BaseTypeID, r.Name+"0")
	}
}
