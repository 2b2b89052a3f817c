package backend

import (
	"strconv"

	"github.com/gogpu/shadercross/spirv"
)

type compiler struct {
	family Family
	module *spirv.Module
	runner Runner
	common CommonOptions

	// entry is set once the entry point has been renamed, so the
	// cross-compiler can be pointed at it.
	entry *spirv.EntryPoint
}

func (c *compiler) Family() Family                      { return c.family }
func (c *compiler) CommonOptions() CommonOptions        { return c.common }
func (c *compiler) SetCommonOptions(opts CommonOptions) { c.common = opts }
func (c *compiler) Resources() spirv.Resources          { return c.module.Resources() }
func (c *compiler) Name(id uint32) string               { return c.module.Name(id) }
func (c *compiler) SetName(id uint32, name string)      { c.module.SetName(id, name) }

func (c *compiler) Decoration(id uint32, dec spirv.Decoration) (uint32, bool) {
	return c.module.Decoration(id, dec)
}

func (c *compiler) SetDecoration(id uint32, dec spirv.Decoration, value uint32) {
	c.module.SetDecoration(id, dec, value)
}

func (c *compiler) RenameEntryPoint(from, to string, model spirv.ExecutionModel) error {
	if err := c.module.RenameEntryPoint(from, to, model); err != nil {
		return err
	}
	c.entry = &spirv.EntryPoint{Name: to, Model: model}
	return nil
}

func (c *compiler) Compile() (string, error) {
	return c.run(c.commonArgs())
}

func (c *compiler) run(args []string) (string, error) {
	args = append(args, c.entryArgs()...)
	slogger().Debug("backend: compile", "family", c.family, "args", args)
	out, err := c.runner.Run(args, c.module.Bytes())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (c *compiler) commonArgs() []string {
	args := []string{"--version", strconv.Itoa(c.common.Version)}
	if c.common.ES {
		args = append(args, "--es")
	} else {
		args = append(args, "--no-es")
	}
	if !c.common.Enable420PackExtension {
		args = append(args, "--no-420pack-extension")
	}
	if c.common.VulkanSemantics {
		args = append(args, "--vulkan-semantics")
	}
	return append(args, c.vertexArgs()...)
}

func (c *compiler) vertexArgs() []string {
	var args []string
	if c.common.FlipVertexY {
		args = append(args, "--flip-vert-y")
	}
	if c.common.FixupClipSpace {
		args = append(args, "--fixup-clipspace")
	}
	return args
}

func (c *compiler) entryArgs() []string {
	if c.entry == nil {
		return nil
	}
	stage, ok := stageNames[c.entry.Model]
	if !ok {
		return []string{"--entry", c.entry.Name}
	}
	return []string{"--entry", c.entry.Name, "--stage", stage}
}

// stageNames are the cross-compiler's names for execution models. Task and
// mesh are left out: the tool maps those names to the EXT models, which
// differ from the NV ones in the module, so only the entry name is passed.
var stageNames = map[spirv.ExecutionModel]string{
	spirv.ExecutionModelVertex:                 "vert",
	spirv.ExecutionModelTessellationControl:    "tesc",
	spirv.ExecutionModelTessellationEvaluation: "tese",
	spirv.ExecutionModelGeometry:               "geom",
	spirv.ExecutionModelFragment:               "frag",
	spirv.ExecutionModelGLCompute:              "comp",
	spirv.ExecutionModelRayGenerationNV:        "rgen",
	spirv.ExecutionModelIntersectionNV:         "rint",
	spirv.ExecutionModelAnyHitNV:               "rahit",
	spirv.ExecutionModelClosestHitNV:           "rchit",
	spirv.ExecutionModelMissNV:                 "rmiss",
	spirv.ExecutionModelCallableNV:             "rcall",
}

type hlslCompiler struct {
	*compiler
	hlsl   HLSLOptions
	remaps []VertexAttributeRemap
}

func (c *hlslCompiler) HLSLOptions() HLSLOptions        { return c.hlsl }
func (c *hlslCompiler) SetHLSLOptions(opts HLSLOptions) { c.hlsl = opts }

func (c *hlslCompiler) AddVertexAttributeRemap(remap VertexAttributeRemap) {
	c.remaps = append(c.remaps, remap)
}

// numWorkgroupsBlock names the constant buffer that replaces the builtin.
const numWorkgroupsBlock = "SPIRV_Cross_NumWorkgroups"

func (c *hlslCompiler) RemapNumWorkgroupsBuiltin() uint32 {
	return c.module.RemapBuiltinToUniform(spirv.BuiltInNumWorkgroups, numWorkgroupsBlock)
}

func (c *hlslCompiler) Compile() (string, error) {
	args := []string{"--hlsl", "--shader-model", strconv.Itoa(int(c.hlsl.ShaderModel))}
	if c.hlsl.PointSizeCompat || c.hlsl.PointCoordCompat {
		args = append(args, "--hlsl-enable-compat")
	}
	for _, r := range c.remaps {
		args = append(args, "--set-hlsl-vertex-input-semantic", strconv.FormatUint(uint64(r.Location), 10), r.Semantic)
	}
	return c.run(append(args, c.vertexArgs()...))
}

type mslCompiler struct {
	*compiler
	msl MSLOptions
}

func (c *mslCompiler) MSLOptions() MSLOptions        { return c.msl }
func (c *mslCompiler) SetMSLOptions(opts MSLOptions) { c.msl = opts }

func (c *mslCompiler) Compile() (string, error) {
	args := []string{"--msl", "--msl-version", strconv.Itoa(c.msl.Version)}
	if c.msl.Platform == MSLPlatformIOS {
		args = append(args, "--msl-ios")
	}
	return c.run(append(args, c.vertexArgs()...))
}
