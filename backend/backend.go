// Package backend cross-compiles SPIR-V modules to GLSL, HLSL and MSL.
//
// A Compiler wraps one SPIR-V module. Callers inspect its resources, edit
// names, decorations and entry points in place, adjust the per-family
// options and finally call Compile, which hands the edited module to a
// Runner. Tool is the Runner backed by the spirv-cross executable.
//
// Every family implements Compiler. The HLSL and MSL compilers also
// implement HLSLCompiler and MSLCompiler for the options only they have:
//
//	c, err := backend.New(backend.FamilyHLSL, words, backend.NewTool())
//	if err != nil {
//		return err
//	}
//	hc := c.(backend.HLSLCompiler)
//	opts := hc.HLSLOptions()
//	opts.ShaderModel = backend.ShaderModel5_0
//	hc.SetHLSLOptions(opts)
//	code, err := c.Compile()
package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/shadercross/spirv"
)

// ErrUnknownFamily is returned by New for a family outside the closed set.
var ErrUnknownFamily = errors.New("backend: unknown target family")

// Family is the target language of a Compiler.
type Family uint8

// Target families.
const (
	FamilyGLSL Family = iota
	FamilyHLSL
	FamilyMSL
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyGLSL:
		return "GLSL"
	case FamilyHLSL:
		return "HLSL"
	case FamilyMSL:
		return "MSL"
	default:
		return fmt.Sprintf("Family(%d)", f)
	}
}

// CommonOptions are shared by every family.
type CommonOptions struct {
	// Version is the GLSL version of the output, such as 450 or 310.
	Version int
	// ES selects GLSL ES output.
	ES bool
	// Enable420PackExtension allows GL_ARB_shading_language_420pack
	// binding qualifiers in GLSL output older than 420.
	Enable420PackExtension bool
	// VulkanSemantics emits GLSL for Vulkan instead of OpenGL.
	VulkanSemantics bool
	// FlipVertexY inverts gl_Position.y in vertex shaders.
	FlipVertexY bool
	// FixupClipSpace converts clip space depth from [0, w] to [-w, w].
	FixupClipSpace bool
}

// HLSLOptions are specific to the HLSL family.
type HLSLOptions struct {
	ShaderModel ShaderModel
	// PointSizeCompat ignores writes to gl_PointSize instead of failing.
	PointSizeCompat bool
	// PointCoordCompat replaces gl_PointCoord with a constant instead of failing.
	PointCoordCompat bool
}

// MSLPlatform is the Apple platform an MSL shader targets.
type MSLPlatform uint8

// MSL platforms.
const (
	MSLPlatformMacOS MSLPlatform = iota
	MSLPlatformIOS
)

// MSLOptions are specific to the MSL family.
type MSLOptions struct {
	Platform MSLPlatform
	// Version is the Metal Shading Language version as
	// major*10000 + minor*100, so 20100 is MSL 2.1.
	Version int
}

// VertexAttributeRemap binds a vertex input location to an HLSL semantic.
type VertexAttributeRemap struct {
	Location uint32
	Semantic string
}

// Compiler is a cross-compiler bound to a single SPIR-V module.
type Compiler interface {
	Family() Family

	CommonOptions() CommonOptions
	SetCommonOptions(opts CommonOptions)

	Resources() spirv.Resources
	Decoration(id uint32, dec spirv.Decoration) (uint32, bool)
	SetDecoration(id uint32, dec spirv.Decoration, value uint32)
	Name(id uint32) string
	SetName(id uint32, name string)

	// RenameEntryPoint renames the entry point called from that uses
	// the given execution model.
	RenameEntryPoint(from, to string, model spirv.ExecutionModel) error

	// Compile emits the target source for the edited module.
	Compile() (string, error)
}

// HLSLCompiler is a Compiler for the HLSL family.
type HLSLCompiler interface {
	Compiler

	HLSLOptions() HLSLOptions
	SetHLSLOptions(opts HLSLOptions)

	// RemapNumWorkgroupsBuiltin moves the reads of the workgroup count
	// builtin, which HLSL lacks, into a new uniform block and returns the
	// block variable, or 0 when the module does not read the builtin. The
	// caller binds the block with SetDecoration.
	RemapNumWorkgroupsBuiltin() uint32

	AddVertexAttributeRemap(remap VertexAttributeRemap)
}

// MSLCompiler is a Compiler for the MSL family.
type MSLCompiler interface {
	Compiler

	MSLOptions() MSLOptions
	SetMSLOptions(opts MSLOptions)
}

// New returns the compiler for family, bound to the module in words.
func New(family Family, words []uint32, runner Runner) (Compiler, error) {
	m, err := spirv.Parse(words)
	if err != nil {
		return nil, err
	}
	if runner == nil {
		runner = NewTool()
	}

	base := &compiler{
		family: family,
		module: m,
		runner: runner,
		common: defaultCommonOptions(m),
	}

	switch family {
	case FamilyGLSL:
		return base, nil
	case FamilyHLSL:
		return &hlslCompiler{
			compiler: base,
			hlsl:     HLSLOptions{ShaderModel: ShaderModel3_0},
		}, nil
	case FamilyMSL:
		return &mslCompiler{
			compiler: base,
			msl:      MSLOptions{Platform: MSLPlatformMacOS, Version: 10200},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFamily, family)
	}
}

// defaultCommonOptions derives the defaults from the module's OpSource.
func defaultCommonOptions(m *spirv.Module) CommonOptions {
	opts := CommonOptions{Version: 450, Enable420PackExtension: true}

	lang, version, ok := m.Source()
	if !ok {
		slogger().Warn("backend: module has no OpSource, assuming GLSL 450")
		return opts
	}
	switch lang {
	case spirv.SourceLanguageESSL:
		opts.ES = true
		opts.Version = int(version)
	case spirv.SourceLanguageGLSL:
		opts.Version = int(version)
	}
	return opts
}
