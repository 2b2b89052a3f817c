package spirv

import "fmt"

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions
var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_4 = Version{1, 4}
	Version1_5 = Version{1, 5}
	Version1_6 = Version{1, 6}
)

// String returns the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// word converts v to the header word format.
func (v Version) word() uint32 {
	return (uint32(v.Major) << 16) | (uint32(v.Minor) << 8)
}

func versionFromWord(w uint32) Version {
	return Version{Major: uint8(w >> 16), Minor: uint8(w >> 8)}
}

// SPIR-V magic number and constants
const (
	MagicNumber = 0x07230203
	GeneratorID = 0x00000000 // Unregistered generator

	// HeaderWords is the number of words before the first instruction.
	HeaderWords = 5
)

// OpCode represents a SPIR-V opcode.
type OpCode uint16

// Opcodes used by the pipeline.
const (
	OpNop                          OpCode = 0
	OpUndef                        OpCode = 1
	OpSourceContinued              OpCode = 2
	OpSource                       OpCode = 3
	OpSourceExtension              OpCode = 4
	OpName                         OpCode = 5
	OpMemberName                   OpCode = 6
	OpString                       OpCode = 7
	OpLine                         OpCode = 8
	OpExtension                    OpCode = 10
	OpExtInstImport                OpCode = 11
	OpExtInst                      OpCode = 12
	OpMemoryModel                  OpCode = 14
	OpEntryPoint                   OpCode = 15
	OpExecutionMode                OpCode = 16
	OpCapability                   OpCode = 17
	OpTypeVoid                     OpCode = 19
	OpTypeBool                     OpCode = 20
	OpTypeInt                      OpCode = 21
	OpTypeFloat                    OpCode = 22
	OpTypeVector                   OpCode = 23
	OpTypeMatrix                   OpCode = 24
	OpTypeImage                    OpCode = 25
	OpTypeSampler                  OpCode = 26
	OpTypeSampledImage             OpCode = 27
	OpTypeArray                    OpCode = 28
	OpTypeRuntimeArray             OpCode = 29
	OpTypeStruct                   OpCode = 30
	OpTypePointer                  OpCode = 32
	OpTypeFunction                 OpCode = 33
	OpConstantTrue                 OpCode = 41
	OpConstantFalse                OpCode = 42
	OpConstant                     OpCode = 43
	OpConstantComposite            OpCode = 44
	OpConstantNull                 OpCode = 46
	OpSpecConstantTrue             OpCode = 48
	OpSpecConstantFalse            OpCode = 49
	OpSpecConstant                 OpCode = 50
	OpSpecConstantComposite        OpCode = 51
	OpSpecConstantOp               OpCode = 52
	OpFunction                     OpCode = 54
	OpFunctionParameter            OpCode = 55
	OpFunctionEnd                  OpCode = 56
	OpFunctionCall                 OpCode = 57
	OpVariable                     OpCode = 59
	OpLoad                         OpCode = 61
	OpStore                        OpCode = 62
	OpAccessChain                  OpCode = 65
	OpInBoundsAccessChain          OpCode = 66
	OpDecorate                     OpCode = 71
	OpMemberDecorate               OpCode = 72
	OpDecorationGroup              OpCode = 73
	OpGroupDecorate                OpCode = 74
	OpGroupMemberDecorate          OpCode = 75
	OpVectorShuffle                OpCode = 79
	OpCompositeConstruct           OpCode = 80
	OpCompositeExtract             OpCode = 81
	OpLabel                        OpCode = 248
	OpBranch                       OpCode = 249
	OpReturn                       OpCode = 253
	OpReturnValue                  OpCode = 254
	OpNoLine                       OpCode = 317
	OpModuleProcessed              OpCode = 330
	OpDecorateID                   OpCode = 332
	OpTypeRayQueryKHR              OpCode = 4472
	OpTypeAccelerationStructureKHR OpCode = 5341
	OpDecorateString               OpCode = 5632
	OpMemberDecorateString         OpCode = 5633
)

// ExecutionModel identifies the pipeline stage an entry point implements.
type ExecutionModel uint32

// Execution models.
const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
	ExecutionModelKernel                 ExecutionModel = 6
	ExecutionModelTaskNV                 ExecutionModel = 5267
	ExecutionModelMeshNV                 ExecutionModel = 5268
	ExecutionModelRayGenerationNV        ExecutionModel = 5313
	ExecutionModelIntersectionNV         ExecutionModel = 5314
	ExecutionModelAnyHitNV               ExecutionModel = 5315
	ExecutionModelClosestHitNV           ExecutionModel = 5316
	ExecutionModelMissNV                 ExecutionModel = 5317
	ExecutionModelCallableNV             ExecutionModel = 5318
)

// String returns the SPIR-V assembly spelling of the execution model.
func (m ExecutionModel) String() string {
	return lookup(executionModels, uint32(m))
}

// StorageClass is the storage class of a pointer type or variable.
type StorageClass uint32

// Storage classes.
const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassGeneric         StorageClass = 8
	StorageClassPushConstant    StorageClass = 9
	StorageClassAtomicCounter   StorageClass = 10
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

// String returns the SPIR-V assembly spelling of the storage class.
func (s StorageClass) String() string {
	return lookup(storageClasses, uint32(s))
}

// Decoration represents a SPIR-V decoration.
type Decoration uint32

// Common decorations
const (
	DecorationRelaxedPrecision     Decoration = 0
	DecorationSpecID               Decoration = 1
	DecorationBlock                Decoration = 2
	DecorationBufferBlock          Decoration = 3
	DecorationRowMajor             Decoration = 4
	DecorationColMajor             Decoration = 5
	DecorationArrayStride          Decoration = 6
	DecorationMatrixStride         Decoration = 7
	DecorationBuiltIn              Decoration = 11
	DecorationFlat                 Decoration = 14
	DecorationNonWritable          Decoration = 24
	DecorationNonReadable          Decoration = 25
	DecorationLocation             Decoration = 30
	DecorationComponent            Decoration = 31
	DecorationIndex                Decoration = 32
	DecorationBinding              Decoration = 33
	DecorationDescriptorSet        Decoration = 34
	DecorationOffset               Decoration = 35
	DecorationInputAttachmentIndex Decoration = 43
)

// String returns the SPIR-V assembly spelling of the decoration.
func (d Decoration) String() string {
	return lookup(decorations, uint32(d))
}

// BuiltIn identifies a builtin variable.
type BuiltIn uint32

// Builtins the pipeline inspects.
const (
	BuiltInPosition           BuiltIn = 0
	BuiltInPointSize          BuiltIn = 1
	BuiltInClipDistance       BuiltIn = 3
	BuiltInFragCoord          BuiltIn = 15
	BuiltInPointCoord         BuiltIn = 16
	BuiltInNumWorkgroups      BuiltIn = 24
	BuiltInWorkgroupID        BuiltIn = 26
	BuiltInLocalInvocationID  BuiltIn = 27
	BuiltInGlobalInvocationID BuiltIn = 28
	BuiltInVertexIndex        BuiltIn = 42
	BuiltInInstanceIndex      BuiltIn = 43
)

// String returns the SPIR-V assembly spelling of the builtin.
func (b BuiltIn) String() string {
	return lookup(builtins, uint32(b))
}

// Capability represents a SPIR-V capability.
type Capability uint32

// Common capabilities
const (
	CapabilityMatrix Capability = 0
	CapabilityShader Capability = 1
)

// AddressingModel is the module addressing model.
type AddressingModel uint32

// Addressing models.
const (
	AddressingModelLogical AddressingModel = 0
)

// MemoryModel is the module memory model.
type MemoryModel uint32

// Memory models.
const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
)

// ExecutionMode is an entry point execution mode.
type ExecutionMode uint32

// Execution modes.
const (
	ExecutionModeOriginUpperLeft ExecutionMode = 7
	ExecutionModeLocalSize       ExecutionMode = 17
)

// FunctionControl is the function control mask.
type FunctionControl uint32

// FunctionControlNone is the empty function control mask.
const FunctionControlNone FunctionControl = 0

// SourceLanguage is the language recorded by OpSource.
type SourceLanguage uint32

// Source languages.
const (
	SourceLanguageUnknown SourceLanguage = 0
	SourceLanguageESSL    SourceLanguage = 1
	SourceLanguageGLSL    SourceLanguage = 2
	SourceLanguageHLSL    SourceLanguage = 5
)

// Dim is the dimensionality of an image type.
type Dim uint32

// Image dimensionalities.
const (
	Dim1D          Dim = 0
	Dim2D          Dim = 1
	Dim3D          Dim = 2
	DimCube        Dim = 3
	DimRect        Dim = 4
	DimBuffer      Dim = 5
	DimSubpassData Dim = 6
)
