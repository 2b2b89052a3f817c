package spirv

import (
	"fmt"
	"strings"
)

var opcodeNames = map[OpCode]string{
	0: "OpNop", 1: "OpUndef", 2: "OpSourceContinued", 3: "OpSource",
	4: "OpSourceExtension", 5: "OpName", 6: "OpMemberName", 7: "OpString",
	8: "OpLine", 10: "OpExtension", 11: "OpExtInstImport", 12: "OpExtInst",
	14: "OpMemoryModel", 15: "OpEntryPoint", 16: "OpExecutionMode",
	17: "OpCapability", 19: "OpTypeVoid", 20: "OpTypeBool",
	21: "OpTypeInt", 22: "OpTypeFloat", 23: "OpTypeVector",
	24: "OpTypeMatrix", 25: "OpTypeImage", 26: "OpTypeSampler",
	27: "OpTypeSampledImage", 28: "OpTypeArray", 29: "OpTypeRuntimeArray",
	30: "OpTypeStruct", 31: "OpTypeOpaque", 32: "OpTypePointer",
	33: "OpTypeFunction", 41: "OpConstantTrue", 42: "OpConstantFalse",
	43: "OpConstant", 44: "OpConstantComposite", 45: "OpConstantSampler",
	46: "OpConstantNull", 48: "OpSpecConstantTrue", 49: "OpSpecConstantFalse",
	50: "OpSpecConstant", 51: "OpSpecConstantComposite", 52: "OpSpecConstantOp",
	54: "OpFunction", 55: "OpFunctionParameter", 56: "OpFunctionEnd",
	57: "OpFunctionCall", 59: "OpVariable", 60: "OpImageTexelPointer",
	61: "OpLoad", 62: "OpStore", 63: "OpCopyMemory", 64: "OpCopyMemorySized",
	65: "OpAccessChain", 66: "OpInBoundsAccessChain", 67: "OpPtrAccessChain",
	68: "OpArrayLength", 70: "OpInBoundsPtrAccessChain",
	71: "OpDecorate", 72: "OpMemberDecorate", 73: "OpDecorationGroup",
	74: "OpGroupDecorate", 75: "OpGroupMemberDecorate",
	77: "OpVectorExtractDynamic", 78: "OpVectorInsertDynamic",
	79: "OpVectorShuffle", 80: "OpCompositeConstruct", 81: "OpCompositeExtract",
	82: "OpCompositeInsert", 83: "OpCopyObject", 84: "OpTranspose",
	86: "OpSampledImage", 87: "OpImageSampleImplicitLod",
	88: "OpImageSampleExplicitLod", 89: "OpImageSampleDrefImplicitLod",
	90: "OpImageSampleDrefExplicitLod", 95: "OpImageFetch",
	96: "OpImageGather", 97: "OpImageDrefGather", 98: "OpImageRead",
	99: "OpImageWrite", 100: "OpImage", 103: "OpImageQuerySizeLod",
	104: "OpImageQuerySize", 106: "OpImageQueryLevels", 107: "OpImageQuerySamples",
	109: "OpConvertFToU", 110: "OpConvertFToS", 111: "OpConvertSToF",
	112: "OpConvertUToF", 113: "OpUConvert", 114: "OpSConvert",
	115: "OpFConvert", 124: "OpBitcast",
	126: "OpSNegate", 127: "OpFNegate", 128: "OpIAdd", 129: "OpFAdd",
	130: "OpISub", 131: "OpFSub", 132: "OpIMul", 133: "OpFMul",
	134: "OpUDiv", 135: "OpSDiv", 136: "OpFDiv", 137: "OpUMod",
	138: "OpSRem", 139: "OpSMod", 140: "OpFRem", 141: "OpFMod",
	142: "OpVectorTimesScalar", 143: "OpMatrixTimesScalar",
	144: "OpVectorTimesMatrix", 145: "OpMatrixTimesVector",
	146: "OpMatrixTimesMatrix", 147: "OpOuterProduct", 148: "OpDot",
	164: "OpAny", 165: "OpAll", 166: "OpIsNan", 167: "OpIsInf",
	174: "OpLogicalEqual", 175: "OpLogicalNotEqual",
	176: "OpLogicalOr", 177: "OpLogicalAnd", 178: "OpLogicalNot",
	179: "OpSelect", 180: "OpIEqual", 181: "OpINotEqual",
	182: "OpUGreaterThan", 183: "OpSGreaterThan", 184: "OpUGreaterThanEqual",
	185: "OpSGreaterThanEqual", 186: "OpULessThan", 187: "OpSLessThan",
	188: "OpULessThanEqual", 189: "OpSLessThanEqual",
	190: "OpFOrdEqual", 191: "OpFUnordEqual", 192: "OpFOrdNotEqual",
	193: "OpFUnordNotEqual", 194: "OpShiftRightLogical", 195: "OpShiftRightArithmetic",
	196: "OpShiftLeftLogical", 197: "OpBitwiseOr", 198: "OpBitwiseXor",
	199: "OpBitwiseAnd", 200: "OpNot", 224: "OpControlBarrier",
	225: "OpMemoryBarrier", 245: "OpPhi", 246: "OpLoopMerge", 247: "OpSelectionMerge",
	248: "OpLabel", 249: "OpBranch", 250: "OpBranchConditional",
	251: "OpSwitch", 252: "OpKill", 253: "OpReturn", 254: "OpReturnValue",
	255: "OpUnreachable", 317: "OpNoLine", 330: "OpModuleProcessed",
	332: "OpDecorateId", 4472: "OpTypeRayQueryKHR",
	5341: "OpTypeAccelerationStructureKHR", 5632: "OpDecorateString", 5633: "OpMemberDecorateString",
}

var capabilities = map[uint32]string{
	0: "Matrix", 1: "Shader", 2: "Geometry", 3: "Tessellation",
	4: "Addresses", 5: "Linkage", 6: "Kernel", 9: "Float16", 10: "Float64",
	11: "Int64", 12: "Int64Atomics", 15: "ImageMipmap", 21: "AtomicStorage",
	22: "Int16", 23: "TessellationPointSize", 24: "GeometryPointSize",
	25: "ImageGatherExtended", 31: "ClipDistance", 32: "CullDistance",
	33: "ImageCubeArray", 34: "SampleRateShading", 35: "ImageRect",
	36: "SampledRect", 38: "Int8", 39: "InputAttachment", 41: "MinLod",
	42: "Sampled1D", 43: "Image1D", 44: "SampledCubeArray", 45: "SampledBuffer",
	46: "ImageBuffer", 48: "StorageImageExtendedFormats", 49: "ImageQuery",
	50: "DerivativeControl", 51: "InterpolationFunction",
	54: "StorageImageReadWithoutFormat", 55: "StorageImageWriteWithoutFormat",
	56: "MultiViewport", 61: "GroupNonUniformVote", 4427: "DrawParameters",
	4439: "StoragePushConstant16", 4441: "DeviceGroup", 4442: "MultiView",
	5266: "MeshShadingNV", 5340: "RayTracingNV",
}

var storageClasses = map[uint32]string{
	0: "UniformConstant", 1: "Input", 2: "Uniform", 3: "Output",
	4: "Workgroup", 5: "CrossWorkgroup", 6: "Private", 7: "Function",
	8: "Generic", 9: "PushConstant", 10: "AtomicCounter", 11: "Image",
	12: "StorageBuffer",
}

var decorations = map[uint32]string{
	0: "RelaxedPrecision", 1: "SpecId", 2: "Block", 3: "BufferBlock",
	4: "RowMajor", 5: "ColMajor", 6: "ArrayStride", 7: "MatrixStride",
	8: "GLSLShared", 9: "GLSLPacked", 10: "CPacked", 11: "BuiltIn",
	13: "NoPerspective", 14: "Flat", 15: "Patch", 16: "Centroid",
	17: "Sample", 18: "Invariant", 19: "Restrict", 20: "Aliased",
	21: "Volatile", 22: "Constant", 23: "Coherent", 24: "NonWritable",
	25: "NonReadable", 26: "Uniform", 28: "SaturatedConversion",
	29: "Stream", 30: "Location", 31: "Component", 32: "Index",
	33: "Binding", 34: "DescriptorSet", 35: "Offset", 36: "XfbBuffer",
	37: "XfbStride", 38: "FuncParamAttr", 39: "FPRoundingMode",
	40: "FPFastMathMode", 41: "LinkageAttributes", 42: "NoContraction",
	43: "InputAttachmentIndex", 44: "Alignment",
	5635: "HlslSemanticGOOGLE",
}

var builtins = map[uint32]string{
	0: "Position", 1: "PointSize", 3: "ClipDistance", 4: "CullDistance",
	5: "VertexId", 6: "InstanceId", 7: "PrimitiveId", 8: "InvocationId",
	9: "Layer", 10: "ViewportIndex", 11: "TessLevelOuter", 12: "TessLevelInner",
	13: "TessCoord", 14: "PatchVertices", 15: "FragCoord", 16: "PointCoord",
	17: "FrontFacing", 18: "SampleId", 19: "SamplePosition", 20: "SampleMask",
	22: "FragDepth", 23: "HelperInvocation", 24: "NumWorkgroups",
	25: "WorkgroupSize", 26: "WorkgroupId", 27: "LocalInvocationId",
	28: "GlobalInvocationId", 29: "LocalInvocationIndex",
	36: "SubgroupSize", 38: "NumSubgroups", 40: "SubgroupId",
	41: "SubgroupLocalInvocationId", 42: "VertexIndex", 43: "InstanceIndex",
	4424: "BaseVertex", 4425: "BaseInstance", 4426: "DrawIndex",
}

var executionModes = map[uint32]string{
	0: "Invocations", 1: "SpacingEqual", 2: "SpacingFractionalEven",
	3: "SpacingFractionalOdd", 4: "VertexOrderCw", 5: "VertexOrderCcw",
	6: "PixelCenterInteger", 7: "OriginUpperLeft", 8: "OriginLowerLeft",
	9: "EarlyFragmentTests", 10: "PointMode", 11: "Xfb", 12: "DepthReplacing",
	14: "DepthGreater", 15: "DepthLess", 16: "DepthUnchanged",
	17: "LocalSize", 18: "LocalSizeHint", 19: "InputPoints", 20: "InputLines",
	21: "InputLinesAdjacency", 22: "Triangles", 23: "InputTrianglesAdjacency",
	24: "Quads", 25: "Isolines", 26: "OutputVertices", 27: "OutputPoints",
	28: "OutputLineStrip", 29: "OutputTriangleStrip",
}

var executionModels = map[uint32]string{
	0: "Vertex", 1: "TessellationControl", 2: "TessellationEvaluation",
	3: "Geometry", 4: "Fragment", 5: "GLCompute", 6: "Kernel",
	5267: "TaskNV", 5268: "MeshNV", 5313: "RayGenerationNV",
	5314: "IntersectionNV", 5315: "AnyHitNV", 5316: "ClosestHitNV",
	5317: "MissNV", 5318: "CallableNV",
}

var sourceLanguages = map[uint32]string{
	0: "Unknown", 1: "ESSL", 2: "GLSL", 3: "OpenCL_C", 4: "OpenCL_CPP", 5: "HLSL",
}

var addressingModels = map[uint32]string{
	0: "Logical", 1: "Physical32", 2: "Physical64", 5348: "PhysicalStorageBuffer64",
}

var memoryModels = map[uint32]string{
	0: "Simple", 1: "GLSL450", 2: "OpenCL", 3: "Vulkan",
}

var dims = map[uint32]string{
	0: "1D", 1: "2D", 2: "3D", 3: "Cube", 4: "Rect", 5: "Buffer", 6: "SubpassData",
}

func lookup(m map[uint32]string, v uint32) string {
	if s, ok := m[v]; ok {
		return s
	}
	return fmt.Sprintf("%d", v)
}

// String returns the SPIR-V assembly spelling of the opcode.
func (op OpCode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Op%d", uint16(op))
}

// DisassembleWords parses words and renders them as assembly text.
func DisassembleWords(words []uint32) (string, error) {
	m, err := Parse(words)
	if err != nil {
		return "", err
	}
	return Disassemble(m), nil
}

// Disassemble renders m as SPIR-V assembly text.
func Disassemble(m *Module) string {
	d := disassembler{}
	d.printf("; SPIR-V\n")
	d.printf("; Version: %s\n", m.Version)
	d.printf("; Generator: 0x%08X\n", m.Generator)
	d.printf("; Bound: %d\n", m.Bound)
	d.printf("; Schema: %d\n", m.Schema)
	d.printf("\n")

	for _, inst := range m.Instructions {
		d.instruction(inst)
	}
	return d.sb.String()
}

type disassembler struct {
	sb strings.Builder
}

func (d *disassembler) printf(format string, args ...any) {
	fmt.Fprintf(&d.sb, format, args...)
}

func id(n uint32) string {
	return fmt.Sprintf("%%%d", n)
}

// statement writes an instruction without a result id.
func (d *disassembler) statement(name string, operands ...string) {
	d.printf("               %s", name)
	for _, op := range operands {
		d.printf(" %s", op)
	}
	d.printf("\n")
}

// result writes an instruction that defines result.
func (d *disassembler) result(result uint32, name string, operands ...string) {
	d.printf("%16s = %s", id(result), name)
	for _, op := range operands {
		d.printf(" %s", op)
	}
	d.printf("\n")
}

func ids(ops []uint32) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = id(op)
	}
	return out
}

func literals(ops []uint32) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = fmt.Sprintf("%d", op)
	}
	return out
}

func quoted(words []uint32) (string, int) {
	s, n := decodeString(words)
	return fmt.Sprintf("%q", s), n
}

//nolint:gocyclo,cyclop,funlen // one case per opcode shape
func (d *disassembler) instruction(inst Instruction) {
	name := inst.Opcode.String()
	ops := inst.Words

	if !hasOperands(inst.Opcode, len(ops)) {
		d.generic(inst.Opcode, ops)
		return
	}

	switch inst.Opcode {
	case OpCapability:
		d.statement(name, lookup(capabilities, ops[0]))

	case OpExtension:
		s, _ := quoted(ops)
		d.statement(name, s)

	case OpExtInstImport:
		s, _ := quoted(ops[1:])
		d.result(ops[0], name, s)

	case OpMemoryModel:
		d.statement(name, lookup(addressingModels, ops[0]), lookup(memoryModels, ops[1]))

	case OpEntryPoint:
		s, n := quoted(ops[2:])
		operands := []string{lookup(executionModels, ops[0]), id(ops[1]), s}
		d.statement(name, append(operands, ids(ops[2+n:])...)...)

	case OpExecutionMode:
		operands := []string{id(ops[0]), lookup(executionModes, ops[1])}
		d.statement(name, append(operands, literals(ops[2:])...)...)

	case OpSource:
		operands := []string{lookup(sourceLanguages, ops[0]), fmt.Sprintf("%d", ops[1])}
		if len(ops) > 2 {
			operands = append(operands, id(ops[2]))
		}
		if len(ops) > 3 {
			s, _ := quoted(ops[3:])
			operands = append(operands, s)
		}
		d.statement(name, operands...)

	case OpSourceExtension, OpModuleProcessed:
		s, _ := quoted(ops)
		d.statement(name, s)

	case OpString:
		s, _ := quoted(ops[1:])
		d.result(ops[0], name, s)

	case OpName:
		s, _ := quoted(ops[1:])
		d.statement(name, id(ops[0]), s)

	case OpMemberName:
		s, _ := quoted(ops[2:])
		d.statement(name, id(ops[0]), fmt.Sprintf("%d", ops[1]), s)

	case OpDecorate:
		d.statement(name, append([]string{id(ops[0])}, decoration(ops[1], ops[2:])...)...)

	case OpMemberDecorate:
		operands := []string{id(ops[0]), fmt.Sprintf("%d", ops[1])}
		d.statement(name, append(operands, decoration(ops[2], ops[3:])...)...)

	case OpDecorateString:
		s, _ := quoted(ops[2:])
		d.statement(name, id(ops[0]), lookup(decorations, ops[1]), s)

	case OpTypeVoid, OpTypeBool, OpTypeSampler, OpLabel, OpDecorationGroup,
		OpTypeAccelerationStructureKHR, OpTypeRayQueryKHR:
		d.result(ops[0], name)

	case OpTypeInt:
		d.result(ops[0], name, literals(ops[1:])...)

	case OpTypeFloat:
		d.result(ops[0], name, literals(ops[1:])...)

	case OpTypeVector, OpTypeMatrix:
		d.result(ops[0], name, id(ops[1]), fmt.Sprintf("%d", ops[2]))

	case OpTypeImage:
		operands := []string{id(ops[1]), lookup(dims, ops[2])}
		operands = append(operands, literals(ops[3:7])...)
		operands = append(operands, "Unknown")
		if ops[6] != 1 && len(ops) > 8 {
			operands = append(operands, fmt.Sprintf("%d", ops[8]))
		}
		d.result(ops[0], name, operands...)

	case OpTypeSampledImage, OpTypeRuntimeArray:
		d.result(ops[0], name, id(ops[1]))

	case OpTypeArray, OpTypeStruct, OpTypeFunction:
		d.result(ops[0], name, ids(ops[1:])...)

	case OpTypePointer:
		d.result(ops[0], name, lookup(storageClasses, ops[1]), id(ops[2]))

	case OpConstant, OpSpecConstant:
		d.result(ops[1], name, append([]string{id(ops[0])}, literals(ops[2:])...)...)

	case OpFunction:
		d.result(ops[1], name, id(ops[0]), "None", id(ops[3]))

	case OpVariable:
		operands := []string{id(ops[0]), lookup(storageClasses, ops[2])}
		d.result(ops[1], name, append(operands, ids(ops[3:])...)...)

	case OpCompositeExtract:
		d.result(ops[1], name, append([]string{id(ops[0]), id(ops[2])}, literals(ops[3:])...)...)

	case OpVectorShuffle:
		operands := []string{id(ops[0]), id(ops[2]), id(ops[3])}
		d.result(ops[1], name, append(operands, literals(ops[4:])...)...)

	case OpFunctionEnd, OpReturn, OpNop, OpNoLine:
		d.statement(name)

	case OpStore, OpBranch, OpReturnValue:
		d.statement(name, ids(ops)...)

	default:
		d.generic(inst.Opcode, ops)
	}
}

// hasOperands reports whether an instruction carries the operands its
// specialized format reads. Malformed instructions fall back to the
// generic format.
func hasOperands(op OpCode, n int) bool {
	want := 0
	switch op {
	case OpCapability, OpExtension, OpSourceExtension, OpModuleProcessed,
		OpTypeVoid, OpTypeBool, OpTypeSampler, OpLabel, OpDecorationGroup,
		OpTypeAccelerationStructureKHR, OpTypeRayQueryKHR, OpBranch, OpReturnValue:
		want = 1
	case OpExtInstImport, OpMemoryModel, OpExecutionMode, OpSource, OpString,
		OpName, OpDecorate, OpTypeInt, OpTypeFloat, OpTypeSampledImage,
		OpTypeRuntimeArray, OpStore:
		want = 2
	case OpEntryPoint, OpMemberName, OpMemberDecorate, OpDecorateString,
		OpTypeVector, OpTypeMatrix, OpTypePointer, OpVariable, OpConstant,
		OpSpecConstant, OpCompositeExtract, OpTypeArray:
		want = 3
	case OpFunction, OpVectorShuffle:
		want = 4
	case OpTypeImage:
		want = 8
	}
	return n >= want
}

func decoration(dec uint32, params []uint32) []string {
	operands := []string{lookup(decorations, dec)}
	if Decoration(dec) == DecorationBuiltIn && len(params) > 0 {
		return append(operands, lookup(builtins, params[0]))
	}
	return append(operands, literals(params)...)
}

func (d *disassembler) generic(op OpCode, ops []uint32) {
	if len(ops) >= 2 && hasTypedResult(op) {
		d.result(ops[1], op.String(), append([]string{id(ops[0])}, ids(ops[2:])...)...)
		return
	}
	d.statement(op.String(), ids(ops)...)
}

// hasTypedResult reports whether op starts with a result type and a result id.
func hasTypedResult(op OpCode) bool {
	switch op {
	case OpUndef, OpExtInst, OpConstantTrue, OpConstantFalse, OpConstantComposite,
		OpConstantNull, OpFunctionParameter, OpFunctionCall, OpLoad,
		OpAccessChain, OpInBoundsAccessChain, OpCompositeConstruct,
		OpSpecConstantTrue, OpSpecConstantFalse, OpSpecConstantComposite, OpSpecConstantOp:
		return true
	}
	return op >= 77 && op <= 200 || op == 245
}
