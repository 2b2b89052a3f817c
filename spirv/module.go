package spirv

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidModule is returned when a binary is not a well-formed SPIR-V module.
var ErrInvalidModule = errors.New("spirv: invalid module")

// Module is a parsed SPIR-V module: the header plus the logical instruction
// stream in file order. Edits keep instructions in logical layout order.
type Module struct {
	Version   Version
	Generator uint32
	Bound     uint32
	Schema    uint32

	Instructions []Instruction
}

// Parse decodes a module from its word stream.
func Parse(words []uint32) (*Module, error) {
	if len(words) < HeaderWords {
		return nil, fmt.Errorf("%w: %d words is shorter than the header", ErrInvalidModule, len(words))
	}
	if words[0] != MagicNumber {
		return nil, fmt.Errorf("%w: bad magic 0x%08X", ErrInvalidModule, words[0])
	}

	m := &Module{
		Version:   versionFromWord(words[1]),
		Generator: words[2],
		Bound:     words[3],
		Schema:    words[4],
	}

	offset := HeaderWords
	for offset < len(words) {
		wordCount := int(words[offset] >> 16)
		opcode := OpCode(words[offset] & 0xFFFF)
		if wordCount == 0 || offset+wordCount > len(words) {
			return nil, fmt.Errorf("%w: invalid word count %d at word %d", ErrInvalidModule, wordCount, offset)
		}
		operands := make([]uint32, wordCount-1)
		copy(operands, words[offset+1:offset+wordCount])
		m.Instructions = append(m.Instructions, Instruction{Opcode: opcode, Words: operands})
		offset += wordCount
	}
	return m, nil
}

// ParseBytes decodes a module from its binary form. Both byte orders are
// accepted; the magic number decides which one is in use.
func ParseBytes(data []byte) (*Module, error) {
	words, err := BytesToWords(data)
	if err != nil {
		return nil, err
	}
	return Parse(words)
}

// BytesToWords converts a binary module to words, honoring the byte order
// signalled by the magic number.
func BytesToWords(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: size %d is not a multiple of 4", ErrInvalidModule, len(data))
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: empty binary", ErrInvalidModule)
	}

	var order binary.ByteOrder = binary.LittleEndian
	if binary.BigEndian.Uint32(data) == MagicNumber {
		order = binary.BigEndian
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = order.Uint32(data[i*4:])
	}
	return words, nil
}

// WordsToBytes encodes words as a little-endian binary.
func WordsToBytes(words []uint32) []byte {
	data := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(data[i*4:], w)
	}
	return data
}

// Words encodes the module.
func (m *Module) Words() []uint32 {
	size := HeaderWords
	for _, inst := range m.Instructions {
		size += len(inst.Words) + 1
	}

	words := make([]uint32, 0, size)
	words = append(words, MagicNumber, m.Version.word(), m.Generator, m.Bound, m.Schema)
	for _, inst := range m.Instructions {
		words = append(words, inst.Encode()...)
	}
	return words
}

// Bytes encodes the module as a little-endian binary.
func (m *Module) Bytes() []byte {
	return WordsToBytes(m.Words())
}

// Source reports the language and version recorded by the first OpSource.
func (m *Module) Source() (SourceLanguage, uint32, bool) {
	for _, inst := range m.Instructions {
		if inst.Opcode == OpSource && len(inst.Words) >= 2 {
			return SourceLanguage(inst.Words[0]), inst.Words[1], true
		}
	}
	return SourceLanguageUnknown, 0, false
}

// definition returns the instruction that defines id, if any.
func (m *Module) definition(id uint32) (Instruction, bool) {
	for _, inst := range m.Instructions {
		if rid, ok := resultID(inst); ok && rid == id {
			return inst, true
		}
	}
	return Instruction{}, false
}

// resultID extracts the result id of instructions the pipeline looks up by id.
func resultID(inst Instruction) (uint32, bool) {
	switch inst.Opcode {
	case OpTypeVoid, OpTypeBool, OpTypeInt, OpTypeFloat, OpTypeVector,
		OpTypeMatrix, OpTypeImage, OpTypeSampler, OpTypeSampledImage,
		OpTypeArray, OpTypeRuntimeArray, OpTypeStruct, OpTypePointer,
		OpTypeFunction, OpTypeAccelerationStructureKHR, OpTypeRayQueryKHR,
		OpExtInstImport, OpString, OpLabel, OpDecorationGroup:
		if len(inst.Words) >= 1 {
			return inst.Words[0], true
		}
	case OpVariable, OpConstant, OpConstantComposite, OpConstantTrue,
		OpConstantFalse, OpConstantNull, OpSpecConstantTrue, OpSpecConstantFalse,
		OpSpecConstant, OpSpecConstantComposite, OpSpecConstantOp,
		OpFunction, OpFunctionParameter:
		if len(inst.Words) >= 2 {
			return inst.Words[1], true
		}
	}
	return 0, false
}

// section orders the logical layout of a module. Instructions are inserted
// at the end of the section they belong to.
type section int

const (
	sectionCapability section = iota
	sectionExtension
	sectionExtInstImport
	sectionMemoryModel
	sectionEntryPoint
	sectionExecutionMode
	sectionDebugSource
	sectionDebugName
	sectionDebugModuleProcessed
	sectionAnnotation
	sectionGlobal
	sectionFunction
)

func sectionOf(op OpCode) section {
	switch op {
	case OpCapability:
		return sectionCapability
	case OpExtension:
		return sectionExtension
	case OpExtInstImport:
		return sectionExtInstImport
	case OpMemoryModel:
		return sectionMemoryModel
	case OpEntryPoint:
		return sectionEntryPoint
	case OpExecutionMode:
		return sectionExecutionMode
	case OpString, OpSource, OpSourceContinued, OpSourceExtension:
		return sectionDebugSource
	case OpName, OpMemberName:
		return sectionDebugName
	case OpModuleProcessed:
		return sectionDebugModuleProcessed
	case OpDecorate, OpMemberDecorate, OpDecorationGroup, OpGroupDecorate,
		OpGroupMemberDecorate, OpDecorateID, OpDecorateString, OpMemberDecorateString:
		return sectionAnnotation
	case OpFunction:
		return sectionFunction
	default:
		return sectionGlobal
	}
}

// insert places inst after the last instruction of its section. OpLine and
// OpNoLine may appear anywhere, so the scan stops at the first function.
func (m *Module) insert(inst Instruction) {
	target := sectionOf(inst.Opcode)
	at := 0
	for i, existing := range m.Instructions {
		if existing.Opcode == OpLine || existing.Opcode == OpNoLine {
			continue
		}
		s := sectionOf(existing.Opcode)
		if s == sectionFunction {
			break
		}
		if s > target {
			break
		}
		at = i + 1
	}

	m.Instructions = append(m.Instructions, Instruction{})
	copy(m.Instructions[at+1:], m.Instructions[at:])
	m.Instructions[at] = inst
}
