package spirv

import (
	"encoding/binary"
	"testing"
)

func TestModuleBuilder_MinimalModule(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	// Add basic capability
	builder.AddCapability(CapabilityShader)

	// Set memory model (required)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	// Build the module
	data := builder.Build()

	// Verify header (5 words = 20 bytes)
	if len(data) < 20 {
		t.Fatalf("Module too small: got %d bytes, want at least 20", len(data))
	}

	// Check magic number
	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != MagicNumber {
		t.Errorf("Invalid magic number: got 0x%08X, want 0x%08X", magic, MagicNumber)
	}

	// Check version
	version := binary.LittleEndian.Uint32(data[4:8])
	expectedVersion := uint32(1<<16 | 3<<8) // Version 1.3
	if version != expectedVersion {
		t.Errorf("Invalid version: got 0x%08X, want 0x%08X", version, expectedVersion)
	}

	// Check generator
	generator := binary.LittleEndian.Uint32(data[8:12])
	if generator != GeneratorID {
		t.Errorf("Invalid generator: got 0x%08X, want 0x%08X", generator, GeneratorID)
	}

	// Check bound (should be > 0)
	bound := binary.LittleEndian.Uint32(data[12:16])
	if bound == 0 {
		t.Error("Bound should be > 0")
	}

	// Check schema (reserved, must be 0)
	schema := binary.LittleEndian.Uint32(data[16:20])
	if schema != 0 {
		t.Errorf("Schema should be 0, got %d", schema)
	}

	t.Logf("Module size: %d bytes", len(data))
	t.Logf("Bound: %d", bound)
}

func TestModuleBuilder_WithTypes(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	builder.AddCapability(CapabilityShader)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	// Add some types
	voidType := builder.AddTypeVoid()
	floatType := builder.AddTypeFloat(32)
	intType := builder.AddTypeInt(32, true)
	vec4Type := builder.AddTypeVector(floatType, 4)

	// Build
	data := builder.Build()

	if len(data) < 20 {
		t.Fatalf("Module too small: %d bytes", len(data))
	}

	// Verify IDs are unique and sequential
	if voidType == floatType || voidType == intType || voidType == vec4Type {
		t.Error("Type IDs should be unique")
	}

	if floatType == intType || floatType == vec4Type || intType == vec4Type {
		t.Error("Type IDs should be unique")
	}

	t.Logf("Type IDs: void=%d, float=%d, int=%d, vec4=%d", voidType, floatType, intType, vec4Type)
	t.Logf("Module size: %d bytes", len(data))
}

func TestModuleBuilder_WithEntryPoint(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	builder.AddCapability(CapabilityShader)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	voidType := builder.AddTypeVoid()
	funcType := builder.AddTypeFunction(voidType)

	funcID := builder.AddFunction(funcType, voidType, FunctionControlNone)
	labelID := builder.AddLabel()
	builder.AddReturn()
	builder.AddFunctionEnd()

	// Entry points are declared after the function body is emitted;
	// the builder still places them in their own section.
	builder.AddEntryPoint(ExecutionModelFragment, funcID, "main", nil)
	builder.AddExecutionMode(funcID, ExecutionModeOriginUpperLeft)

	m, err := ParseBytes(builder.Build())
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	eps := m.EntryPoints()
	if len(eps) != 1 {
		t.Fatalf("got %d entry points, want 1", len(eps))
	}
	if eps[0].Name != "main" || eps[0].Model != ExecutionModelFragment || eps[0].Function != funcID {
		t.Errorf("entry point = %+v", eps[0])
	}

	// OpEntryPoint must come before the function definition.
	var epIndex, fnIndex int
	for i, inst := range m.Instructions {
		switch inst.Opcode {
		case OpEntryPoint:
			epIndex = i
		case OpFunction:
			fnIndex = i
		}
	}
	if epIndex > fnIndex {
		t.Errorf("OpEntryPoint at %d follows OpFunction at %d", epIndex, fnIndex)
	}

	t.Logf("Function ID: %d, Label ID: %d", funcID, labelID)
}

func TestInstructionBuilder_String(t *testing.T) {
	builder := NewInstructionBuilder()
	builder.AddString("hello")

	inst := builder.Build(OpName)
	encoded := inst.Encode()

	// First word is opcode
	opcodeWord := encoded[0]
	wordCount := opcodeWord >> 16
	opcode := OpCode(opcodeWord & 0xFFFF)

	if opcode != OpName {
		t.Errorf("Wrong opcode: got %d, want %d", opcode, OpName)
	}

	// Word count includes opcode word
	if wordCount < 2 {
		t.Errorf("String should produce at least 2 words, got %d", wordCount)
	}

	// "hello" plus terminator fits in two words
	if wordCount != 3 {
		t.Errorf("word count = %d, want 3", wordCount)
	}

	got, n := decodeString(inst.Words)
	if got != "hello" || n != 2 {
		t.Errorf("decodeString = %q, %d; want \"hello\", 2", got, n)
	}
}

func TestEncodeString_Padding(t *testing.T) {
	tests := []struct {
		in    string
		words int
	}{
		{"", 1},
		{"abc", 1},
		{"abcd", 2},
		{"main", 2},
		{"stageMain", 3},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			words := encodeString(tt.in)
			if len(words) != tt.words {
				t.Errorf("encodeString(%q) = %d words, want %d", tt.in, len(words), tt.words)
			}
			if got, _ := decodeString(words); got != tt.in {
				t.Errorf("decodeString = %q, want %q", got, tt.in)
			}
		})
	}
}

func TestInstructionBuilder_Float32(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	floatType := builder.AddTypeFloat(32)
	constID := builder.AddConstantFloat32(floatType, 3.14159)

	data := builder.Build()

	if len(data) < 20 {
		t.Fatalf("Module too small: %d bytes", len(data))
	}

	t.Logf("Float constant ID: %d", constID)
	t.Logf("Module size: %d bytes", len(data))
}

func TestModuleBuilder_IDAllocation(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	id1 := builder.AllocID()
	id2 := builder.AllocID()
	id3 := builder.AllocID()

	if id1 >= id2 || id2 >= id3 {
		t.Error("IDs should be strictly increasing")
	}

	if id1 == 0 || id2 == 0 || id3 == 0 {
		t.Error("IDs should never be 0")
	}

	t.Logf("Allocated IDs: %d, %d, %d", id1, id2, id3)
}
