package spirv

import (
	"encoding/binary"
	"errors"
	"testing"
)

func minimalModule() *ModuleBuilder {
	b := NewModuleBuilder(Version1_0)
	b.AddCapability(CapabilityShader)
	b.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	b.AddSource(SourceLanguageGLSL, 450)

	voidType := b.AddTypeVoid()
	funcType := b.AddTypeFunction(voidType)
	fn := b.AddFunction(funcType, voidType, FunctionControlNone)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()
	b.AddEntryPoint(ExecutionModelVertex, fn, "main", nil)
	return b
}

func TestParse_Header(t *testing.T) {
	words := minimalModule().Words()

	m, err := Parse(words)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if m.Version != Version1_0 {
		t.Errorf("Version = %v, want 1.0", m.Version)
	}
	if m.Bound == 0 {
		t.Error("Bound should be > 0")
	}

	lang, version, ok := m.Source()
	if !ok || lang != SourceLanguageGLSL || version != 450 {
		t.Errorf("Source() = %d, %d, %v; want GLSL 450", lang, version, ok)
	}

	again := m.Words()
	if len(again) != len(words) {
		t.Fatalf("re-encoded %d words, want %d", len(again), len(words))
	}
	for i := range words {
		if again[i] != words[i] {
			t.Fatalf("word %d = 0x%08X, want 0x%08X", i, again[i], words[i])
		}
	}
}

func TestParse_Errors(t *testing.T) {
	valid := minimalModule().Words()

	truncated := append([]uint32(nil), valid...)
	truncated = truncated[:len(truncated)-1]
	// Bump the last instruction's word count past the end of the stream.
	truncated = append(truncated, 0x00FF0000|uint32(OpNop))

	tests := []struct {
		name  string
		words []uint32
	}{
		{"empty", nil},
		{"short header", []uint32{MagicNumber, 0x00010000}},
		{"bad magic", []uint32{0xDEADBEEF, 0x00010000, 0, 1, 0}},
		{"zero word count", []uint32{MagicNumber, 0x00010000, 0, 1, 0, 0}},
		{"overrun", truncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.words)
			if !errors.Is(err, ErrInvalidModule) {
				t.Errorf("Parse error = %v, want ErrInvalidModule", err)
			}
		})
	}
}

func TestParseBytes_BigEndian(t *testing.T) {
	words := minimalModule().Words()
	data := make([]byte, len(words)*4)
	for i, w := range words {
		binary.BigEndian.PutUint32(data[i*4:], w)
	}

	m, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if eps := m.EntryPoints(); len(eps) != 1 || eps[0].Name != "main" {
		t.Errorf("EntryPoints = %+v", eps)
	}
}

func TestBytesToWords_Misaligned(t *testing.T) {
	if _, err := BytesToWords([]byte{0x03, 0x02, 0x23}); !errors.Is(err, ErrInvalidModule) {
		t.Errorf("error = %v, want ErrInvalidModule", err)
	}
}

func TestInsert_SectionOrder(t *testing.T) {
	m := minimalModule().Module()
	fn := m.EntryPoints()[0].Function

	m.SetName(fn, "main")
	m.SetDecoration(fn, DecorationRelaxedPrecision)

	last := sectionCapability
	for i, inst := range m.Instructions {
		s := sectionOf(inst.Opcode)
		if s == sectionFunction {
			break
		}
		if s < last {
			t.Fatalf("instruction %d (%s) is in section %d after section %d", i, inst.Opcode, s, last)
		}
		last = s
	}

	if got := m.Name(fn); got != "main" {
		t.Errorf("Name = %q, want main", got)
	}
	if !m.HasDecoration(fn, DecorationRelaxedPrecision) {
		t.Error("decoration was not inserted")
	}
}

func TestResultID(t *testing.T) {
	tests := []struct {
		inst Instruction
		want uint32
		ok   bool
	}{
		{Instruction{Opcode: OpTypeAccelerationStructureKHR, Words: []uint32{7}}, 7, true},
		{Instruction{Opcode: OpTypeRayQueryKHR, Words: []uint32{8}}, 8, true},
		{Instruction{Opcode: OpSpecConstant, Words: []uint32{2, 9, 64}}, 9, true},
		{Instruction{Opcode: OpSpecConstantTrue, Words: []uint32{3, 10}}, 10, true},
		{Instruction{Opcode: OpSpecConstantComposite, Words: []uint32{4, 11, 9, 9}}, 11, true},
		{Instruction{Opcode: OpSpecConstantOp, Words: []uint32{2, 12, 128, 9, 9}}, 12, true},
		{Instruction{Opcode: OpStore, Words: []uint32{5, 6}}, 0, false},
	}
	for _, tt := range tests {
		got, ok := resultID(tt.inst)
		if got != tt.want || ok != tt.ok {
			t.Errorf("resultID(%s) = %d, %v; want %d, %v", tt.inst.Opcode, got, ok, tt.want, tt.ok)
		}
	}
}
