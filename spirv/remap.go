package spirv

import "slices"

// RemapBuiltinToUniform moves the reads of the Input builtin b into a
// uniform block named name with a single member holding the builtin's
// value, and returns the block variable. It returns 0 when no function
// reads the builtin.
//
// Loads of the builtin become loads through member 0 of the block and
// access chains into it are rebased on the block. The old variable is left
// declared but unused. The new variable carries no descriptor set or
// binding; callers decorate it.
func (m *Module) RemapBuiltinToUniform(b BuiltIn, name string) uint32 {
	old := m.BuiltinVariable(StorageClassInput, b)
	if old == 0 || !m.readsVariable(old) {
		return 0
	}
	def, ok := m.definition(old)
	if !ok {
		return 0
	}
	valueType := m.pointee(def.Words[0])

	block := m.allocID()
	m.insert(Instruction{Opcode: OpTypeStruct, Words: []uint32{block, valueType}})
	m.SetName(block, name)
	m.insert(Instruction{Opcode: OpMemberName, Words: append([]uint32{block, 0}, encodeString("count")...)})
	m.SetDecoration(block, DecorationBlock)
	m.insert(Instruction{Opcode: OpMemberDecorate, Words: []uint32{block, 0, uint32(DecorationOffset), 0}})

	blockPtr := m.pointerType(StorageClassUniform, block)
	v := m.allocID()
	m.insert(Instruction{Opcode: OpVariable, Words: []uint32{blockPtr, v, uint32(StorageClassUniform)}})
	m.SetName(v, name)

	member := m.uintConstant(0)
	valuePtr := m.pointerType(StorageClassUniform, valueType)

	// Declare every rebased pointer type before the function bodies are
	// rewritten.
	var chainTypes []uint32
	for _, inst := range m.Instructions {
		if isAccessChain(inst.Opcode) && len(inst.Words) >= 3 && inst.Words[2] == old &&
			!slices.Contains(chainTypes, inst.Words[0]) {
			chainTypes = append(chainTypes, inst.Words[0])
		}
	}
	rebased := make(map[uint32]uint32, len(chainTypes))
	for _, t := range chainTypes {
		rebased[t] = m.pointerType(StorageClassUniform, m.pointee(t))
	}

	out := make([]Instruction, 0, len(m.Instructions))
	inFunction := false
	for _, inst := range m.Instructions {
		if inst.Opcode == OpFunction {
			inFunction = true
		}
		if !inFunction || len(inst.Words) < 3 || inst.Words[2] != old {
			out = append(out, inst)
			continue
		}
		switch {
		case inst.Opcode == OpLoad:
			tmp := m.allocID()
			out = append(out, Instruction{Opcode: OpAccessChain, Words: []uint32{valuePtr, tmp, v, member}})
			words := append([]uint32(nil), inst.Words...)
			words[2] = tmp
			out = append(out, Instruction{Opcode: OpLoad, Words: words})

		case isAccessChain(inst.Opcode):
			words := []uint32{rebased[inst.Words[0]], inst.Words[1], v, member}
			out = append(out, Instruction{Opcode: inst.Opcode, Words: append(words, inst.Words[3:]...)})

		default:
			out = append(out, inst)
		}
	}
	m.Instructions = out

	// From SPIR-V 1.4 on the interface lists every global the entry
	// point uses.
	if m.Version.word() >= Version1_4.word() {
		for i, inst := range m.Instructions {
			if inst.Opcode != OpEntryPoint || len(inst.Words) < 3 {
				continue
			}
			_, n := decodeString(inst.Words[2:])
			if slices.Contains(inst.Words[2+n:], old) {
				m.Instructions[i].Words = append(inst.Words, v)
			}
		}
	}
	return v
}

// readsVariable reports whether any function loads id or indexes into it.
func (m *Module) readsVariable(id uint32) bool {
	for _, inst := range m.Instructions {
		if (inst.Opcode == OpLoad || isAccessChain(inst.Opcode)) && len(inst.Words) >= 3 && inst.Words[2] == id {
			return true
		}
	}
	return false
}

func isAccessChain(op OpCode) bool {
	return op == OpAccessChain || op == OpInBoundsAccessChain
}

func (m *Module) allocID() uint32 {
	id := m.Bound
	m.Bound++
	return id
}

// pointerType returns the pointer type to typeID in storage class sc,
// declaring it when the module has none.
func (m *Module) pointerType(sc StorageClass, typeID uint32) uint32 {
	for _, inst := range m.Instructions {
		if inst.Opcode == OpTypePointer && len(inst.Words) == 3 &&
			StorageClass(inst.Words[1]) == sc && inst.Words[2] == typeID {
			return inst.Words[0]
		}
	}
	id := m.allocID()
	m.insert(Instruction{Opcode: OpTypePointer, Words: []uint32{id, uint32(sc), typeID}})
	return id
}

// uintConstant returns a 32-bit unsigned constant, declaring it and its type
// when needed.
func (m *Module) uintConstant(value uint32) uint32 {
	u32 := uint32(0)
	for _, inst := range m.Instructions {
		if inst.Opcode == OpTypeInt && len(inst.Words) == 3 && inst.Words[1] == 32 && inst.Words[2] == 0 {
			u32 = inst.Words[0]
			break
		}
	}
	if u32 == 0 {
		u32 = m.allocID()
		m.insert(Instruction{Opcode: OpTypeInt, Words: []uint32{u32, 32, 0}})
	}

	for _, inst := range m.Instructions {
		if inst.Opcode == OpConstant && len(inst.Words) == 3 && inst.Words[0] == u32 && inst.Words[2] == value {
			return inst.Words[1]
		}
	}
	id := m.allocID()
	m.insert(Instruction{Opcode: OpConstant, Words: []uint32{u32, id, value}})
	return id
}
