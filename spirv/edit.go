package spirv

import (
	"errors"
	"fmt"
)

// ErrEntryPointNotFound is returned when an entry point lookup fails.
var ErrEntryPointNotFound = errors.New("spirv: entry point not found")

// EntryPoint describes an OpEntryPoint declaration.
type EntryPoint struct {
	Name      string
	Model     ExecutionModel
	Function  uint32
	Interface []uint32
}

// EntryPoints returns the module's entry points in declaration order.
func (m *Module) EntryPoints() []EntryPoint {
	var eps []EntryPoint
	for _, inst := range m.Instructions {
		if inst.Opcode != OpEntryPoint || len(inst.Words) < 3 {
			continue
		}
		name, n := decodeString(inst.Words[2:])
		eps = append(eps, EntryPoint{
			Name:      name,
			Model:     ExecutionModel(inst.Words[0]),
			Function:  inst.Words[1],
			Interface: append([]uint32(nil), inst.Words[2+n:]...),
		})
	}
	return eps
}

// RenameEntryPoint renames the entry point called from with the given
// execution model. Debug names of the function are left untouched.
func (m *Module) RenameEntryPoint(from, to string, model ExecutionModel) error {
	for i, inst := range m.Instructions {
		if inst.Opcode != OpEntryPoint || len(inst.Words) < 3 {
			continue
		}
		if ExecutionModel(inst.Words[0]) != model {
			continue
		}
		name, n := decodeString(inst.Words[2:])
		if name != from {
			continue
		}

		words := make([]uint32, 0, len(inst.Words)+2)
		words = append(words, inst.Words[0], inst.Words[1])
		words = append(words, encodeString(to)...)
		words = append(words, inst.Words[2+n:]...)
		m.Instructions[i].Words = words
		return nil
	}
	return fmt.Errorf("%w: %q (%s)", ErrEntryPointNotFound, from, model)
}

// Name returns the debug name of id, or "" when it has none.
func (m *Module) Name(id uint32) string {
	if i := m.findName(id); i >= 0 {
		name, _ := decodeString(m.Instructions[i].Words[1:])
		return name
	}
	return ""
}

// SetName sets the debug name of id, replacing any existing OpName.
func (m *Module) SetName(id uint32, name string) {
	words := append([]uint32{id}, encodeString(name)...)
	if i := m.findName(id); i >= 0 {
		m.Instructions[i].Words = words
		return
	}
	m.insert(Instruction{Opcode: OpName, Words: words})
}

func (m *Module) findName(id uint32) int {
	for i, inst := range m.Instructions {
		if inst.Opcode == OpName && len(inst.Words) >= 1 && inst.Words[0] == id {
			return i
		}
	}
	return -1
}

// MemberName returns the debug name of a struct member.
func (m *Module) MemberName(structID, member uint32) string {
	for _, inst := range m.Instructions {
		if inst.Opcode == OpMemberName && len(inst.Words) >= 2 &&
			inst.Words[0] == structID && inst.Words[1] == member {
			name, _ := decodeString(inst.Words[2:])
			return name
		}
	}
	return ""
}

// Decoration returns the first literal of decoration dec on id. Decorations
// without literals report 0. The second result reports whether id carries
// the decoration at all.
func (m *Module) Decoration(id uint32, dec Decoration) (uint32, bool) {
	i := m.findDecoration(id, dec)
	if i < 0 {
		return 0, false
	}
	if params := m.Instructions[i].Words[2:]; len(params) > 0 {
		return params[0], true
	}
	return 0, true
}

// HasDecoration reports whether id is decorated with dec.
func (m *Module) HasDecoration(id uint32, dec Decoration) bool {
	return m.findDecoration(id, dec) >= 0
}

// SetDecoration decorates id with dec, replacing the literals of an
// existing decoration of the same kind.
func (m *Module) SetDecoration(id uint32, dec Decoration, params ...uint32) {
	words := append([]uint32{id, uint32(dec)}, params...)
	if i := m.findDecoration(id, dec); i >= 0 {
		m.Instructions[i].Words = words
		return
	}
	m.insert(Instruction{Opcode: OpDecorate, Words: words})
}

// UnsetDecoration removes decoration dec from id.
func (m *Module) UnsetDecoration(id uint32, dec Decoration) {
	if i := m.findDecoration(id, dec); i >= 0 {
		m.Instructions = append(m.Instructions[:i], m.Instructions[i+1:]...)
	}
}

func (m *Module) findDecoration(id uint32, dec Decoration) int {
	for i, inst := range m.Instructions {
		if inst.Opcode == OpDecorate && len(inst.Words) >= 2 &&
			inst.Words[0] == id && Decoration(inst.Words[1]) == dec {
			return i
		}
	}
	return -1
}

// MemberDecoration returns the first literal of decoration dec on a struct member.
func (m *Module) MemberDecoration(structID, member uint32, dec Decoration) (uint32, bool) {
	for _, inst := range m.Instructions {
		if inst.Opcode != OpMemberDecorate || len(inst.Words) < 3 {
			continue
		}
		if inst.Words[0] != structID || inst.Words[1] != member || Decoration(inst.Words[2]) != dec {
			continue
		}
		if len(inst.Words) > 3 {
			return inst.Words[3], true
		}
		return 0, true
	}
	return 0, false
}

// hasMemberDecoration reports whether any member of structID carries dec.
func (m *Module) hasMemberDecoration(structID uint32, dec Decoration) bool {
	for _, inst := range m.Instructions {
		if inst.Opcode == OpMemberDecorate && len(inst.Words) >= 3 &&
			inst.Words[0] == structID && Decoration(inst.Words[2]) == dec {
			return true
		}
	}
	return false
}
