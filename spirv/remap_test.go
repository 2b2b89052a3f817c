package spirv_test

import (
	"slices"
	"testing"

	"github.com/gogpu/shadercross/internal/spirvtest"
	"github.com/gogpu/shadercross/spirv"
)

func TestRemapBuiltinToUniform(t *testing.T) {
	fx := spirvtest.Compute(spirvtest.GLSL450)
	m := fx.Module()
	old := fx.IDs["gl_NumWorkGroups"]
	bound := m.Bound

	v := m.RemapBuiltinToUniform(spirv.BuiltInNumWorkgroups, "SPIRV_Cross_NumWorkgroups")
	if v == 0 {
		t.Fatal("RemapBuiltinToUniform returned 0 for a shader reading the builtin")
	}
	if v < bound || m.Bound <= v {
		t.Errorf("variable %d is outside the new ids [%d, %d)", v, bound, m.Bound)
	}

	ubos := m.Resources().UniformBuffers
	if len(ubos) != 1 || ubos[0].ID != v {
		t.Fatalf("uniform buffers = %+v, want the remapped variable %d", ubos, v)
	}
	if ubos[0].Name != "SPIRV_Cross_NumWorkgroups" {
		t.Errorf("block name = %q", ubos[0].Name)
	}
	if got := m.MemberName(ubos[0].BaseTypeID, 0); got != "count" {
		t.Errorf("member name = %q, want count", got)
	}
	if off, ok := m.MemberDecoration(ubos[0].BaseTypeID, 0, spirv.DecorationOffset); !ok || off != 0 {
		t.Errorf("member offset = %d, %v; want 0, true", off, ok)
	}

	// Every read now goes through the block. The builtin stays declared.
	var chains, loads int
	for _, inst := range m.Instructions {
		switch inst.Opcode {
		case spirv.OpLoad, spirv.OpAccessChain:
			if inst.Words[2] == old {
				t.Errorf("%s still reads the builtin", inst.Opcode)
			}
			if inst.Opcode == spirv.OpAccessChain && inst.Words[2] == v {
				chains++
			}
			if inst.Opcode == spirv.OpLoad {
				loads++
			}
		}
	}
	if chains != 2 || loads != 2 {
		t.Errorf("%d access chains into the block and %d loads, want 2 and 2", chains, loads)
	}
	if _, ok := m.VariableStorageClass(old); !ok {
		t.Error("builtin variable was removed")
	}

	words := m.Words()
	if _, err := spirv.Parse(words); err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if words[3] != m.Bound {
		t.Errorf("header bound = %d, want %d", words[3], m.Bound)
	}
}

func TestRemapBuiltinToUniform_RebasedChain(t *testing.T) {
	fx := spirvtest.Compute(spirvtest.GLSL450)
	m := fx.Module()
	v := m.RemapBuiltinToUniform(spirv.BuiltInNumWorkgroups, "NumWorkgroups")

	for _, inst := range m.Instructions {
		if inst.Opcode != spirv.OpAccessChain || inst.Words[1] != fx.IDs["numGroupsX"] {
			continue
		}
		if inst.Words[2] != v || len(inst.Words) != 5 {
			t.Fatalf("chain = %v, want base %d with the member index prepended", inst.Words, v)
		}
		ptr, ok := pointerOf(m, inst.Words[0])
		if !ok || ptr != spirv.StorageClassUniform {
			t.Errorf("chain result storage class = %v, %v; want Uniform", ptr, ok)
		}
		return
	}
	t.Fatal("access chain to .x not found")
}

func TestRemapBuiltinToUniform_Interface(t *testing.T) {
	tests := []struct {
		version spirv.Version
		listed  bool
	}{
		{spirv.Version1_0, false},
		{spirv.Version1_3, false},
		{spirv.Version1_4, true},
		{spirv.Version1_6, true},
	}
	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			m := spirvtest.Compute(spirvtest.GLSL450).Module()
			m.Version = tt.version
			v := m.RemapBuiltinToUniform(spirv.BuiltInNumWorkgroups, "NumWorkgroups")
			if got := slices.Contains(m.EntryPoints()[0].Interface, v); got != tt.listed {
				t.Errorf("variable in interface = %v, want %v", got, tt.listed)
			}
		})
	}
}

func TestRemapBuiltinToUniform_Unused(t *testing.T) {
	m := spirvtest.Vertex(spirvtest.GLSL450).Module()
	before := len(m.Instructions)
	if v := m.RemapBuiltinToUniform(spirv.BuiltInNumWorkgroups, "NumWorkgroups"); v != 0 {
		t.Errorf("RemapBuiltinToUniform = %d, want 0", v)
	}
	if len(m.Instructions) != before {
		t.Error("module was modified")
	}
}

func pointerOf(m *spirv.Module, typeID uint32) (spirv.StorageClass, bool) {
	for _, inst := range m.Instructions {
		if inst.Opcode == spirv.OpTypePointer && inst.Words[0] == typeID {
			return spirv.StorageClass(inst.Words[1]), true
		}
	}
	return 0, false
}
