package spirv

import "fmt"

// Resource is a global variable that is part of a shader's interface.
type Resource struct {
	// ID is the result id of the OpVariable.
	ID uint32
	// TypeID is the type the variable points to, arrays included.
	TypeID uint32
	// BaseTypeID is TypeID with every array level stripped.
	BaseTypeID uint32
	// Name is the debug name of the resource. For buffer blocks it is the
	// name of the block type, which is what other stages and the host see.
	Name string
}

// Resources groups a module's interface variables by the kind of binding
// they need.
type Resources struct {
	UniformBuffers      []Resource
	StorageBuffers      []Resource
	StageInputs         []Resource
	StageOutputs        []Resource
	BuiltinInputs       []Resource
	BuiltinOutputs      []Resource
	SubpassInputs       []Resource
	StorageImages       []Resource
	SampledImages       []Resource
	SeparateImages      []Resource
	SeparateSamplers    []Resource
	PushConstantBuffers []Resource
	AtomicCounters      []Resource

	AccelerationStructures []Resource
}

// Resources classifies every module-scope variable.
func (m *Module) Resources() Resources {
	var res Resources
	for _, v := range m.globals() {
		m.classify(&res, v)
	}
	return res
}

type global struct {
	id           uint32
	pointerType  uint32
	storageClass StorageClass
}

func (m *Module) globals() []global {
	var out []global
	for _, inst := range m.Instructions {
		if inst.Opcode == OpFunction {
			break
		}
		if inst.Opcode != OpVariable || len(inst.Words) < 3 {
			continue
		}
		out = append(out, global{
			id:           inst.Words[1],
			pointerType:  inst.Words[0],
			storageClass: StorageClass(inst.Words[2]),
		})
	}
	return out
}

func (m *Module) classify(res *Resources, v global) {
	typeID := m.pointee(v.pointerType)
	baseID := m.stripArrays(typeID)
	base, _ := m.definition(baseID)

	r := Resource{ID: v.id, TypeID: typeID, BaseTypeID: baseID, Name: m.Name(v.id)}

	switch v.storageClass {
	case StorageClassInput, StorageClassOutput:
		builtin := m.HasDecoration(v.id, DecorationBuiltIn) ||
			(base.Opcode == OpTypeStruct && m.hasMemberDecoration(baseID, DecorationBuiltIn))
		switch {
		case v.storageClass == StorageClassInput && builtin:
			res.BuiltinInputs = append(res.BuiltinInputs, r)
		case v.storageClass == StorageClassInput:
			res.StageInputs = append(res.StageInputs, r)
		case builtin:
			res.BuiltinOutputs = append(res.BuiltinOutputs, r)
		default:
			res.StageOutputs = append(res.StageOutputs, r)
		}

	case StorageClassUniform:
		r.Name = m.blockName(r)
		switch {
		case m.HasDecoration(baseID, DecorationBufferBlock):
			res.StorageBuffers = append(res.StorageBuffers, r)
		case m.HasDecoration(baseID, DecorationBlock):
			res.UniformBuffers = append(res.UniformBuffers, r)
		}

	case StorageClassStorageBuffer:
		r.Name = m.blockName(r)
		res.StorageBuffers = append(res.StorageBuffers, r)

	case StorageClassPushConstant:
		r.Name = m.blockName(r)
		res.PushConstantBuffers = append(res.PushConstantBuffers, r)

	case StorageClassAtomicCounter:
		res.AtomicCounters = append(res.AtomicCounters, r)

	case StorageClassUniformConstant:
		switch base.Opcode {
		case OpTypeImage:
			switch {
			case len(base.Words) > 2 && Dim(base.Words[2]) == DimSubpassData:
				res.SubpassInputs = append(res.SubpassInputs, r)
			case len(base.Words) > 6 && base.Words[6] == 2:
				res.StorageImages = append(res.StorageImages, r)
			default:
				res.SeparateImages = append(res.SeparateImages, r)
			}
		case OpTypeSampler:
			res.SeparateSamplers = append(res.SeparateSamplers, r)
		case OpTypeSampledImage:
			res.SampledImages = append(res.SampledImages, r)
		case OpTypeAccelerationStructureKHR:
			res.AccelerationStructures = append(res.AccelerationStructures, r)
		}
	}
}

// blockName prefers the name of the block type and falls back to the
// variable name, then to an id-derived name.
func (m *Module) blockName(r Resource) string {
	if name := m.Name(r.BaseTypeID); name != "" {
		return name
	}
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("_%d", r.ID)
}

// pointee returns the type a pointer type points to.
func (m *Module) pointee(pointerType uint32) uint32 {
	inst, ok := m.definition(pointerType)
	if !ok || inst.Opcode != OpTypePointer || len(inst.Words) < 3 {
		return pointerType
	}
	return inst.Words[2]
}

func (m *Module) stripArrays(typeID uint32) uint32 {
	for {
		inst, ok := m.definition(typeID)
		if !ok || (inst.Opcode != OpTypeArray && inst.Opcode != OpTypeRuntimeArray) || len(inst.Words) < 2 {
			return typeID
		}
		typeID = inst.Words[1]
	}
}

// VariableStorageClass returns the storage class of the global variable id.
func (m *Module) VariableStorageClass(id uint32) (StorageClass, bool) {
	for _, v := range m.globals() {
		if v.id == id {
			return v.storageClass, true
		}
	}
	return 0, false
}

// BuiltinVariable returns the first variable of the given storage class
// decorated with builtin b, or 0 when there is none.
func (m *Module) BuiltinVariable(sc StorageClass, b BuiltIn) uint32 {
	for _, v := range m.globals() {
		if v.storageClass != sc {
			continue
		}
		if value, ok := m.Decoration(v.id, DecorationBuiltIn); ok && BuiltIn(value) == b {
			return v.id
		}
	}
	return 0
}

// ImageDim returns the dimensionality of an image or sampled image type.
func (m *Module) ImageDim(typeID uint32) (Dim, bool) {
	inst, ok := m.definition(typeID)
	if ok && inst.Opcode == OpTypeSampledImage && len(inst.Words) > 1 {
		inst, ok = m.definition(inst.Words[1])
	}
	if !ok || inst.Opcode != OpTypeImage || len(inst.Words) < 3 {
		return 0, false
	}
	return Dim(inst.Words[2]), true
}

// NonWritable reports whether the buffer r is read-only: either the
// variable or every member of its block is decorated NonWritable.
func (m *Module) NonWritable(r Resource) bool {
	if m.HasDecoration(r.ID, DecorationNonWritable) {
		return true
	}
	inst, ok := m.definition(r.BaseTypeID)
	if !ok || inst.Opcode != OpTypeStruct || len(inst.Words) < 2 {
		return false
	}
	for i := range len(inst.Words) - 1 {
		if _, ok := m.MemberDecoration(r.BaseTypeID, uint32(i), DecorationNonWritable); !ok {
			return false
		}
	}
	return true
}
