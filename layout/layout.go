// Package layout derives bind group layouts from a compiled SPIR-V module.
//
// Descriptor sets become bind groups and bindings become layout entries,
// so a WebGPU-style pipeline layout can be created for a shader without
// restating its interface by hand.
package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shadercross/spirv"
)

// ErrUnbound is returned for a resource without a descriptor set or binding.
var ErrUnbound = errors.New("layout: resource has no binding")

// ErrUnsupportedStage is returned for execution models outside the vertex,
// fragment and compute stages.
var ErrUnsupportedStage = errors.New("layout: unsupported execution model")

// Groups maps descriptor sets to their entries, sorted by binding.
type Groups struct {
	Entries map[uint32][]gputypes.BindGroupLayoutEntry

	// Skipped lists resources a layout entry cannot describe, such as
	// storage images and subpass inputs.
	Skipped []spirv.Resource
}

// Sets returns the descriptor set numbers in ascending order.
func (g Groups) Sets() []uint32 {
	sets := make([]uint32, 0, len(g.Entries))
	for set := range g.Entries {
		sets = append(sets, set)
	}
	slices.Sort(sets)
	return sets
}

// BindGroups builds the layout of every descriptor set used by m, visible
// to the stage of the given execution model.
func BindGroups(m *spirv.Module, model spirv.ExecutionModel) (Groups, error) {
	var stage gputypes.BindGroupLayoutEntry
	if !setVisibility(&stage, model) {
		return Groups{}, fmt.Errorf("%w: %v", ErrUnsupportedStage, model)
	}

	var g Groups
	g.Entries = make(map[uint32][]gputypes.BindGroupLayoutEntry)

	res := m.Resources()

	var err error
	add := func(r spirv.Resource, fill func(*gputypes.BindGroupLayoutEntry) bool) {
		if err != nil {
			return
		}
		set, okSet := m.Decoration(r.ID, spirv.DecorationDescriptorSet)
		binding, okBinding := m.Decoration(r.ID, spirv.DecorationBinding)
		if !okSet || !okBinding {
			err = fmt.Errorf("%w: %s", ErrUnbound, r.Name)
			return
		}
		entry := gputypes.BindGroupLayoutEntry{Binding: binding, Visibility: stage.Visibility}
		if !fill(&entry) {
			g.Skipped = append(g.Skipped, r)
			return
		}
		g.Entries[set] = append(g.Entries[set], entry)
	}

	for _, r := range res.UniformBuffers {
		add(r, func(e *gputypes.BindGroupLayoutEntry) bool {
			e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
			return true
		})
	}
	for _, r := range res.StorageBuffers {
		add(r, func(e *gputypes.BindGroupLayoutEntry) bool {
			e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}
			if m.NonWritable(r) {
				e.Buffer.Type = gputypes.BufferBindingTypeReadOnlyStorage
			}
			return true
		})
	}
	for _, r := range slices.Concat(res.SampledImages, res.SeparateImages) {
		add(r, func(e *gputypes.BindGroupLayoutEntry) bool {
			return setTexture(e, m, r)
		})
	}
	for _, r := range res.SeparateSamplers {
		add(r, func(e *gputypes.BindGroupLayoutEntry) bool {
			e.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
			return true
		})
	}
	for _, r := range slices.Concat(res.StorageImages, res.SubpassInputs, res.AtomicCounters, res.AccelerationStructures) {
		add(r, func(*gputypes.BindGroupLayoutEntry) bool { return false })
	}
	if err != nil {
		return Groups{}, err
	}

	for set, entries := range g.Entries {
		slices.SortFunc(entries, func(a, b gputypes.BindGroupLayoutEntry) int {
			return int(a.Binding) - int(b.Binding)
		})
		g.Entries[set] = entries
	}
	return g, nil
}

func setVisibility(e *gputypes.BindGroupLayoutEntry, model spirv.ExecutionModel) bool {
	switch model {
	case spirv.ExecutionModelVertex:
		e.Visibility = gputypes.ShaderStageVertex
	case spirv.ExecutionModelFragment:
		e.Visibility = gputypes.ShaderStageFragment
	case spirv.ExecutionModelGLCompute:
		e.Visibility = gputypes.ShaderStageCompute
	default:
		return false
	}
	return true
}

func setTexture(e *gputypes.BindGroupLayoutEntry, m *spirv.Module, r spirv.Resource) bool {
	dim, ok := m.ImageDim(r.BaseTypeID)
	if !ok {
		return false
	}
	tex := &gputypes.TextureBindingLayout{SampleType: gputypes.TextureSampleTypeFloat}
	switch dim {
	case spirv.Dim1D:
		tex.ViewDimension = gputypes.TextureViewDimension1D
	case spirv.Dim2D:
		tex.ViewDimension = gputypes.TextureViewDimension2D
	case spirv.Dim3D:
		tex.ViewDimension = gputypes.TextureViewDimension3D
	default:
		return false
	}
	e.Texture = tex
	return true
}
