// spvdis - SPIR-V disassembler
// Prints a SPIR-V binary as .spvasm text, or its resources with -resources.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gogpu/shadercross/spirv"
)

var resources = flag.Bool("resources", false, "list the module's resources instead of disassembling")

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Println("Usage: spvdis [-resources] <file.spv>")
		return
	}
	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m, err := spirv.ParseBytes(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !*resources {
		fmt.Print(spirv.Disassemble(m))
		return
	}

	for _, ep := range m.EntryPoints() {
		fmt.Printf("entry %s %s\n", ep.Model, ep.Name)
	}
	res := m.Resources()
	for _, group := range []struct {
		kind string
		list []spirv.Resource
	}{
		{"uniform buffer", res.UniformBuffers},
		{"storage buffer", res.StorageBuffers},
		{"push constant", res.PushConstantBuffers},
		{"stage input", res.StageInputs},
		{"stage output", res.StageOutputs},
		{"sampled image", res.SampledImages},
		{"separate image", res.SeparateImages},
		{"separate sampler", res.SeparateSamplers},
		{"storage image", res.StorageImages},
		{"subpass input", res.SubpassInputs},
		{"accel struct", res.AccelerationStructures},
	} {
		for _, r := range group.list {
			fmt.Printf("%-16s %%%d %s", group.kind, r.ID, r.Name)
			if loc, ok := m.Decoration(r.ID, spirv.DecorationLocation); ok {
				fmt.Printf(" location=%d", loc)
			}
			if set, ok := m.Decoration(r.ID, spirv.DecorationDescriptorSet); ok {
				fmt.Printf(" set=%d", set)
			}
			if binding, ok := m.Decoration(r.ID, spirv.DecorationBinding); ok {
				fmt.Printf(" binding=%d", binding)
			}
			fmt.Println()
		}
	}
}
