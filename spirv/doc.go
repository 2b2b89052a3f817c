// Package spirv reads, inspects, edits and writes SPIR-V binary modules.
//
// SPIR-V is the intermediate representation produced by the frontend and
// consumed by the cross-compiling backends. The package models only the parts
// of the format the pipeline touches: the module header, the logical
// instruction stream, debug names, decorations, entry points and the global
// variables that form a shader's resource interface.
//
// # Reading and Editing
//
// A binary is parsed into a Module, edited in place and encoded again:
//
//	m, err := spirv.Parse(words)
//	if err != nil {
//		return err
//	}
//	res := m.Resources()
//	for _, ubo := range res.UniformBuffers {
//		m.SetName(ubo.ID, ubo.Name)
//	}
//	if err := m.RenameEntryPoint("main", "stageMain", spirv.ExecutionModelVertex); err != nil {
//		return err
//	}
//	words = m.Words()
//
// Inserted instructions are placed at the end of the section they belong to,
// so edited modules keep the logical layout required by consumers.
//
// # Binary Writer
//
// ModuleBuilder constructs modules programmatically, section by section:
//
//	b := spirv.NewModuleBuilder(spirv.Version1_0)
//	b.AddCapability(spirv.CapabilityShader)
//	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
//	voidType := b.AddTypeVoid()
//	funcType := b.AddTypeFunction(voidType)
//	fn := b.AddFunction(funcType, voidType, spirv.FunctionControlNone)
//	b.AddLabel()
//	b.AddReturn()
//	b.AddFunctionEnd()
//	b.AddEntryPoint(spirv.ExecutionModelFragment, fn, "main", nil)
//	binary := b.Build()
//
// # Disassembly
//
// Disassemble renders a module as SPIR-V assembly text. The output follows
// the layout of spirv-dis closely enough to be read side by side with it, but
// it is intended for diagnostics rather than reassembly.
package spirv
