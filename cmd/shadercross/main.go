// Command shadercross cross-compiles a GLSL or HLSL shader.
//
// Usage:
//
//	shadercross [options] <input>
//
// Examples:
//
//	shadercross -conv glsl2msl -entry stageMain shader.frag
//	shadercross -conv glsl2hlsl -target-version 50 -o shader.hlsl shader.vert
//	shadercross -conv glsl2spirv -o shader.spv shader.comp
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/gogpu/shadercross"
	"github.com/gogpu/shadercross/layout"
	"github.com/gogpu/shadercross/spirv"
)

var (
	output        = flag.String("o", "", "output file (default: stdout)")
	stageName     = flag.String("stage", "", "shader stage (default: from the file extension)")
	conversion    = flag.String("conv", "glsl2glsl", "conversion: glsl2glsl, glsl2msl, glsl2hlsl, glsl2spirv, hlsl2...")
	entry         = flag.String("entry", "main", "entry point name of the output")
	includeSPIRV  = flag.Bool("spv", false, "also write the SPIR-V module to <output>.spv")
	optimize      = flag.Bool("O", true, "optimize SPIR-V")
	optimizeSize  = flag.Bool("Os", false, "optimize SPIR-V for size")
	disasm        = flag.Bool("disasm", false, "print the SPIR-V disassembly to stderr")
	validate      = flag.Bool("validate", true, "validate SPIR-V")
	targetVersion = flag.Int("target-version", 350, "target version; the shader model for HLSL")
	es            = flag.Bool("es", false, "emit GLSL ES")
	mslIOS        = flag.Bool("msl-ios", false, "emit MSL for iOS instead of macOS")
	printLayout   = flag.Bool("layout", false, "print the bind group layout to stderr")
	verbose       = flag.Bool("v", false, "log pipeline steps")
	version       = flag.Bool("version", false, "print version")
)

const shadercrossVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("shadercross version %s\n", shadercrossVersion)
		return
	}
	if *verbose {
		shadercross.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	inputPath := args[0]

	in, err := buildInput(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	in.SourceCode = string(source)

	res := shadercross.Compile(in)
	if res.Logs != "" {
		fmt.Fprint(os.Stderr, res.Logs)
	}
	if res.Failed() {
		if res.Errors != "" {
			fmt.Fprintf(os.Stderr, "Compilation error: %s\n", res.Errors)
		}
		os.Exit(1)
	}
	if *disasm {
		fmt.Fprint(os.Stderr, res.Disassembly)
	}
	if *printLayout {
		if err := writeLayout(res.SPIRV); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := writeOutput(in, res); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func buildInput(path string) (shadercross.Input, error) {
	in := shadercross.NewInput("", *entry)

	name := *stageName
	if name == "" {
		name = filepath.Ext(path)
	}
	stage, err := shadercross.ParseShaderStage(name)
	if err != nil {
		return in, err
	}
	conv, err := shadercross.ParseConversionType(*conversion)
	if err != nil {
		return in, err
	}

	in.Stage = stage
	in.ConversionType = conv
	in.Config = shadercross.Config{
		IncludeSPIRV:  *includeSPIRV || *printLayout,
		Optimize:      *optimize,
		OptimizeSize:  *optimizeSize,
		Disassemble:   *disasm,
		Validate:      *validate,
		OutputVersion: *targetVersion,
		UseOpenGLES:   *es,
		TargetIOS:     *mslIOS,
	}
	return in, nil
}

func writeOutput(in shadercross.Input, res shadercross.Result) error {
	spirvOnly := in.ConversionType == shadercross.GLSLToSPIRV || in.ConversionType == shadercross.HLSLToSPIRV

	if *output == "" {
		if !spirvOnly {
			_, err := fmt.Print(res.OutputCode)
			return err
		}
		if term.IsTerminal(int(os.Stdout.Fd())) {
			text, err := spirv.DisassembleWords(res.SPIRV)
			if err != nil {
				return err
			}
			_, err = fmt.Print(text)
			return err
		}
		_, err := os.Stdout.Write(spirv.WordsToBytes(res.SPIRV))
		return err
	}

	if spirvOnly {
		return os.WriteFile(*output, spirv.WordsToBytes(res.SPIRV), 0o644)
	}
	if err := os.WriteFile(*output, []byte(res.OutputCode), 0o644); err != nil {
		return err
	}
	if *includeSPIRV {
		return os.WriteFile(*output+".spv", spirv.WordsToBytes(res.SPIRV), 0o644)
	}
	return nil
}

func writeLayout(words []uint32) error {
	m, err := spirv.Parse(words)
	if err != nil {
		return err
	}
	eps := m.EntryPoints()
	if len(eps) == 0 {
		return spirv.ErrEntryPointNotFound
	}
	groups, err := layout.BindGroups(m, eps[0].Model)
	if err != nil {
		return err
	}
	for _, set := range groups.Sets() {
		for _, e := range groups.Entries[set] {
			kind := "unknown"
			switch {
			case e.Buffer != nil:
				kind = fmt.Sprintf("buffer %v", e.Buffer.Type)
			case e.Texture != nil:
				kind = fmt.Sprintf("texture %v", e.Texture.ViewDimension)
			case e.Sampler != nil:
				kind = fmt.Sprintf("sampler %v", e.Sampler.Type)
			}
			fmt.Fprintf(os.Stderr, "group %d binding %d: %s\n", set, e.Binding, kind)
		}
	}
	for _, r := range groups.Skipped {
		fmt.Fprintf(os.Stderr, "skipped %s (id %d)\n", r.Name, r.ID)
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: shadercross [options] <input>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  shadercross -conv glsl2msl -entry stageMain shader.frag\n")
	fmt.Fprintf(os.Stderr, "  shadercross -conv glsl2hlsl -target-version 50 -o out.hlsl shader.vert\n")
	fmt.Fprintf(os.Stderr, "  shadercross -conv glsl2spirv -o shader.spv shader.comp\n")
}
