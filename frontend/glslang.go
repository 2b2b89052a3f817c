package frontend

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/gogpu/shadercross/spirv"
)

// glslangValidator exit statuses.
const (
	exitCompileFailed = 2
	exitLinkFailed    = 3
)

// Glslang is the Toolchain backed by the glslangValidator reference compiler.
type Glslang struct {
	Bin string

	workDir string
	seq     int
}

// NewGlslang returns a toolchain that runs glslangValidator from PATH.
func NewGlslang() *Glslang { return &Glslang{Bin: "glslangValidator"} }

// Initialize creates the private work directory of the scope.
func (g *Glslang) Initialize() error {
	dir, err := os.MkdirTemp("", "shadercross-glslang-")
	if err != nil {
		return err
	}
	g.workDir = dir
	g.seq = 0
	return nil
}

// Finalize removes the work directory and every file written in it.
func (g *Glslang) Finalize() {
	if g.workDir == "" {
		return
	}
	if err := os.RemoveAll(g.workDir); err != nil {
		slogger().Warn("frontend: remove work dir", "dir", g.workDir, "error", err)
	}
	g.workDir = ""
}

type glslangUnit struct {
	shader *Shader
	limits string
	log    string
	linked bool
}

func (u *glslangUnit) InfoLog() string { return u.log }

type glslangProgram struct {
	unit *glslangUnit
}

func (p *glslangProgram) InfoLog() string { return p.unit.log }

// Parse validates the shader. glslangValidator parses and links in one run,
// so the link verdict is recorded on the unit for Link to report.
func (g *Glslang) Parse(shader *Shader, limits ResourceLimits) (Unit, bool, error) {
	if g.workDir == "" {
		return nil, false, errors.New("frontend: glslang used outside of a process scope")
	}
	if !shader.Stage.Valid() {
		return nil, false, fmt.Errorf("frontend: unknown stage %v", shader.Stage)
	}
	conf, err := g.writeLimits(limits)
	if err != nil {
		return nil, false, err
	}

	unit := &glslangUnit{shader: shader, limits: conf}
	out := g.output()
	log, status, err := g.run(shader, conf, out, nil)
	unit.log = log
	switch {
	case err != nil:
		return nil, false, err
	case status == exitCompileFailed:
		return unit, false, nil
	case status == exitLinkFailed:
		return unit, true, nil
	case status != 0:
		return nil, false, fmt.Errorf("%s\nglslangValidator exited with status %d", log, status)
	}
	unit.linked = true
	return unit, true, nil
}

// Link reports the link verdict recorded by Parse.
func (g *Glslang) Link(u Unit) (Program, bool, error) {
	unit, ok := u.(*glslangUnit)
	if !ok {
		return nil, false, fmt.Errorf("frontend: unit %T was not produced by glslang", u)
	}
	return &glslangProgram{unit: unit}, unit.linked, nil
}

// Lower compiles the program to SPIR-V with the requested lowering flags.
func (g *Glslang) Lower(p Program, stage Stage, opts LowerOptions) (*Lowered, error) {
	prog, ok := p.(*glslangProgram)
	if !ok {
		return nil, fmt.Errorf("frontend: program %T was not produced by glslang", p)
	}
	if prog.unit.shader.Stage != stage {
		return nil, fmt.Errorf("frontend: program has no %v stage", stage)
	}

	out := g.output()
	log, status, err := g.run(prog.unit.shader, prog.unit.limits, out, lowerArgs(opts))
	if err != nil {
		return nil, err
	}
	if status != 0 {
		return nil, fmt.Errorf("%s\nglslangValidator exited with status %d while lowering", log, status)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("unable to read output %q: %w", out, err)
	}
	words, err := spirv.BytesToWords(data)
	if err != nil {
		return nil, err
	}

	lowered := &Lowered{Words: words, Log: log}
	if opts.Disassemble {
		text, err := spirv.DisassembleWords(words)
		if err != nil {
			return nil, err
		}
		lowered.Disassembly = text
	}
	return lowered, nil
}

func (g *Glslang) writeLimits(limits ResourceLimits) (string, error) {
	g.seq++
	path := filepath.Join(g.workDir, "limits"+strconv.Itoa(g.seq)+".conf")
	if err := os.WriteFile(path, []byte(limits.Conf()), 0o600); err != nil {
		return "", fmt.Errorf("frontend: write resource limits: %w", err)
	}
	return path, nil
}

func (g *Glslang) output() string {
	g.seq++
	return filepath.Join(g.workDir, "shader"+strconv.Itoa(g.seq)+".spv")
}

// run invokes glslangValidator and returns its combined output. A non-zero
// exit status is returned as status, not as an error.
func (g *Glslang) run(shader *Shader, conf, out string, extra []string) (string, int, error) {
	args := append(compileArgs(shader, out), extra...)
	if conf != "" {
		args = append(args, conf)
	}

	cmd := exec.Command(g.Bin, args...)
	cmd.Dir = g.workDir
	cmd.Stdin = bytes.NewBufferString(shader.Source)
	slogger().Debug("frontend: run", "args", cmd.Args)

	output, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return string(output), 0, nil
	case errors.As(err, &exitErr):
		return string(output), exitErr.ExitCode(), nil
	default:
		return "", 0, fmt.Errorf("%s\nfailed to run %v: %w", output, cmd.Args, err)
	}
}

// compileArgs maps a shader to glslangValidator arguments.
func compileArgs(shader *Shader, out string) []string {
	env := shader.Env
	args := []string{"--stdin", "-S", shader.Stage.String()}
	if shader.Dialect == DialectHLSL {
		args = append(args, "-D")
	}
	args = append(args,
		"--client", "vulkan"+strconv.Itoa(env.DialectVersion),
		"--target-env", vulkanVersion(env.ClientVersion),
		"--target-env", spirvVersion(env.TargetVersion),
	)
	if shader.AutoMapLocations {
		args = append(args, "--auto-map-locations")
	}
	if shader.AutoMapBindings {
		args = append(args, "--auto-map-bindings")
	}
	return append(args, "-o", out)
}

func lowerArgs(opts LowerOptions) []string {
	var args []string
	if opts.DisableOptimizer {
		args = append(args, "-Od")
	}
	if opts.OptimizeSize {
		args = append(args, "-Os")
	}
	if opts.Validate {
		args = append(args, "--spirv-val")
	}
	return args
}

// vulkanVersion formats 110 as "vulkan1.1".
func vulkanVersion(v int) string {
	return fmt.Sprintf("vulkan%d.%d", v/100, v/10%10)
}

// spirvVersion formats 100 as "spirv1.0".
func spirvVersion(v int) string {
	return fmt.Sprintf("spirv%d.%d", v/100, v/10%10)
}
