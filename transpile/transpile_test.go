package transpile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/shadercross"
)

// echoCompiler upper-cases the source, and rejects sources containing
// "error".
type echoCompiler struct {
	mu     sync.Mutex
	inputs []shadercross.Input
}

func (c *echoCompiler) Compile(in shadercross.Input) shadercross.Result {
	c.mu.Lock()
	c.inputs = append(c.inputs, in)
	c.mu.Unlock()
	if strings.Contains(in.SourceCode, "error") {
		return shadercross.Result{Logs: "ERROR: 0:1: syntax error"}
	}
	return shadercross.Result{Success: true, OutputCode: strings.ToUpper(in.SourceCode)}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPreset(t *testing.T) {
	tests := []struct {
		api     RendererAPI
		conv    shadercross.ConversionType
		entry   string
		suffix  string
		version int
	}{
		{Vulkan, shadercross.GLSLToGLSL, "main", ".glsl", 0},
		{D3D11, shadercross.GLSLToHLSL, "main", ".hlsl", 50},
		{D3D12, shadercross.GLSLToHLSL, "main", ".hlsl", 60},
		{Metal, shadercross.GLSLToMSL, "stageMain", ".metal", 0},
	}
	for _, tt := range tests {
		t.Run(tt.api.String(), func(t *testing.T) {
			s, err := Preset(tt.api)
			if err != nil {
				t.Fatalf("Preset: %v", err)
			}
			if s.Conversion != tt.conv || s.EntryPoint != tt.entry || s.Suffix != tt.suffix || s.OutputVersion != tt.version {
				t.Errorf("Preset(%v) = %+v", tt.api, s)
			}
		})
	}
	if _, err := Preset(RendererAPI(9)); !errors.Is(err, ErrUnknownAPI) {
		t.Errorf("Preset(9) error = %v", err)
	}
}

func TestTranspileShader(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "ok.vert", "void main() {}")
	dst := filepath.Join(dir, "ok.out")

	tr := &Transpiler{Compiler: &echoCompiler{}, OutputDir: dir}
	if err := tr.TranspileShader(src, dst, shadercross.NewInput("", "main")); err != nil {
		t.Fatalf("TranspileShader: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "VOID MAIN() {}" {
		t.Errorf("output = %q", got)
	}
}

func TestTranspileShader_Failures(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.frag", "error")
	good := writeFile(t, dir, "good.frag", "ok")

	tests := []struct {
		name string
		src  string
		dst  string
		op   string
		is   error
	}{
		{"missing source", filepath.Join(dir, "missing.frag"), filepath.Join(dir, "a.out"), "read", fs.ErrNotExist},
		{"compile failure", bad, filepath.Join(dir, "b.out"), "compile", nil},
		{"unwritable target", good, filepath.Join(dir, "no", "such", "dir", "c.out"), "write", fs.ErrNotExist},
	}

	tr := &Transpiler{Compiler: &echoCompiler{}, OutputDir: dir}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tr.TranspileShader(tt.src, tt.dst, shadercross.NewInput("", "main"))
			var fe *FileError
			if !errors.As(err, &fe) {
				t.Fatalf("error = %v, want *FileError", err)
			}
			if fe.Op != tt.op {
				t.Errorf("Op = %q, want %q", fe.Op, tt.op)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error = %v, want %v", err, tt.is)
			}
			if _, err := os.Stat(tt.dst); !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("%s was written", tt.dst)
			}
		})
	}
}

func TestTranspileShaders(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "metal")
	descs := []Desc{
		{Name: writeFile(t, src, "basic.vert", "vertex"), Stage: shadercross.StageVertex},
		{Name: writeFile(t, src, "basic.frag", "fragment"), Stage: shadercross.StageFragment},
	}

	c := &echoCompiler{}
	tr := &Transpiler{Compiler: c, OutputDir: out}
	if err := tr.TranspileShaders(context.Background(), descs, Metal); err != nil {
		t.Fatalf("TranspileShaders: %v", err)
	}

	for name, want := range map[string]string{"basic.vert.metal": "VERTEX", "basic.frag.metal": "FRAGMENT"} {
		got, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Errorf("read %s: %v", name, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}

	if len(c.inputs) != 2 {
		t.Fatalf("%d compiles, want 2", len(c.inputs))
	}
	for _, in := range c.inputs {
		if in.ConversionType != shadercross.GLSLToMSL || in.EntryPoint != "stageMain" {
			t.Errorf("input = %v/%q", in.ConversionType, in.EntryPoint)
		}
		wantStage := shadercross.StageVertex
		if strings.Contains(in.SourceCode, "fragment") {
			wantStage = shadercross.StageFragment
		}
		if in.Stage != wantStage {
			t.Errorf("stage = %v, want %v", in.Stage, wantStage)
		}
	}
}

func TestTranspileShaders_Failure(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	bad := writeFile(t, src, "bad.comp", "error")
	descs := []Desc{{Name: bad, Stage: shadercross.StageCompute}}

	tr := &Transpiler{Compiler: &echoCompiler{}, OutputDir: out}
	err := tr.TranspileShaders(context.Background(), descs, D3D12)
	var fe *FileError
	if !errors.As(err, &fe) || fe.Path != bad {
		t.Fatalf("error = %v, want a *FileError naming %s", err, bad)
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("error %q lacks the diagnostics", err)
	}
}

func TestTranspileShaders_Canceled(t *testing.T) {
	src := t.TempDir()
	descs := []Desc{{Name: writeFile(t, src, "a.vert", "x"), Stage: shadercross.StageVertex}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &echoCompiler{}
	tr := &Transpiler{Compiler: c, OutputDir: t.TempDir()}
	if err := tr.TranspileShaders(ctx, descs, Vulkan); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(c.inputs) != 0 {
		t.Error("compiled after cancellation")
	}
}
