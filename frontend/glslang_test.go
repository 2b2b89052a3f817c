package frontend

import (
	"os/exec"
	"strings"
	"testing"
)

func TestCompileArgs(t *testing.T) {
	tests := []struct {
		name   string
		shader Shader
		want   string
	}{
		{
			name: "glsl vertex",
			shader: Shader{
				Stage: StageVertex, Dialect: DialectGLSL, Env: DefaultEnvironment(),
				AutoMapLocations: true, AutoMapBindings: true,
			},
			want: "--stdin -S vert --client vulkan100 --target-env vulkan1.1 --target-env spirv1.0 --auto-map-locations --auto-map-bindings -o out.spv",
		},
		{
			name:   "hlsl compute",
			shader: Shader{Stage: StageCompute, Dialect: DialectHLSL, Env: DefaultEnvironment()},
			want:   "--stdin -S comp -D --client vulkan100 --target-env vulkan1.1 --target-env spirv1.0 -o out.spv",
		},
		{
			name:   "mesh",
			shader: Shader{Stage: StageMesh, Dialect: DialectGLSL, Env: DefaultEnvironment()},
			want:   "--stdin -S mesh --client vulkan100 --target-env vulkan1.1 --target-env spirv1.0 -o out.spv",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(compileArgs(&tt.shader, "out.spv"), " ")
			if got != tt.want {
				t.Errorf("compileArgs =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestLowerArgs(t *testing.T) {
	tests := []struct {
		opts LowerOptions
		want string
	}{
		{LowerOptions{}, ""},
		{LowerOptions{DisableOptimizer: true}, "-Od"},
		{LowerOptions{OptimizeSize: true, Validate: true}, "-Os --spirv-val"},
		{LowerOptions{Disassemble: true}, ""},
	}
	for _, tt := range tests {
		if got := strings.Join(lowerArgs(tt.opts), " "); got != tt.want {
			t.Errorf("lowerArgs(%+v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func TestGlslang_OutsideScope(t *testing.T) {
	g := NewGlslang()
	if _, _, err := g.Parse(&Shader{Stage: StageVertex}, DefaultResourceLimits()); err == nil {
		t.Error("expected error when no scope is open")
	}
}

func lookupGlslang(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("glslangValidator"); err != nil {
		t.Skip("glslangValidator not available")
	}
}

func TestGlslang_Compile(t *testing.T) {
	lookupGlslang(t)

	const source = `#version 450
layout(location = 0) in vec2 inUV;
layout(location = 0) out vec4 fragColor;
layout(set = 0, binding = 0) uniform Globals { vec4 tint; } globals;
void main() { fragColor = vec4(inUV, 0.0, 1.0) * globals.tint; }
`
	out, err := NewAdapter(NewGlslang()).Compile(Request{
		Stage:   StageFragment,
		Source:  source,
		Dialect: DialectGLSL,
		Limits:  DefaultResourceLimits(),
		Lower:   LowerOptions{Disassemble: true, Validate: true},
	})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !out.Valid {
		t.Fatalf("shader rejected:\n%s", out.Log)
	}
	if len(out.SPIRV) < 5 || out.SPIRV[0] != 0x07230203 {
		t.Fatalf("output is not a SPIR-V module")
	}
	if !strings.Contains(out.Disassembly, `OpEntryPoint Fragment`) {
		t.Errorf("disassembly missing entry point:\n%s", out.Disassembly)
	}
}

func TestGlslang_ParseFailure(t *testing.T) {
	lookupGlslang(t)

	out, err := NewAdapter(NewGlslang()).Compile(Request{
		Stage:   StageVertex,
		Source:  "#version 450\nvoid main() { undeclared = 1; }\n",
		Dialect: DialectGLSL,
		Limits:  DefaultResourceLimits(),
	})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if out.Valid {
		t.Fatal("invalid shader was accepted")
	}
	if !strings.Contains(out.Log, "undeclared") {
		t.Errorf("log does not mention the error:\n%s", out.Log)
	}
}
