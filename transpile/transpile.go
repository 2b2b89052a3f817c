// Package transpile converts shader source files on disk for a renderer.
package transpile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/shadercross"
)

// RendererAPI is the graphics API a batch is transpiled for.
type RendererAPI uint8

// Renderer APIs.
const (
	Vulkan RendererAPI = iota
	D3D11
	D3D12
	Metal
)

func (api RendererAPI) String() string {
	switch api {
	case Vulkan:
		return "vulkan"
	case D3D11:
		return "d3d11"
	case D3D12:
		return "d3d12"
	case Metal:
		return "metal"
	default:
		return fmt.Sprintf("RendererAPI(%d)", api)
	}
}

// ErrUnknownAPI is returned for a renderer API without a preset.
var ErrUnknownAPI = errors.New("transpile: unknown renderer API")

// Settings are the per-API compile settings of a batch.
type Settings struct {
	Conversion shadercross.ConversionType
	EntryPoint string
	Suffix     string
	// OutputVersion overrides the default output version when non-zero.
	OutputVersion int
}

// Preset returns the settings used for api.
func Preset(api RendererAPI) (Settings, error) {
	switch api {
	case Vulkan:
		return Settings{Conversion: shadercross.GLSLToGLSL, EntryPoint: "main", Suffix: ".glsl"}, nil
	case D3D11:
		return Settings{Conversion: shadercross.GLSLToHLSL, EntryPoint: "main", Suffix: ".hlsl", OutputVersion: 50}, nil
	case D3D12:
		return Settings{Conversion: shadercross.GLSLToHLSL, EntryPoint: "main", Suffix: ".hlsl", OutputVersion: 60}, nil
	case Metal:
		return Settings{Conversion: shadercross.GLSLToMSL, EntryPoint: "stageMain", Suffix: ".metal"}, nil
	}
	return Settings{}, fmt.Errorf("%w: %v", ErrUnknownAPI, api)
}

// Desc names a source file and the stage it holds.
type Desc struct {
	Name  string
	Stage shadercross.ShaderStage
}

// FileError records a failed file and the operation that failed.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string { return e.Op + " " + e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// ShaderCompiler compiles a single request.
type ShaderCompiler interface {
	Compile(in shadercross.Input) shadercross.Result
}

// Transpiler writes the converted shaders to OutputDir.
type Transpiler struct {
	Compiler  ShaderCompiler
	OutputDir string
}

// New returns a transpiler writing to dir with the default compiler.
func New(dir string) *Transpiler {
	return &Transpiler{Compiler: shadercross.NewCompiler(), OutputDir: dir}
}

// TranspileShader compiles the file src and writes the output code to dst.
// Nothing is written when the compile fails.
func (t *Transpiler) TranspileShader(src, dst string, in shadercross.Input) error {
	source, err := os.ReadFile(src)
	if err != nil {
		return &FileError{Path: src, Op: "read", Err: err}
	}
	in.SourceCode = string(source)

	res := t.Compiler.Compile(in)
	if res.Failed() {
		return &FileError{Path: src, Op: "compile", Err: res.Err()}
	}
	if res.Logs != "" {
		shadercross.Logger().Warn("transpile: diagnostics", "file", src, "log", res.Logs)
	}

	if err := os.WriteFile(dst, []byte(res.OutputCode), 0o644); err != nil {
		return &FileError{Path: dst, Op: "write", Err: err}
	}
	return nil
}

// TranspileShaders converts every described file for api. Files are
// processed concurrently and the first failure cancels the files that
// have not started yet.
func (t *Transpiler) TranspileShaders(ctx context.Context, descs []Desc, api RendererAPI) error {
	settings, err := Preset(api)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(t.OutputDir, 0o755); err != nil {
		return &FileError{Path: t.OutputDir, Op: "mkdir", Err: err}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, d := range descs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in := shadercross.NewInput("", settings.EntryPoint)
			in.Stage = d.Stage
			in.ConversionType = settings.Conversion
			if settings.OutputVersion != 0 {
				in.Config.OutputVersion = settings.OutputVersion
			}

			dst := filepath.Join(t.OutputDir, filepath.Base(d.Name)+settings.Suffix)
			shadercross.Logger().Debug("transpile: shader", "src", d.Name, "dst", dst, "api", api)
			return t.TranspileShader(d.Name, dst, in)
		})
	}
	return g.Wait()
}
