package backend

import "fmt"

// ShaderModel is a DirectX shader model in the cross-compiler's numeric
// form: major*10 + minor, so 50 is Shader Model 5.0.
type ShaderModel uint32

// Shader models accepted by the HLSL backend.
const (
	ShaderModel3_0 ShaderModel = 30
	ShaderModel4_0 ShaderModel = 40
	ShaderModel4_1 ShaderModel = 41
	ShaderModel5_0 ShaderModel = 50
	ShaderModel5_1 ShaderModel = 51
	ShaderModel6_0 ShaderModel = 60
	ShaderModel6_1 ShaderModel = 61
	ShaderModel6_2 ShaderModel = 62
	ShaderModel6_3 ShaderModel = 63
	ShaderModel6_4 ShaderModel = 64
	ShaderModel6_5 ShaderModel = 65
	ShaderModel6_6 ShaderModel = 66
	ShaderModel6_7 ShaderModel = 67
)

// String returns a human-readable representation of the shader model.
// Example: "SM 5.1", "SM 6.0"
func (sm ShaderModel) String() string {
	return fmt.Sprintf("SM %d.%d", sm.Major(), sm.Minor())
}

// Major returns the major version number.
func (sm ShaderModel) Major() uint32 { return uint32(sm) / 10 }

// Minor returns the minor version number.
func (sm ShaderModel) Minor() uint32 { return uint32(sm) % 10 }

// Valid reports whether sm is one of the known shader models.
func (sm ShaderModel) Valid() bool {
	switch sm {
	case ShaderModel3_0, ShaderModel4_0, ShaderModel4_1, ShaderModel5_0, ShaderModel5_1:
		return true
	}
	return sm >= ShaderModel6_0 && sm <= ShaderModel6_7
}

// SupportsRayTracing returns true if this shader model supports ray tracing.
// DirectX Raytracing (DXR) was introduced in Shader Model 6.3.
func (sm ShaderModel) SupportsRayTracing() bool {
	return sm >= ShaderModel6_3
}

// SupportsMeshShaders returns true if this shader model supports mesh shaders.
// Mesh and amplification shaders were introduced in Shader Model 6.5.
func (sm ShaderModel) SupportsMeshShaders() bool {
	return sm >= ShaderModel6_5
}

// SupportsCompute returns true if this shader model has the full cs_5_0
// compute feature set.
func (sm ShaderModel) SupportsCompute() bool {
	return sm >= ShaderModel5_0
}
