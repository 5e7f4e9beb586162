package core

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/lumen3d/lumen/gpu"
)

// Instance describes a Vulkan instance and supporting methods.
// Once created it is ready to use.
type Instance interface {
	// Profiles takes a fresh capability snapshot of every physical
	// device visible to the instance. Present support and surface
	// capabilities are resolved against the surface when one is set,
	// otherwise the probe runs headless.
	Profiles() ([]gpu.DeviceProfile, error)

	// SetSurface sets the window surface for rendering
	SetSurface(unsafe.Pointer)

	// Surface returns the window surface, if it's not set
	// it should return a valid but empty surface
	Surface() vk.Surface

	// Extensions returns the instance extensions in use
	Extensions() []string

	// Inner returns the inner handle of the underlying API
	Inner() interface{}

	// Destroy destroys internal members
	Destroy()
}

// Renderer describes the rendering machinery.
// It's created only with internal values set,
// it needs to be initialised with Initialise() before use.
type Renderer interface {
	// Initialise selects a device, negotiates the swapchain and sets
	// up the configured rendering pipeline
	Initialise() error

	// DeviceIsSuitable checks if the device given is suitable
	// for the rendering pipeline. If not suitable string contains the reason
	DeviceIsSuitable(gpu.DeviceProfile) (bool, string)

	// Destroy destroys internal members
	Destroy()
}

// Shader describes a shader module loaded into a device.
type Shader interface {
	// Type returns the type of the shader
	Type() ShaderType

	// Name returns the name the shader was loaded under
	Name() string

	// ShaderModule is an accessor to the underlying API module handle
	ShaderModule() interface{}

	// Destroy destroys internal members
	Destroy()
}

// ShaderType represents the type of shader thats loaded
type ShaderType int

// Identifies shader objects with their types
const (
	VertexShaderType ShaderType = iota
	FragmentShaderType
	UnknownShaderType
)

// ShaderData is one compiled SPIR-V blob ready for module creation.
type ShaderData struct {
	Name string
	Type ShaderType
	Code []byte
}

// ShaderSource yields compiled shaders from some backing store.
type ShaderSource interface {
	Shaders() ([]ShaderData, error)
}
