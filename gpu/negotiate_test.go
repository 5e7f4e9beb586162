package gpu_test

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
	vk "github.com/vulkan-go/vulkan"

	"github.com/lumen3d/lumen/gpu"
)

// flexibleCaps leaves the extent up to the client.
func flexibleCaps() gpu.SurfaceCaps {
	return gpu.SurfaceCaps{
		CurrentExtent:  vk.Extent2D{Width: math.MaxUint32, Height: math.MaxUint32},
		MinImageExtent: vk.Extent2D{Width: 64, Height: 64},
		MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
		MinImageCount:  2,
		MaxImageCount:  8,
	}
}

func TestNegotiatePrefersBGRASrgb(t *testing.T) {
	c := qt.New(t)

	profile := &gpu.DeviceProfile{
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
			{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo},
		Caps:         flexibleCaps(),
	}
	config := gpu.Negotiate(profile, 800, 600)
	c.Assert(config.Format.Format, qt.Equals, vk.FormatB8g8r8a8Srgb)
	c.Assert(config.Format.ColorSpace, qt.Equals, vk.ColorSpaceSrgbNonlinear)
}

func TestNegotiateFormatFallsBackToFirst(t *testing.T) {
	c := qt.New(t)

	profile := &gpu.DeviceProfile{
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
			{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo},
		Caps:         flexibleCaps(),
	}
	config := gpu.Negotiate(profile, 800, 600)
	c.Assert(config.Format.Format, qt.Equals, vk.FormatR8g8b8a8Unorm)
}

func TestNegotiatePrefersMailbox(t *testing.T) {
	c := qt.New(t)

	profile := &gpu.DeviceProfile{
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		PresentModes: []vk.PresentMode{
			vk.PresentModeImmediate,
			vk.PresentModeMailbox,
			vk.PresentModeFifo,
		},
		Caps: flexibleCaps(),
	}
	config := gpu.Negotiate(profile, 800, 600)
	c.Assert(config.PresentMode, qt.Equals, vk.PresentModeMailbox)
}

func TestNegotiateFallsBackToFifo(t *testing.T) {
	c := qt.New(t)

	profile := &gpu.DeviceProfile{
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		// Immediate is advertised but never chosen, FIFO is the
		// guaranteed fallback even when not listed.
		PresentModes: []vk.PresentMode{vk.PresentModeImmediate},
		Caps:         flexibleCaps(),
	}
	config := gpu.Negotiate(profile, 800, 600)
	c.Assert(config.PresentMode, qt.Equals, vk.PresentModeFifo)
}

func TestNegotiateFixedExtentWinsOverFramebuffer(t *testing.T) {
	c := qt.New(t)

	caps := flexibleCaps()
	caps.CurrentExtent = vk.Extent2D{Width: 1280, Height: 720}
	profile := &gpu.DeviceProfile{
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo},
		Caps:         caps,
	}
	config := gpu.Negotiate(profile, 800, 600)
	c.Assert(config.Extent, qt.DeepEquals, vk.Extent2D{Width: 1280, Height: 720})
}

func TestNegotiateClampsExtentPerAxis(t *testing.T) {
	c := qt.New(t)

	profile := &gpu.DeviceProfile{
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo},
		Caps:         flexibleCaps(),
	}
	config := gpu.Negotiate(profile, 8000, 600)
	c.Assert(config.Extent, qt.DeepEquals, vk.Extent2D{Width: 4096, Height: 600})

	config = gpu.Negotiate(profile, 8, 600)
	c.Assert(config.Extent, qt.DeepEquals, vk.Extent2D{Width: 64, Height: 600})
}

func TestNegotiateImageCount(t *testing.T) {
	c := qt.New(t)

	profile := &gpu.DeviceProfile{
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo},
		Caps:         flexibleCaps(),
	}

	profile.Caps.MinImageCount = 2
	profile.Caps.MaxImageCount = 3
	config := gpu.Negotiate(profile, 800, 600)
	c.Assert(config.ImageCount, qt.Equals, uint32(3))

	// A max of zero means unbounded, min+1 goes through untouched.
	profile.Caps.MaxImageCount = 0
	config = gpu.Negotiate(profile, 800, 600)
	c.Assert(config.ImageCount, qt.Equals, uint32(3))

	profile.Caps.MinImageCount = 4
	profile.Caps.MaxImageCount = 4
	config = gpu.Negotiate(profile, 800, 600)
	c.Assert(config.ImageCount, qt.Equals, uint32(4))
}
