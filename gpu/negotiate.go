package gpu

import (
	"math"

	vk "github.com/vulkan-go/vulkan"
)

// SwapchainConfig is the negotiated swapchain shape for one
// device/surface pair. Every field is drawn from values the device
// actually advertises. It is built once at startup; a window resize
// would invalidate it, but no resize path exists yet.
type SwapchainConfig struct {
	Format      vk.SurfaceFormat
	PresentMode vk.PresentMode
	Extent      vk.Extent2D
	ImageCount  uint32
}

// Negotiate derives a concrete swapchain configuration from a
// suitable device profile. The framebuffer size only matters when the
// surface leaves the extent up to the client. Callers must have
// checked Suitable first: an empty format or present mode list is a
// precondition violation here.
func Negotiate(profile *DeviceProfile, fbWidth, fbHeight uint32) SwapchainConfig {
	return SwapchainConfig{
		Format:      chooseSurfaceFormat(profile.Formats),
		PresentMode: choosePresentMode(profile.PresentModes),
		Extent:      chooseExtent(profile.Caps, fbWidth, fbHeight),
		ImageCount:  chooseImageCount(profile.Caps),
	}
}

// chooseSurfaceFormat takes the first 8-bit BGRA/sRGB-nonlinear entry,
// or the first advertised format when none matches. No further
// ranking.
func chooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, format := range formats {
		if format.Format == vk.FormatB8g8r8a8Srgb && format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return format
		}
	}
	return formats[0]
}

// choosePresentMode prefers mailbox, falling back to FIFO which every
// conformant driver must support.
func choosePresentMode(modes []vk.PresentMode) vk.PresentMode {
	for _, mode := range modes {
		if mode == vk.PresentModeMailbox {
			return mode
		}
	}
	return vk.PresentModeFifo
}

// chooseExtent uses the surface's fixed extent when the driver
// dictates one. The max-uint32 width is the sentinel for "client
// decides", in which case the framebuffer size is clamped per axis
// into the advertised extent range.
func chooseExtent(caps SurfaceCaps, fbWidth, fbHeight uint32) vk.Extent2D {
	if caps.CurrentExtent.Width != math.MaxUint32 {
		return caps.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clampUint32(fbWidth, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clampUint32(fbHeight, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// chooseImageCount asks for one image over the advertised minimum so
// acquisition never has to wait on the driver. A max of zero means
// the driver places no upper bound.
func chooseImageCount(caps SurfaceCaps) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

func clampUint32(value, min, max uint32) uint32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
