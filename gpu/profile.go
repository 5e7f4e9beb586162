package gpu

import (
	vk "github.com/vulkan-go/vulkan"
)

// QueueFamily is a read-only snapshot of a single queue family on a
// physical device. CanPresent is resolved against the surface the
// snapshot was taken for.
type QueueFamily struct {
	Flags      vk.QueueFlags
	CanPresent bool
}

// IsGraphics reports whether the family accepts graphics submissions.
func (q QueueFamily) IsGraphics() bool {
	return q.Flags&vk.QueueFlags(vk.QueueGraphicsBit) != 0
}

// SurfaceCaps holds the surface capability limits of a device,
// dereferenced out of the driver structs.
type SurfaceCaps struct {
	CurrentExtent    vk.Extent2D
	MinImageExtent   vk.Extent2D
	MaxImageExtent   vk.Extent2D
	MinImageCount    uint32
	MaxImageCount    uint32
	CurrentTransform vk.SurfaceTransformFlagBits
}

// DeviceProfile is everything we ever ask a physical device about,
// queried once and kept immutable afterwards. Selection and swapchain
// negotiation operate on profiles only, never on live driver handles.
type DeviceProfile struct {
	Handle vk.PhysicalDevice `json:"-"`

	Name          string
	Type          vk.PhysicalDeviceType
	QueueFamilies []QueueFamily
	Extensions    []string
	Formats       []vk.SurfaceFormat
	PresentModes  []vk.PresentMode
	Caps          SurfaceCaps
}

// HasExtension does an exact, case-sensitive match against the
// device extension list.
func (d *DeviceProfile) HasExtension(name string) bool {
	for _, ext := range d.Extensions {
		if ext == name {
			return true
		}
	}
	return false
}

// QueueFamilyIndices holds the two family roles the renderer needs.
// A nil field means no family with that role was found.
type QueueFamilyIndices struct {
	Graphics *uint32
	Present  *uint32
}

// Complete reports whether both roles were resolved.
func (q QueueFamilyIndices) Complete() bool {
	return q.Graphics != nil && q.Present != nil
}

// QueueIndices scans the queue families in index order and records the
// first graphics-capable and the first present-capable index it sees.
// The roles are recorded independently, so both may land on the same
// family or on two different ones. The scan stops once both are found.
func (d *DeviceProfile) QueueIndices() QueueFamilyIndices {
	var indices QueueFamilyIndices
	for i := range d.QueueFamilies {
		family := d.QueueFamilies[i]
		if indices.Graphics == nil && family.IsGraphics() {
			idx := uint32(i)
			indices.Graphics = &idx
		}
		if indices.Present == nil && family.CanPresent {
			idx := uint32(i)
			indices.Present = &idx
		}
		if indices.Complete() {
			break
		}
	}
	return indices
}

// Suitable checks if the device can drive the rendering pipeline at
// all. If not suitable, the string contains the reason. A device
// qualifies when it has a complete queue family pair, carries every
// required extension, and, when swapchain support is among those
// extensions, advertises at least one surface format and one present
// mode.
func (d *DeviceProfile) Suitable(requiredExtensions []string) (bool, string) {
	if !d.QueueIndices().Complete() {
		return false, "missing a graphics or presentation queue family"
	}
	needsSwapchain := false
	for _, ext := range requiredExtensions {
		if !d.HasExtension(ext) {
			return false, "missing device extension " + ext
		}
		if ext == vk.KhrSwapchainExtensionName {
			needsSwapchain = true
		}
	}
	if needsSwapchain {
		if len(d.Formats) == 0 {
			return false, "no surface formats advertised"
		}
		if len(d.PresentModes) == 0 {
			return false, "no present modes advertised"
		}
	}
	return true, ""
}
