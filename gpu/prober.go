package gpu

import (
	"errors"
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// NewProber wires a prober to an instance and a presentation surface.
// The surface may be vk.NullSurface for headless probing, in which
// case present support, surface formats, present modes and capability
// limits stay empty in the resulting profiles.
func NewProber(instance vk.Instance, surface vk.Surface) *Prober {
	return &Prober{
		instance: instance,
		surface:  surface,
	}
}

// Prober performs all driver queries needed to build device profiles.
// The instance and surface handles are carried explicitly here rather
// than through package state.
type Prober struct {
	instance vk.Instance
	surface  vk.Surface
}

// Profiles enumerates the physical devices and snapshots each one.
// Nothing is cached between calls, every invocation re-queries the
// driver.
func (p *Prober) Profiles() ([]DeviceProfile, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(p.instance, &deviceCount, nil)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	devices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(p.instance, &deviceCount, devices)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}

	profiles := make([]DeviceProfile, len(devices))
	for i, device := range devices {
		profile, err := p.profile(device)
		if err != nil {
			return nil, err
		}
		profiles[i] = profile
	}
	return profiles, nil
}

func (p *Prober) profile(device vk.PhysicalDevice) (DeviceProfile, error) {
	profile := DeviceProfile{Handle: device}

	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(device, &properties)
	properties.Deref()
	profile.Name = vk.ToString(properties.DeviceName[:])
	profile.Type = properties.DeviceType

	var familyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &familyCount, nil)
	families := make([]vk.QueueFamilyProperties, familyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &familyCount, families)
	for i := uint32(0); i < familyCount; i++ {
		families[i].Deref()
		family := QueueFamily{Flags: families[i].QueueFlags}
		if p.surface != vk.NullSurface {
			var supportsPresent vk.Bool32
			vk.GetPhysicalDeviceSurfaceSupport(device, i, p.surface, &supportsPresent)
			family.CanPresent = supportsPresent.B()
		}
		profile.QueueFamilies = append(profile.QueueFamilies, family)
	}

	var extensionCount uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(device, "", &extensionCount, nil)); err != nil {
		return profile, errors.New("vk.EnumerateDeviceExtensionProperties(): " + err.Error())
	}
	extensions := make([]vk.ExtensionProperties, extensionCount)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(device, "", &extensionCount, extensions)); err != nil {
		return profile, errors.New("vk.EnumerateDeviceExtensionProperties(): " + err.Error())
	}
	for _, ext := range extensions {
		ext.Deref()
		profile.Extensions = append(profile.Extensions, vk.ToString(ext.ExtensionName[:]))
	}

	if p.surface == vk.NullSurface {
		return profile, nil
	}

	var formatCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(device, p.surface, &formatCount, nil)); err != nil {
		return profile, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	formats := make([]vk.SurfaceFormat, formatCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(device, p.surface, &formatCount, formats)); err != nil {
		return profile, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	for i := range formats {
		formats[i].Deref()
	}
	profile.Formats = formats

	var modeCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(device, p.surface, &modeCount, nil)); err != nil {
		return profile, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}
	modes := make([]vk.PresentMode, modeCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(device, p.surface, &modeCount, modes)); err != nil {
		return profile, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}
	profile.PresentModes = modes

	var caps vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(device, p.surface, &caps)); err != nil {
		return profile, errors.New("vk.GetPhysicalDeviceSurfaceCapabilities(): " + err.Error())
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	profile.Caps = SurfaceCaps{
		CurrentExtent:    vk.Extent2D{Width: caps.CurrentExtent.Width, Height: caps.CurrentExtent.Height},
		MinImageExtent:   vk.Extent2D{Width: caps.MinImageExtent.Width, Height: caps.MinImageExtent.Height},
		MaxImageExtent:   vk.Extent2D{Width: caps.MaxImageExtent.Width, Height: caps.MaxImageExtent.Height},
		MinImageCount:    caps.MinImageCount,
		MaxImageCount:    caps.MaxImageCount,
		CurrentTransform: vk.SurfaceTransformFlagBits(caps.CurrentTransform),
	}

	return profile, nil
}
