package gpu_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	vk "github.com/vulkan-go/vulkan"

	"github.com/lumen3d/lumen/gpu"
)

var swapchainOnly = []string{vk.KhrSwapchainExtensionName}

func eligible(name string, deviceType vk.PhysicalDeviceType) gpu.DeviceProfile {
	return gpu.DeviceProfile{
		Name: name,
		Type: deviceType,
		QueueFamilies: []gpu.QueueFamily{
			{Flags: vk.QueueFlags(vk.QueueGraphicsBit), CanPresent: true},
		},
		Extensions: []string{vk.KhrSwapchainExtensionName},
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo},
	}
}

func TestSelectPrefersDiscrete(t *testing.T) {
	c := qt.New(t)

	integratedFirst := []gpu.DeviceProfile{
		eligible("apu", vk.PhysicalDeviceTypeIntegratedGpu),
		eligible("dgpu", vk.PhysicalDeviceTypeDiscreteGpu),
	}
	chosen, err := gpu.Select(integratedFirst, swapchainOnly)
	c.Assert(err, qt.IsNil)
	c.Assert(chosen.Name, qt.Equals, "dgpu")

	discreteFirst := []gpu.DeviceProfile{
		eligible("dgpu", vk.PhysicalDeviceTypeDiscreteGpu),
		eligible("apu", vk.PhysicalDeviceTypeIntegratedGpu),
	}
	chosen, err = gpu.Select(discreteFirst, swapchainOnly)
	c.Assert(err, qt.IsNil)
	c.Assert(chosen.Name, qt.Equals, "dgpu")
}

func TestSelectFirstEligibleWhenNoDiscrete(t *testing.T) {
	c := qt.New(t)

	profiles := []gpu.DeviceProfile{
		eligible("apu-0", vk.PhysicalDeviceTypeIntegratedGpu),
		eligible("apu-1", vk.PhysicalDeviceTypeIntegratedGpu),
		eligible("soft", vk.PhysicalDeviceTypeCpu),
	}
	chosen, err := gpu.Select(profiles, swapchainOnly)
	c.Assert(err, qt.IsNil)
	c.Assert(chosen.Name, qt.Equals, "apu-0")
}

func TestSelectFirstDiscreteWinsTies(t *testing.T) {
	c := qt.New(t)

	profiles := []gpu.DeviceProfile{
		eligible("apu", vk.PhysicalDeviceTypeIntegratedGpu),
		eligible("dgpu-0", vk.PhysicalDeviceTypeDiscreteGpu),
		eligible("dgpu-1", vk.PhysicalDeviceTypeDiscreteGpu),
	}
	chosen, err := gpu.Select(profiles, swapchainOnly)
	c.Assert(err, qt.IsNil)
	c.Assert(chosen.Name, qt.Equals, "dgpu-0")
}

func TestSelectSkipsIneligibleDiscrete(t *testing.T) {
	c := qt.New(t)

	bare := eligible("dgpu", vk.PhysicalDeviceTypeDiscreteGpu)
	bare.Extensions = nil
	profiles := []gpu.DeviceProfile{
		bare,
		eligible("apu", vk.PhysicalDeviceTypeIntegratedGpu),
	}
	chosen, err := gpu.Select(profiles, swapchainOnly)
	c.Assert(err, qt.IsNil)
	c.Assert(chosen.Name, qt.Equals, "apu")
}

func TestSelectEmptyList(t *testing.T) {
	c := qt.New(t)

	chosen, err := gpu.Select(nil, swapchainOnly)
	c.Assert(err, qt.Equals, gpu.ErrNoDevices)
	c.Assert(chosen, qt.IsNil)
}

func TestSelectNoEligibleDevice(t *testing.T) {
	c := qt.New(t)

	noQueues := eligible("dgpu", vk.PhysicalDeviceTypeDiscreteGpu)
	noQueues.QueueFamilies = nil
	noFormats := eligible("apu", vk.PhysicalDeviceTypeIntegratedGpu)
	noFormats.Formats = nil

	chosen, err := gpu.Select([]gpu.DeviceProfile{noQueues, noFormats}, swapchainOnly)
	c.Assert(err, qt.Equals, gpu.ErrNoSuitableDevice)
	c.Assert(chosen, qt.IsNil)
}

func TestQueueIndicesIndependentRoles(t *testing.T) {
	c := qt.New(t)

	// Family 0 can only present, family 1 can only draw. Both roles
	// must still be resolved, each to its own index.
	profile := gpu.DeviceProfile{
		QueueFamilies: []gpu.QueueFamily{
			{CanPresent: true},
			{Flags: vk.QueueFlags(vk.QueueGraphicsBit)},
		},
	}
	indices := profile.QueueIndices()
	c.Assert(indices.Complete(), qt.Equals, true)
	c.Assert(*indices.Graphics, qt.Equals, uint32(1))
	c.Assert(*indices.Present, qt.Equals, uint32(0))
}

func TestQueueIndicesFirstFit(t *testing.T) {
	c := qt.New(t)

	profile := gpu.DeviceProfile{
		QueueFamilies: []gpu.QueueFamily{
			{Flags: vk.QueueFlags(vk.QueueGraphicsBit), CanPresent: true},
			{Flags: vk.QueueFlags(vk.QueueGraphicsBit), CanPresent: true},
		},
	}
	indices := profile.QueueIndices()
	c.Assert(*indices.Graphics, qt.Equals, uint32(0))
	c.Assert(*indices.Present, qt.Equals, uint32(0))
}

func TestQueueIndicesIncomplete(t *testing.T) {
	c := qt.New(t)

	profile := gpu.DeviceProfile{
		QueueFamilies: []gpu.QueueFamily{
			{Flags: vk.QueueFlags(vk.QueueComputeBit)},
		},
	}
	indices := profile.QueueIndices()
	c.Assert(indices.Complete(), qt.Equals, false)
	c.Assert(indices.Graphics, qt.IsNil)
	c.Assert(indices.Present, qt.IsNil)
}

func TestSuitableMissingExtension(t *testing.T) {
	c := qt.New(t)

	profile := eligible("apu", vk.PhysicalDeviceTypeIntegratedGpu)
	ok, reason := profile.Suitable([]string{vk.KhrSwapchainExtensionName, "VK_EXT_imaginary"})
	c.Assert(ok, qt.Equals, false)
	c.Assert(reason, qt.Equals, "missing device extension VK_EXT_imaginary")
}

func TestSuitableEmptyCapabilityLists(t *testing.T) {
	c := qt.New(t)

	noFormats := eligible("apu", vk.PhysicalDeviceTypeIntegratedGpu)
	noFormats.Formats = nil
	ok, reason := noFormats.Suitable(swapchainOnly)
	c.Assert(ok, qt.Equals, false)
	c.Assert(reason, qt.Equals, "no surface formats advertised")

	noModes := eligible("apu", vk.PhysicalDeviceTypeIntegratedGpu)
	noModes.PresentModes = nil
	ok, reason = noModes.Suitable(swapchainOnly)
	c.Assert(ok, qt.Equals, false)
	c.Assert(reason, qt.Equals, "no present modes advertised")
}

func TestSuitableWithoutSwapchainRequirement(t *testing.T) {
	c := qt.New(t)

	// Without the swapchain extension in the required set, empty
	// format and present mode lists do not disqualify a device.
	profile := eligible("apu", vk.PhysicalDeviceTypeIntegratedGpu)
	profile.Formats = nil
	profile.PresentModes = nil
	ok, reason := profile.Suitable(nil)
	c.Assert(ok, qt.Equals, true)
	c.Assert(reason, qt.Equals, "")
}
