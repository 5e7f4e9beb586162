package gpu

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// Selection errors. Both are fatal to startup, there is no fallback
// tier below them.
var (
	ErrNoDevices        = errors.New("gpu: no physical devices present")
	ErrNoSuitableDevice = errors.New("gpu: no suitable physical device found")
)

// Select picks one device out of the candidate list. The first
// suitable candidate wins, unless a suitable discrete GPU shows up
// anywhere in the list, in which case the discrete one is taken. The
// scan deliberately runs to the end: a discrete GPU found later
// replaces an earlier integrated pick, but never replaces another
// discrete one, so ties between discrete GPUs break on enumeration
// order. The advertised order is driver-defined and must not be
// sorted.
func Select(profiles []DeviceProfile, requiredExtensions []string) (*DeviceProfile, error) {
	if len(profiles) == 0 {
		return nil, ErrNoDevices
	}
	var chosen *DeviceProfile
	for i := range profiles {
		candidate := &profiles[i]
		if ok, _ := candidate.Suitable(requiredExtensions); !ok {
			continue
		}
		if chosen == nil {
			chosen = candidate
			continue
		}
		if !isDiscrete(chosen) && isDiscrete(candidate) {
			chosen = candidate
		}
	}
	if chosen == nil {
		return nil, ErrNoSuitableDevice
	}
	return chosen, nil
}

func isDiscrete(profile *DeviceProfile) bool {
	return profile.Type == vk.PhysicalDeviceTypeDiscreteGpu
}
