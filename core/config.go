package core

import (
	"strconv"

	"github.com/gobuffalo/envy"
)

// Configuration defines a global engine configuration setting
type Configuration struct {
	Time     TimeConfiguration
	Instance InstanceConfiguration
	Renderer RendererConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the delay between window event polls,
	// in milliseconds
	EventPollDelay int
}

// InstanceConfiguration is used to configure the Vulkan instance
type InstanceConfiguration struct {
	DebugMode  bool
	Extensions []string
	Layers     []string
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	DeviceExtensions []string

	ScreenWidth  uint32
	ScreenHeight uint32

	// ShaderDirectory and ShaderArchive select where compiled
	// shaders come from. When both are empty the binaries fall
	// back to their embedded shaders.
	ShaderDirectory string
	ShaderArchive   string
}

// FromEnv overlays LUMEN_* environment variables on top of the
// configuration. Unset or unparsable variables leave the existing
// values alone.
func (c Configuration) FromEnv() Configuration {
	c.Time.FramesPerSecond = envInt("LUMEN_FPS", c.Time.FramesPerSecond)
	c.Time.EventPollDelay = envInt("LUMEN_EVENT_POLL_MS", c.Time.EventPollDelay)
	c.Renderer.ScreenWidth = envUint32("LUMEN_WIDTH", c.Renderer.ScreenWidth)
	c.Renderer.ScreenHeight = envUint32("LUMEN_HEIGHT", c.Renderer.ScreenHeight)
	c.Renderer.ShaderDirectory = envy.Get("LUMEN_SHADER_DIR", c.Renderer.ShaderDirectory)
	c.Renderer.ShaderArchive = envy.Get("LUMEN_SHADER_PAK", c.Renderer.ShaderArchive)
	if envy.Get("LUMEN_VK_DEBUG", "") != "" {
		c.Instance.DebugMode = true
	}
	return c
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(envy.Get(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func envUint32(key string, fallback uint32) uint32 {
	value, err := strconv.ParseUint(envy.Get(key, ""), 10, 32)
	if err != nil {
		return fallback
	}
	return uint32(value)
}
