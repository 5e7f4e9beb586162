package main

import (
	"flag"
	"os"
	"runtime"
	"runtime/pprof"
	"unsafe"

	"github.com/gobuffalo/packr"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/lumen3d/lumen/core"
)

func init() {
	runtime.LockOSThread()
}

// Essential globals
var (
	vkInstance core.Instance
	vkRenderer core.Renderer
	sdlWindow  *sdl.Window
	sdlSurface unsafe.Pointer
)

var (
	cpuProfile = flag.String("cpuprof", "", "Profile CPU usage to file")
	debug      = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
)

var configuration = core.Configuration{
	Time: core.TimeConfiguration{
		FramesPerSecond: 60,
		EventPollDelay:  50,
	},
	Renderer: core.RendererConfiguration{
		ScreenWidth:  800,
		ScreenHeight: 600,
		DeviceExtensions: []string{
			"VK_KHR_swapchain",
		},
	},
}

// defaultShaders carries the compiled triangle shaders inside the
// binary, used when no shader directory or archive is configured.
var defaultShaders = packr.NewBox("./assets/shaders")

func shaderSource(cfg core.RendererConfiguration) core.ShaderSource {
	if cfg.ShaderArchive != "" {
		return core.ArchiveSource{Path: cfg.ShaderArchive}
	}
	if cfg.ShaderDirectory != "" {
		return core.DirectorySource{Dir: cfg.ShaderDirectory}
	}
	return core.BoxSource{Box: defaultShaders}
}

func newWindow() *sdl.Window {
	window, err := sdl.CreateWindow("Lumen3D",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(configuration.Renderer.ScreenWidth),
		int32(configuration.Renderer.ScreenHeight),
		sdl.WINDOW_VULKAN)
	if err != nil {
		log.Fatal(err)
	}
	return window
}

func main() {
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Info("Loaded configuration overrides from .env")
	}
	configuration = configuration.FromEnv()
	if *debug {
		configuration.Instance.DebugMode = true
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.Fatal(err)
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		log.Fatal(err)
	}
	defer sdl.VulkanUnloadLibrary()

	sdlWindow = newWindow()
	configuration.Instance.Extensions = sdlWindow.VulkanGetInstanceExtensions()

	if vi, err := core.NewVulkanInstance(core.DefaultVulkanApplicationInfo, sdl.VulkanGetVkGetInstanceProcAddr(), configuration.Instance); err != nil {
		log.Fatal(err)
	} else {
		vkInstance = vi
	}

	if srf, err := sdlWindow.VulkanCreateSurface(vkInstance.Inner()); err != nil {
		log.Fatal(err)
	} else {
		sdlSurface = srf
		vkInstance.SetSurface(sdlSurface)
	}

	// The swapchain extent is negotiated against the drawable size,
	// which can differ from the window size on high-dpi displays.
	drawableWidth, drawableHeight := sdlWindow.VulkanGetDrawableSize()
	configuration.Renderer.ScreenWidth = uint32(drawableWidth)
	configuration.Renderer.ScreenHeight = uint32(drawableHeight)

	var rendererErr error
	vkRenderer, rendererErr = core.NewVulkanRenderer(vkInstance, configuration.Renderer, shaderSource(configuration.Renderer))
	if rendererErr != nil {
		log.Fatal(rendererErr)
	}

	if err := vkRenderer.Initialise(); err != nil {
		log.Fatal(err)
	}

	if profiles, err := vkInstance.Profiles(); err == nil {
		for _, profile := range profiles {
			suitable, reason := vkRenderer.DeviceIsSuitable(profile)
			log.WithFields(log.Fields{
				"device":   profile.Name,
				"suitable": suitable,
				"reason":   reason,
			}).Info("Device inventory")
		}
	}

	time := core.NewTime(configuration.Time)
	exitC := make(chan struct{}, 2)

EventLoop:
	for {
		select {
		case <-exitC:
			log.Info("Event loop exited")
			break EventLoop
		case <-time.EventTicker().C:
			var event sdl.Event
			for event = sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						exitC <- struct{}{}
						continue EventLoop
					}
				case *sdl.QuitEvent:
					exitC <- struct{}{}
					continue EventLoop
				}
			}
		}
	}

	vkRenderer.Destroy()
	vkInstance.Destroy()
}
