package main

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/lumen3d/lumen/core"
)

// Dumps the device profiles of every Vulkan capable GPU as JSON.
// Runs headless, so surface-dependent capabilities stay empty.
func main() {
	cfg := core.InstanceConfiguration{
		DebugMode:  false,
		Extensions: []string{},
		Layers:     []string{},
	}

	coreInstance, err := core.NewVulkanInstance(core.DefaultVulkanApplicationInfo, nil, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer coreInstance.Destroy()

	profiles, err := coreInstance.Profiles()
	if err != nil {
		log.Fatal(err)
	}

	bytes, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(os.Stdout, "%s\n", bytes)
}
