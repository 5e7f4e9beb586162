package core

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobuffalo/packr"

	"github.com/lumen3d/lumen/utility/pak"
)

const shaderSuffix = ".spv"

// shaderTypeFor resolves the shader file naming convention. It is
// important that the file name does not contain more than two dots:
// the first node is the name of the shader, the second is its type,
// and the .spv extension ensures the shader is compiled. Anything
// else is skipped.
func shaderTypeFor(filename string) (string, ShaderType, bool) {
	if !strings.HasSuffix(filename, shaderSuffix) {
		return "", UnknownShaderType, false
	}
	nodes := strings.Split(strings.TrimSuffix(filename, shaderSuffix), ".")
	if len(nodes) != 2 {
		return "", UnknownShaderType, false
	}
	switch nodes[1] {
	case "vert":
		return nodes[0], VertexShaderType, true
	case "frag":
		return nodes[0], FragmentShaderType, true
	}
	return "", UnknownShaderType, false
}

// DirectorySource loads compiled shaders from a directory tree.
type DirectorySource struct {
	Dir string
}

// Shaders implements ShaderSource
func (s DirectorySource) Shaders() ([]ShaderData, error) {
	var shaders []ShaderData
	if err := filepath.Walk(s.Dir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if f.IsDir() {
			return nil
		}
		name, shaderType, ok := shaderTypeFor(f.Name())
		if !ok {
			return nil
		}
		code, err := ioutil.ReadFile(path)
		if err != nil {
			return err
		}
		shaders = append(shaders, ShaderData{Name: name, Type: shaderType, Code: code})
		return nil
	}); err != nil {
		return nil, err
	}
	return shaders, nil
}

// ArchiveSource loads compiled shaders out of a pak archive.
type ArchiveSource struct {
	Path string
}

// Shaders implements ShaderSource
func (s ArchiveSource) Shaders() ([]ShaderData, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	archive, err := pak.Open(f)
	if err != nil {
		return nil, err
	}

	var shaders []ShaderData
	for _, entry := range archive.Index() {
		name, shaderType, ok := shaderTypeFor(filepath.Base(entry.Name))
		if !ok {
			continue
		}
		code, err := archive.ReadAll(entry.Name)
		if err != nil {
			return nil, err
		}
		shaders = append(shaders, ShaderData{Name: name, Type: shaderType, Code: code})
	}
	return shaders, nil
}

// BoxSource loads compiled shaders embedded into the binary with
// packr.
type BoxSource struct {
	Box packr.Box
}

// Shaders implements ShaderSource
func (s BoxSource) Shaders() ([]ShaderData, error) {
	var shaders []ShaderData
	for _, entry := range s.Box.List() {
		name, shaderType, ok := shaderTypeFor(filepath.Base(entry))
		if !ok {
			continue
		}
		code, err := s.Box.MustBytes(entry)
		if err != nil {
			return nil, err
		}
		shaders = append(shaders, ShaderData{Name: name, Type: shaderType, Code: code})
	}
	return shaders, nil
}
