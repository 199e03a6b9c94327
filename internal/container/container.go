package container

import (
	"fmt"
	"image"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZacxDev/fogloop/internal/config"
)

// FrameWriter receives frames in display order and finalizes the file on Close.
type FrameWriter interface {
	WriteFrame(img image.Image) error
	Close() error
}

// Container defines the interface for an output video format
type Container interface {
	// GetName returns the container name
	GetName() string

	// GetExtension returns the file extension, including the dot
	GetExtension() string

	// GetDescription returns a short human readable codec description
	GetDescription() string

	// NewWriter creates the output file and returns a writer for it
	NewWriter(outputPath string, dims config.VideoDimensions, fps float64) (FrameWriter, error)
}

var containers = make(map[string]Container)

// Register adds a container to the registry
func Register(c Container) {
	containers[c.GetName()] = c
}

// Get returns a container by name
func Get(name string) (Container, error) {
	c, ok := containers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported output format: %s (supported: %s)",
			name, strings.Join(GetSupportedContainers(), ", "))
	}
	return c, nil
}

// Resolve picks the container named by format, or the one matching the
// extension of outputPath when format is empty. MP4 is the fallback.
func Resolve(format, outputPath string) (Container, error) {
	if format != "" {
		return Get(format)
	}

	ext := strings.ToLower(filepath.Ext(outputPath))
	for _, name := range GetSupportedContainers() {
		if containers[name].GetExtension() == ext {
			return containers[name], nil
		}
	}
	return Get("mp4")
}

// GetSupportedContainers returns a sorted list of supported container names
func GetSupportedContainers() []string {
	names := make([]string, 0, len(containers))
	for name := range containers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
