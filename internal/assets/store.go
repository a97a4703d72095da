// Package assets resolves the page images: vehicle illustrations and the background.
package assets

import (
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"pricetable/domain/core"
	"pricetable/domain/pricing"
	"pricetable/internal"
	"pricetable/ports"

	"github.com/gabriel-vasile/mimetype"
)

// Store reads images from a directory and keeps their data URIs. Missing files are
// remembered as missing until Reset.
type Store struct {
	dir           string
	vehicleImages map[pricing.VehicleType]string
	logger        *internal.Logger

	mu      sync.RWMutex
	cache   map[string]ports.Image
	missing map[string]bool
}

// NewStore creates a store rooted at dir. vehicleImages overrides the default file name
// per vehicle type; nil keeps the defaults.
func NewStore(dir string, vehicleImages map[pricing.VehicleType]string, logger *internal.Logger) *Store {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	images := make(map[pricing.VehicleType]string, pricing.NumVehicleTypes)
	for _, v := range pricing.AllVehicleTypes() {
		images[v] = v.ImageFile()
		if name, ok := vehicleImages[v]; ok && name != "" {
			images[v] = name
		}
	}
	return &Store{
		dir:           dir,
		vehicleImages: images,
		logger:        logger.Named("Assets"),
		cache:         make(map[string]ports.Image),
		missing:       make(map[string]bool),
	}
}

// VehicleImage returns the illustration for v
func (s *Store) VehicleImage(v pricing.VehicleType) ports.Image {
	return s.Image(s.vehicleImages[v])
}

// Image returns the named image, or a Missing image when it cannot be read. Only
// successful reads are cached, so a file added later shows up on the next request.
func (s *Store) Image(name string) ports.Image {
	s.mu.RLock()
	img, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return img
	}

	img, err := s.read(name)
	if err != nil {
		s.reportMiss(name, err)
		return ports.Image{Name: name, Missing: true}
	}

	s.mu.Lock()
	s.cache[name] = img
	delete(s.missing, name)
	s.mu.Unlock()
	return img
}

// reportMiss logs the first failure for each name; repeats go to debug
func (s *Store) reportMiss(name string, err error) {
	s.mu.Lock()
	seen := s.missing[name]
	s.missing[name] = true
	s.mu.Unlock()

	switch {
	case seen:
		s.logger.Debug("Image %q still unavailable: %v", name, err)
	case core.IsNotFoundError(err):
		s.logger.Warn("Image file %q not found", name)
	default:
		s.logger.Error("Failed to read image %q: %v", name, err)
	}
}

func (s *Store) read(name string) (ports.Image, error) {
	if name == "" {
		return ports.Image{}, core.NewAssetNotFoundError("(unnamed)")
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Clean("/"+name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ports.Image{}, core.NewAssetNotFoundError(name)
		}
		return ports.Image{}, err
	}
	mime := mimetype.Detect(data)
	return ports.Image{
		Name:    name,
		DataURI: "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}
