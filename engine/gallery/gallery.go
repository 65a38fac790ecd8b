package gallery

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	// ErrGalleryBusy is returned when a save is attempted while another is in flight.
	ErrGalleryBusy = errors.New("gallery is busy")
	errEmptyAlbum  = errors.New("album name is empty")
)

// Gallery is the photo library captures are handed to. Each album is a directory under
// the library root. Only one save runs at a time; callers check IsBusy first and a
// concurrent save fails with ErrGalleryBusy.
type Gallery interface {
	// SaveImage encodes img as PNG into album.
	//
	// Parameters:
	//   - img: the image
	//   - album: the album name
	//   - name: the file name, made unique before writing
	//
	// Returns:
	//   - string: the written path
	//   - error: ErrGalleryBusy, or an encode/write error
	SaveImage(img image.Image, album, name string) (string, error)

	// SaveFile copies an already encoded image file into album.
	//
	// Parameters:
	//   - path: the source file
	//   - album: the album name
	//   - name: the file name, made unique before writing
	//
	// Returns:
	//   - string: the written path
	//   - error: ErrGalleryBusy, or a read/write error
	SaveFile(path, album, name string) (string, error)

	// IsBusy reports whether a save is in flight.
	IsBusy() bool

	// Root returns the library root directory.
	Root() string
}

type gallery struct {
	root        string
	busy        atomic.Bool
	uniqueNames bool
	encoder     *png.Encoder
}

var _ Gallery = &gallery{}

// NewGallery creates a Gallery rooted at root. The directory is created on first save.
//
// Parameters:
//   - root: the library root directory
//   - options: functional options
//
// Returns:
//   - Gallery: the gallery
func NewGallery(root string, options ...GalleryBuilderOption) Gallery {
	g := &gallery{
		root:        root,
		uniqueNames: true,
		encoder:     &png.Encoder{CompressionLevel: png.DefaultCompression},
	}
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *gallery) SaveImage(img image.Image, album, name string) (string, error) {
	return g.save(album, name, func(w io.Writer) error {
		if err := g.encoder.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
		return nil
	})
}

func (g *gallery) SaveFile(path, album, name string) (string, error) {
	return g.save(album, name, func(w io.Writer) error {
		src, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer src.Close()
		if _, err := io.Copy(w, src); err != nil {
			return fmt.Errorf("failed to copy %s: %w", path, err)
		}
		return nil
	})
}

func (g *gallery) IsBusy() bool {
	return g.busy.Load()
}

func (g *gallery) Root() string {
	return g.root
}

// save claims the busy flag and writes through a temporary file renamed into place.
func (g *gallery) save(album, name string, write func(io.Writer) error) (string, error) {
	if !g.busy.CompareAndSwap(false, true) {
		return "", ErrGalleryBusy
	}
	defer g.busy.Store(false)

	if strings.TrimSpace(album) == "" {
		return "", errEmptyAlbum
	}

	dir := filepath.Join(g.root, album)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create album %s: %w", album, err)
	}

	tmp, err := os.CreateTemp(dir, ".pending-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	dest := filepath.Join(dir, g.fileName(name))
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("failed to move image into %s: %w", album, err)
	}

	log.Printf("[Gallery] saved %s", dest)
	return dest, nil
}

// fileName returns name with a uuid suffix before the extension when unique names are on.
func (g *gallery) fileName(name string) string {
	if name == "" {
		name = "image.png"
	}
	if !g.uniqueNames {
		return name
	}
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + uuid.NewString() + ext
}
