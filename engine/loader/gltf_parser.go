package loader

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
)

var (
	errInvalidGLTFVersion = errors.New("invalid glTF version: must be 2.0")
	errInvalidGLBMagic    = errors.New("invalid GLB magic number")
	errInvalidGLBVersion  = errors.New("invalid GLB version: must be 2")
	errGLBTooSmall        = errors.New("GLB file too small")
	errGLBTruncated       = errors.New("GLB chunk runs past the end of the file")
	errMissingJSONChunk   = errors.New("GLB file missing JSON chunk")
)

// GLB container layout, all little-endian.
const (
	glbMagic           = 0x46546C67 // "glTF"
	glbVersion         = 2
	glbChunkJSON       = 0x4E4F534A // "JSON"
	glbChunkBIN        = 0x004E4942 // "BIN\0"
	glbHeaderSize      = 12
	glbChunkHeaderSize = 8
)

// readGLTFFile validates and decodes a .gltf or .glb file. GLB is detected by extension or
// magic number. External buffers resolve relative to the file.
func readGLTFFile(path string) (*gltf.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	isGLB := strings.EqualFold(filepath.Ext(path), ".glb") ||
		(len(data) >= 4 && binary.LittleEndian.Uint32(data) == glbMagic)
	if err := checkGLTF(data, isGLB); err != nil {
		return nil, err
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode glTF: %w", err)
	}
	return doc, nil
}

// decodeGLTF validates and decodes an in-memory document. Only embedded buffers (GLB
// binary chunk or data URIs) can be resolved.
//
// Parameters:
//   - data: the file contents
//   - isGLB: true for the binary container
//
// Returns:
//   - *gltf.Document: the decoded document with buffers loaded
//   - error: error if the container, version or a buffer is invalid
func decodeGLTF(data []byte, isGLB bool) (*gltf.Document, error) {
	if err := checkGLTF(data, isGLB); err != nil {
		return nil, err
	}
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode glTF: %w", err)
	}
	return doc, nil
}

// checkGLTF rejects malformed GLB containers and documents that are not glTF 2.x before
// they reach the decoder.
func checkGLTF(data []byte, isGLB bool) error {
	jsonChunk := data
	if isGLB {
		var err error
		if jsonChunk, err = glbJSONChunk(data); err != nil {
			return err
		}
	}

	var head struct {
		Asset struct {
			Version string `json:"version"`
		} `json:"asset"`
	}
	if err := json.Unmarshal(jsonChunk, &head); err != nil {
		return fmt.Errorf("failed to parse glTF JSON: %w", err)
	}
	if !strings.HasPrefix(head.Asset.Version, "2.") {
		return errInvalidGLTFVersion
	}
	return nil
}

// glbJSONChunk validates the GLB header and chunk table and returns the JSON chunk.
func glbJSONChunk(data []byte) ([]byte, error) {
	if len(data) < glbHeaderSize {
		return nil, errGLBTooSmall
	}
	if binary.LittleEndian.Uint32(data[0:4]) != glbMagic {
		return nil, errInvalidGLBMagic
	}
	if binary.LittleEndian.Uint32(data[4:8]) != glbVersion {
		return nil, errInvalidGLBVersion
	}

	var jsonChunk []byte
	rest := data[glbHeaderSize:]
	for len(rest) > 0 {
		if len(rest) < glbChunkHeaderSize {
			return nil, errGLBTruncated
		}
		length := int(binary.LittleEndian.Uint32(rest[0:4]))
		kind := binary.LittleEndian.Uint32(rest[4:8])
		rest = rest[glbChunkHeaderSize:]
		if length > len(rest) {
			return nil, errGLBTruncated
		}
		if kind == glbChunkJSON && jsonChunk == nil {
			jsonChunk = rest[:length]
		}
		rest = rest[length:]
	}

	if jsonChunk == nil {
		return nil, errMissingJSONChunk
	}
	return jsonChunk, nil
}
