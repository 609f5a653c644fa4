package aircraft

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	domac "github.com/kailas-cloud/acdex/internal/domain/aircraft"
	"github.com/kailas-cloud/acdex/internal/logger"
)

// Format is a catalog file encoding.
type Format string

// Supported formats.
const (
	FormatYAML        Format = "yaml"
	FormatJSON        Format = "json"
	FormatMsgpack     Format = "msgpack"
	FormatMsgpackZstd Format = "msgpack.zst"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".msgpack.zst"):
		return FormatMsgpackZstd, nil
	case strings.HasSuffix(name, ".msgpack"):
		return FormatMsgpack, nil
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return FormatYAML, nil
	case strings.HasSuffix(name, ".json"):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported catalog file %q", path)
	}
}

// Decode reads a catalog document and returns records sorted by (ID, Priority).
func Decode(r io.Reader, f Format) ([]domac.Aircraft, error) {
	var doc document
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
	case FormatMsgpackZstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer zr.Close()
		if err := msgpack.NewDecoder(zr).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}

	records, err := flatten(doc)
	if err != nil {
		return nil, err
	}
	sortRecords(records)
	return records, nil
}

// Encode writes records as a catalog document. The input slice is not modified.
func Encode(w io.Writer, f Format, records []domac.Aircraft) error {
	sorted := append([]domac.Aircraft(nil), records...)
	sortRecords(sorted)
	doc := group(sorted)

	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode msgpack: %w", err)
		}
		return nil
	case FormatMsgpackZstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
		if err := msgpack.NewEncoder(zw).Encode(doc); err != nil {
			_ = zw.Close()
			return fmt.Errorf("encode msgpack: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("failed to close zstd writer: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// FileSource loads a catalog from a local file.
type FileSource struct {
	Path string
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) ([]domac.Aircraft, error) {
	f, err := FormatFromPath(s.Path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = fh.Close() }()

	records, err := Decode(bufio.NewReader(fh), f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	logger.FromContext(ctx).Info("catalog file loaded",
		zap.String("path", s.Path),
		zap.String("format", string(f)),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// WriteFile encodes records into path, choosing the format from its extension.
func WriteFile(path string, records []domac.Aircraft) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	bw := bufio.NewWriter(fh)
	if err := Encode(bw, f, records); err != nil {
		_ = fh.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = fh.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return fh.Close()
}
