// Package testutil builds fixtures shared by package tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// Field is one array member of a fixture archive
type Field struct {
	Name  string
	Descr string
	Shape []int
	Data  []byte
	Raw   []byte // written verbatim instead of an NPY encoding when set
}

// Float64Scalar returns a 0-d float64 field, the way numpy stores mocap_framerate
func Float64Scalar(name string, v float64) Field {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	return Field{Name: name, Descr: "<f8", Shape: []int{}, Data: b}
}

// Float32Scalar returns a 0-d float32 field
func Float32Scalar(name string, v float32) Field {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return Field{Name: name, Descr: "<f4", Shape: []int{}, Data: b}
}

// Int64Array returns a 1-d int64 field
func Int64Array(name string, vals ...int64) Field {
	b := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(b[i*8:], uint64(v))
	}
	return Field{Name: name, Descr: "<i8", Shape: []int{len(vals)}, Data: b}
}

// Zeros returns a float32 field of the given shape filled with zeros
func Zeros(name string, shape ...int) Field {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return Field{Name: name, Descr: "<f4", Shape: shape, Data: make([]byte, 4*n)}
}

// Poses returns a poses array with the given frame count
func Poses(frames int) Field {
	return Zeros("poses", frames, 6)
}

// EncodeNPY serializes an array as an NPY version 1.0 file
func EncodeNPY(descr string, shape []int, data []byte) []byte {
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }", descr, formatShape(shape))

	// magic(6) + version(2) + length(2) + header + '\n' must align to 64
	total := 10 + len(header) + 1
	if pad := total % 64; pad != 0 {
		header += strings.Repeat(" ", 64-pad)
	}
	header += "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	buf.Write(data)
	return buf.Bytes()
}

func formatShape(shape []int) string {
	switch len(shape) {
	case 0:
		return "()"
	case 1:
		return fmt.Sprintf("(%d,)", shape[0])
	}
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = fmt.Sprint(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// WriteNPZ writes an uncompressed archive (numpy.savez) and returns its path
func WriteNPZ(t *testing.T, path string, fields ...Field) string {
	t.Helper()
	return writeArchive(t, path, zip.Store, fields)
}

// WriteCompressedNPZ writes a deflated archive (numpy.savez_compressed)
func WriteCompressedNPZ(t *testing.T, path string, fields ...Field) string {
	t.Helper()
	return writeArchive(t, path, zip.Deflate, fields)
}

// WriteMotion writes a typical motion archive with a frame rate and poses
func WriteMotion(t *testing.T, path string, fps float64, frames int) string {
	t.Helper()
	return WriteNPZ(t, path,
		Float64Scalar("mocap_framerate", fps),
		Poses(frames),
		Zeros("trans", frames, 3),
	)
}

// WriteFile writes raw bytes, creating parent directories
func WriteFile(t *testing.T, path string, data []byte) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func writeArchive(t *testing.T, path string, method uint16, fields []Field) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range fields {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   f.Name + ".npy",
			Method: method,
		})
		require.NoError(t, err)
		payload := f.Raw
		if payload == nil {
			payload = EncodeNPY(f.Descr, f.Shape, f.Data)
		}
		_, err = w.Write(payload)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return WriteFile(t, path, buf.Bytes())
}
