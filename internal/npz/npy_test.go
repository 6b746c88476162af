package npz

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/quantmind-br/motionscan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		descr   string
		fortran bool
		shape   []int
	}{
		{
			name:  "scalar",
			input: "{'descr': '<f8', 'fortran_order': False, 'shape': (), }",
			descr: "<f8",
			shape: []int{},
		},
		{
			name:  "one dimension",
			input: "{'descr': '<i8', 'fortran_order': False, 'shape': (12,), }",
			descr: "<i8",
			shape: []int{12},
		},
		{
			name:  "two dimensions with padding",
			input: "{'descr': '<f4', 'fortran_order': False, 'shape': (90, 156), }          \n",
			descr: "<f4",
			shape: []int{90, 156},
		},
		{
			name:    "fortran order and no trailing comma",
			input:   "{'descr': '>f8', 'fortran_order': True, 'shape': (3, 4)}",
			descr:   ">f8",
			fortran: true,
			shape:   []int{3, 4},
		},
		{
			name:  "double quoted keys and long literals",
			input: `{"descr": "|u1", "fortran_order": False, "shape": (10L, 2L), }`,
			descr: "|u1",
			shape: []int{10, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHeader(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.descr, h.Descr)
			assert.Equal(t, tt.fortran, h.FortranOrder)
			assert.Equal(t, tt.shape, h.Shape)
		})
	}
}

func TestParseHeader_StructuredDescr(t *testing.T) {
	h, err := ParseHeader("{'descr': [('x', '<f8'), ('y', '<f8')], 'fortran_order': False, 'shape': (5,), }")
	require.NoError(t, err)
	assert.Equal(t, "[('x', '<f8'), ('y', '<f8')]", h.Descr)
	assert.Equal(t, []int{5}, h.Shape)

	_, err = ParseDType(h.Descr)
	assert.ErrorIs(t, err, ErrUnsupportedDType)
}

func TestParseHeader_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not a dict", "['descr']"},
		{"missing shape", "{'descr': '<f8', 'fortran_order': False}"},
		{"missing descr", "{'fortran_order': False, 'shape': (1,)}"},
		{"unterminated string", "{'descr: '<f8'}"},
		{"bad dimension", "{'descr': '<f8', 'shape': (a,)}"},
		{"unknown literal", "{'descr': '<f8', 'shape': None}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.input)
			assert.ErrorIs(t, err, ErrInvalidHeader)
		})
	}
}

func TestHeader_Len(t *testing.T) {
	assert.Equal(t, 1, (&Header{Shape: []int{}}).Len())
	assert.Equal(t, 1, (&Header{Shape: []int{1, 1}}).Len())
	assert.Equal(t, 0, (&Header{Shape: []int{0, 156}}).Len())
	assert.Equal(t, 12, (&Header{Shape: []int{3, 4}}).Len())
}

func TestReadHeader(t *testing.T) {
	data := testutil.EncodeNPY("<f4", []int{48, 6}, make([]byte, 48*6*4))
	r := bytes.NewReader(data)

	h, err := ReadHeader(r)
	require.NoError(t, err)
	assert.Equal(t, "<f4", h.Descr)
	assert.Equal(t, []int{48, 6}, h.Shape)
	assert.Equal(t, 48*6*4, r.Len(), "reader should be positioned at the data")
}

func TestReadHeader_Version2(t *testing.T) {
	header := "{'descr': '<f8', 'fortran_order': False, 'shape': (7,), }\n"
	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{2, 0})
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(header)))
	buf.WriteString(header)

	h, err := ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, h.Shape)
}

func TestReadHeader_Errors(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		_, err := ReadHeader(bytes.NewReader([]byte("PK\x03\x04notnumpy")))
		assert.ErrorIs(t, err, ErrNotNPY)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := ReadHeader(bytes.NewReader([]byte("\x93NU")))
		assert.ErrorIs(t, err, ErrInvalidHeader)
	})

	t.Run("unknown version", func(t *testing.T) {
		_, err := ReadHeader(bytes.NewReader([]byte("\x93NUMPY\x09\x00\x10\x00")))
		assert.ErrorIs(t, err, ErrInvalidHeader)
		assert.Contains(t, err.Error(), "9.0")
	})

	t.Run("header shorter than declared", func(t *testing.T) {
		_, err := ReadHeader(bytes.NewReader([]byte("\x93NUMPY\x01\x00\xff\x00{'descr'")))
		assert.ErrorIs(t, err, ErrInvalidHeader)
	})
}

func TestParseDType(t *testing.T) {
	tests := []struct {
		descr string
		kind  byte
		size  int
		order binary.ByteOrder
	}{
		{"<f8", 'f', 8, binary.LittleEndian},
		{">f4", 'f', 4, binary.BigEndian},
		{"<i4", 'i', 4, binary.LittleEndian},
		{"|u1", 'u', 1, binary.LittleEndian},
		{"|b1", 'b', 1, binary.LittleEndian},
		{"f8", 'f', 8, binary.LittleEndian},
	}

	for _, tt := range tests {
		t.Run(tt.descr, func(t *testing.T) {
			dt, err := ParseDType(tt.descr)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, dt.Kind)
			assert.Equal(t, tt.size, dt.Size)
			assert.Equal(t, tt.order, dt.Order)
		})
	}
}

func TestParseDType_Unsupported(t *testing.T) {
	for _, descr := range []string{"", "<", "<U10", "<c16", "|O", "<f2", "<fx"} {
		t.Run(descr, func(t *testing.T) {
			_, err := ParseDType(descr)
			assert.ErrorIs(t, err, ErrUnsupportedDType)
		})
	}
}

func TestDType_Decode(t *testing.T) {
	le := binary.LittleEndian
	be := binary.BigEndian

	f8 := make([]byte, 8)
	le.PutUint64(f8, math.Float64bits(59.94))
	f8be := make([]byte, 8)
	be.PutUint64(f8be, math.Float64bits(120))
	f4 := make([]byte, 4)
	le.PutUint32(f4, math.Float32bits(30))
	i2 := make([]byte, 2)
	le.PutUint16(i2, uint16(0xfffe)) // -2

	tests := []struct {
		name string
		dt   DType
		data []byte
		want float64
	}{
		{"float64", DType{le, 'f', 8}, f8, 59.94},
		{"float64 big endian", DType{be, 'f', 8}, f8be, 120},
		{"float32", DType{le, 'f', 4}, f4, 30},
		{"int16 negative", DType{le, 'i', 2}, i2, -2},
		{"int8", DType{le, 'i', 1}, []byte{0x80}, -128},
		{"uint8", DType{le, 'u', 1}, []byte{0xff}, 255},
		{"int32", DType{le, 'i', 4}, []byte{60, 0, 0, 0}, 60},
		{"uint64", DType{le, 'u', 8}, []byte{100, 0, 0, 0, 0, 0, 0, 0}, 100},
		{"bool true", DType{le, 'b', 1}, []byte{1}, 1},
		{"bool false", DType{le, 'b', 1}, []byte{0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.dt.Decode(tt.data)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDType_Decode_Short(t *testing.T) {
	_, err := DType{binary.LittleEndian, 'f', 8}.Decode([]byte{1, 2})
	assert.Error(t, err)
}
