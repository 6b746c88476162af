package npz

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var npyMagic = []byte("\x93NUMPY")

// maxHeaderLen bounds the header allocation for version 2.0+ files.
const maxHeaderLen = 1 << 20

// Header is the parsed dictionary at the start of an .npy member
type Header struct {
	Descr        string
	FortranOrder bool
	Shape        []int
}

// Len returns the total number of elements described by the shape.
// A 0-d array holds exactly one element.
func (h *Header) Len() int {
	n := 1
	for _, d := range h.Shape {
		n *= d
	}
	return n
}

// ReadHeader consumes the magic string, version and header dictionary,
// leaving r positioned at the first data byte.
func ReadHeader(r io.Reader) (*Header, error) {
	var pre [8]byte
	if _, err := io.ReadFull(r, pre[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if !bytes.Equal(pre[:6], npyMagic) {
		return nil, ErrNotNPY
	}

	var hlen int
	switch major := pre[6]; major {
	case 1:
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
		hlen = int(binary.LittleEndian.Uint16(b[:]))
	case 2, 3:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
		n := binary.LittleEndian.Uint32(b[:])
		if n > maxHeaderLen {
			return nil, fmt.Errorf("%w: header length %d", ErrInvalidHeader, n)
		}
		hlen = int(n)
	default:
		return nil, fmt.Errorf("%w: version %d.%d", ErrInvalidHeader, major, pre[7])
	}

	buf := make([]byte, hlen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	return ParseHeader(string(buf))
}

// ParseHeader parses the Python dict literal of an NPY header, e.g.
// {'descr': '<f8', 'fortran_order': False, 'shape': (90, 156), }
func ParseHeader(s string) (*Header, error) {
	p := &literalParser{s: strings.TrimRight(s, " \n\x00")}
	fields, err := p.dict()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	h := &Header{}
	descr, ok := fields["descr"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing descr", ErrInvalidHeader)
	}
	h.Descr = descr

	if fo, ok := fields["fortran_order"].(bool); ok {
		h.FortranOrder = fo
	}

	shape, ok := fields["shape"].([]int)
	if !ok {
		return nil, fmt.Errorf("%w: missing shape", ErrInvalidHeader)
	}
	h.Shape = shape
	return h, nil
}

// literalParser handles the subset of Python literals numpy writes in headers
type literalParser struct {
	s   string
	pos int
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t' || p.s[p.pos] == '\n') {
		p.pos++
	}
}

func (p *literalParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *literalParser) expect(c byte) error {
	if p.peek() != c {
		return fmt.Errorf("expected %q at offset %d", c, p.pos)
	}
	p.pos++
	return nil
}

func (p *literalParser) dict() (map[string]any, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	out := make(map[string]any)
	for {
		if p.peek() == '}' {
			p.pos++
			return out, nil
		}
		key, err := p.str()
		if err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		val, err := p.value()
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		out[key] = val

		switch p.peek() {
		case ',':
			p.pos++
		case '}':
		default:
			return nil, fmt.Errorf("expected ',' or '}' at offset %d", p.pos)
		}
	}
}

func (p *literalParser) str() (string, error) {
	q := p.peek()
	if q != '\'' && q != '"' {
		return "", fmt.Errorf("expected string at offset %d", p.pos)
	}
	end := strings.IndexByte(p.s[p.pos+1:], q)
	if end < 0 {
		return "", fmt.Errorf("unterminated string at offset %d", p.pos)
	}
	v := p.s[p.pos+1 : p.pos+1+end]
	p.pos += end + 2
	return v, nil
}

func (p *literalParser) value() (any, error) {
	switch c := p.peek(); {
	case c == '\'' || c == '"':
		return p.str()
	case c == '(':
		return p.tuple()
	case c == '[':
		// structured dtypes; only the raw text is kept
		return p.balanced('[', ']')
	case strings.HasPrefix(p.s[p.pos:], "True"):
		p.pos += 4
		return true, nil
	case strings.HasPrefix(p.s[p.pos:], "False"):
		p.pos += 5
		return false, nil
	default:
		return nil, fmt.Errorf("unexpected value at offset %d", p.pos)
	}
}

func (p *literalParser) tuple() ([]int, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	dims := []int{}
	for {
		if p.peek() == ')' {
			p.pos++
			return dims, nil
		}
		start := p.pos
		for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			p.pos++
		}
		// numpy 1.x on Windows wrote long literals like 10L
		digits := p.s[start:p.pos]
		if p.pos < len(p.s) && p.s[p.pos] == 'L' {
			p.pos++
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil, fmt.Errorf("bad dimension at offset %d", start)
		}
		dims = append(dims, n)

		switch p.peek() {
		case ',':
			p.pos++
		case ')':
		default:
			return nil, fmt.Errorf("expected ',' or ')' at offset %d", p.pos)
		}
	}
}

func (p *literalParser) balanced(open, close byte) (string, error) {
	start := p.pos
	depth := 0
	var quote byte
	for ; p.pos < len(p.s); p.pos++ {
		c := p.s[p.pos]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				p.pos++
				return p.s[start:p.pos], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced %q at offset %d", open, start)
}

// DType is a decoded simple dtype descriptor such as "<f8"
type DType struct {
	Order binary.ByteOrder
	Kind  byte
	Size  int
}

// ParseDType decodes a simple (non-structured) descr string
func ParseDType(descr string) (DType, error) {
	if len(descr) < 2 {
		return DType{}, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
	}

	dt := DType{Order: binary.LittleEndian}
	rest := descr
	switch descr[0] {
	case '<', '|':
		rest = descr[1:]
	case '>':
		dt.Order = binary.BigEndian
		rest = descr[1:]
	case '=':
		dt.Order = binary.NativeEndian
		rest = descr[1:]
	}
	if len(rest) < 2 {
		return DType{}, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
	}

	dt.Kind = rest[0]
	size, err := strconv.Atoi(rest[1:])
	if err != nil {
		return DType{}, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
	}
	dt.Size = size

	switch {
	case dt.Kind == 'f' && (size == 4 || size == 8):
	case (dt.Kind == 'i' || dt.Kind == 'u') && (size == 1 || size == 2 || size == 4 || size == 8):
	case dt.Kind == 'b' && size == 1:
	default:
		return DType{}, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
	}
	return dt, nil
}

// Decode converts one element's raw bytes to a float64
func (dt DType) Decode(b []byte) (float64, error) {
	if len(b) < dt.Size {
		return 0, fmt.Errorf("short element: have %d bytes, need %d", len(b), dt.Size)
	}
	switch dt.Kind {
	case 'f':
		if dt.Size == 4 {
			return float64(math.Float32frombits(dt.Order.Uint32(b))), nil
		}
		return math.Float64frombits(dt.Order.Uint64(b)), nil
	case 'i':
		switch dt.Size {
		case 1:
			return float64(int8(b[0])), nil
		case 2:
			return float64(int16(dt.Order.Uint16(b))), nil
		case 4:
			return float64(int32(dt.Order.Uint32(b))), nil
		default:
			return float64(int64(dt.Order.Uint64(b))), nil
		}
	case 'u':
		switch dt.Size {
		case 1:
			return float64(b[0]), nil
		case 2:
			return float64(dt.Order.Uint16(b)), nil
		case 4:
			return float64(dt.Order.Uint32(b)), nil
		default:
			return float64(dt.Order.Uint64(b)), nil
		}
	case 'b':
		if b[0] != 0 {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("%w: kind %q", ErrUnsupportedDType, dt.Kind)
}
