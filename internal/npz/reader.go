package npz

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/quantmind-br/motionscan/internal/domain"
)

// Ensure Opener implements domain.ArchiveOpener
var _ domain.ArchiveOpener = (*Opener)(nil)

// Ensure Archive implements domain.Archive
var _ domain.Archive = (*Archive)(nil)

// Opener opens .npz files from the local filesystem
type Opener struct{}

// NewOpener creates a new npz opener
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens the archive at path. The caller must Close it.
func (o *Opener) Open(path string) (domain.Archive, error) {
	return OpenFile(path)
}

// Archive is an opened .npz file
type Archive struct {
	path    string
	rc      *zip.ReadCloser
	members map[string]*zip.File
}

// OpenFile opens the archive at path and indexes its members
func OpenFile(path string) (*Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}

	a := &Archive{
		path:    path,
		rc:      rc,
		members: make(map[string]*zip.File, len(rc.File)),
	}
	for _, f := range rc.File {
		a.members[strings.TrimSuffix(f.Name, ".npy")] = f
	}
	return a, nil
}

// Path returns the file the archive was opened from
func (a *Archive) Path() string {
	return a.path
}

// Fields returns the field names in sorted order
func (a *Archive) Fields() []string {
	names := make([]string, 0, len(a.members))
	for name := range a.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the archive contains a field
func (a *Archive) Has(name string) bool {
	_, ok := a.members[name]
	return ok
}

// Header reads and parses the NPY header of a field
func (a *Archive) Header(name string) (*Header, error) {
	rc, err := a.openMember(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	h, err := ReadHeader(rc)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", name, err)
	}
	return h, nil
}

// Shape returns the dimensions of a field
func (a *Archive) Shape(name string) ([]int, error) {
	h, err := a.Header(name)
	if err != nil {
		return nil, err
	}
	return h.Shape, nil
}

// Scalar reads a field holding exactly one element
func (a *Archive) Scalar(name string) (float64, error) {
	rc, err := a.openMember(name)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	h, err := ReadHeader(rc)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	if n := h.Len(); n != 1 {
		return 0, fmt.Errorf("field %s: %w (shape %v)", name, ErrNotScalar, h.Shape)
	}

	dt, err := ParseDType(h.Descr)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}

	buf := make([]byte, dt.Size)
	if _, err := io.ReadFull(rc, buf); err != nil {
		return 0, fmt.Errorf("field %s: reading value: %w", name, err)
	}
	return dt.Decode(buf)
}

// Close releases the underlying file
func (a *Archive) Close() error {
	return a.rc.Close()
}

func (a *Archive) openMember(name string) (io.ReadCloser, error) {
	f, ok := a.members[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	return f.Open()
}
