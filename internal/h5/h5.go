// Package h5 reads particle fields from SPH-Flow HDF5 output.
package h5

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/scigolib/hdf5"

	"github.com/san-kum/sphpost/internal/log"
	"github.com/san-kum/sphpost/internal/particles"
)

// DefaultFluidGroup is the group holding the fluid particles.
const DefaultFluidGroup = "Fluid#0"

var required = func() map[string]bool {
	m := make(map[string]bool, len(particles.RequiredFields))
	for _, name := range particles.RequiredFields {
		m[name] = true
	}
	return m
}()

// Dataset is the part of an HDF5 dataset the reader depends on.
type Dataset interface {
	Read() ([]float64, error)
}

// ReadGroup opens file and returns every dataset directly below group.
func ReadGroup(file, group string) (particles.Fields, error) {
	if _, err := os.Stat(file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &particles.InputError{Path: file, Wrapped: particles.ErrMissingInput}
		}
		return nil, err
	}

	f, err := hdf5.Open(file)
	if err != nil {
		return nil, &particles.InputError{Path: file, Wrapped: fmt.Errorf("%w: %v", particles.ErrMalformedData, err)}
	}
	defer f.Close()

	datasets := make(map[string]Dataset)
	f.Walk(func(p string, obj hdf5.Object) {
		if ds, ok := obj.(*hdf5.Dataset); ok {
			datasets[p] = ds
		}
	})

	fields, err := Collect(datasets, group)
	if err != nil {
		return nil, &particles.InputError{Path: file, Wrapped: err}
	}
	return fields, nil
}

// Collect reads the required particle fields among the datasets whose parent
// is group. Other datasets are never read, so unsupported types next to the
// fields do no harm. Keys are full object paths as reported by a file walk,
// with or without a leading slash.
func Collect(datasets map[string]Dataset, group string) (particles.Fields, error) {
	prefix := "/" + strings.Trim(group, "/")
	fields := make(particles.Fields)
	for p, ds := range datasets {
		p = "/" + strings.TrimPrefix(p, "/")
		if path.Dir(p) != prefix {
			continue
		}
		if !required[path.Base(p)] {
			log.Debugw("skipping dataset", "dataset", p)
			continue
		}
		values, err := ds.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: dataset %s: %v", particles.ErrMalformedData, p, err)
		}
		fields[path.Base(p)] = values
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: group %q not found or empty", particles.ErrMalformedData, group)
	}
	return fields, nil
}
