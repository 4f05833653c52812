/*
Copyright © 2018 the sofa authors.
This file is part of sofa.

sofa is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

sofa is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with sofa.  If not, see <http://www.gnu.org/licenses/>.
*/

package sofa

import (
	"fmt"
	"io"
	"os"

	"github.com/ctessum/cdf"
)

// recordHeader reports the number of records as the length of the
// record dimension, which cdf reports as 0.
type recordHeader struct {
	*cdf.Header
	numRecs int
}

func (h recordHeader) Lengths(v string) []int {
	l := h.Header.Lengths(v)
	if l == nil {
		return nil
	}
	o := make([]int, len(l))
	copy(o, l)
	for i, n := range o {
		if n == 0 {
			o[i] = h.numRecs
		}
	}
	return o
}

// File is a SOFA file stored in NetCDF classic format.
type File struct {
	*Dataset
	cf     *cdf.File
	h      recordHeader
	closer io.Closer
}

// Open opens the SOFA file at path for reading.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sofa: %v", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("sofa: %v", err)
	}
	sf, err := NewFile(f, fi.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("sofa: opening %s: %v", path, err)
	}
	sf.closer = f
	return sf, nil
}

// NewFile reads a SOFA file of the given size from rw.
func NewFile(rw cdf.ReaderWriterAt, size int64) (*File, error) {
	cf, err := cdf.Open(rw)
	if err != nil {
		return nil, err
	}
	h := recordHeader{Header: cf.Header, numRecs: int(cf.Header.NumRecs(size))}
	return &File{
		Dataset: NewDataset(h),
		cf:      cf,
		h:       h,
	}, nil
}

// Header returns the underlying NetCDF header.
func (f *File) Header() *cdf.Header { return f.cf.Header }

// NumRecs returns the number of records along the record dimension, if
// there is one.
func (f *File) NumRecs() int { return f.h.numRecs }

// Close closes the underlying file, if the File was created by Open.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// VariableValues reads all values of variable name in row-major order.
func (f *File) VariableValues(name string) ([]float64, error) {
	if !f.HasVariable(name) {
		return nil, newError(MissingVariable, name, "Variable not found: %s", name)
	}
	lengths := f.h.Lengths(name)
	n := 1
	for _, l := range lengths {
		n *= l
	}
	if n == 0 {
		return []float64{}, nil
	}
	var begin, end []int
	if f.cf.Header.IsRecordVariable(name) {
		begin = make([]int, len(lengths))
		end = make([]int, len(lengths))
		for i, l := range lengths {
			end[i] = l - 1
		}
	}
	r := f.cf.Reader(name, begin, end)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("sofa: reading variable %s: %v", name, err)
	}
	switch v := buf.(type) {
	case []float64:
		return v, nil
	case []float32:
		o := make([]float64, len(v))
		for i, x := range v {
			o[i] = float64(x)
		}
		return o, nil
	case []int32:
		o := make([]float64, len(v))
		for i, x := range v {
			o[i] = float64(x)
		}
		return o, nil
	case []int16:
		o := make([]float64, len(v))
		for i, x := range v {
			o[i] = float64(x)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("sofa: variable %s is not numeric", name)
	}
}

// DataIR returns the values of Data.IR.
func (f *File) DataIR() ([]float64, error) { return f.VariableValues("Data.IR") }

// DataDelay returns the values of Data.Delay.
func (f *File) DataDelay() ([]float64, error) { return f.VariableValues("Data.Delay") }

// SamplingRate returns the values of Data.SamplingRate.
func (f *File) SamplingRate() ([]float64, error) { return f.VariableValues("Data.SamplingRate") }

// SamplingRateUnits returns the Units attribute of Data.SamplingRate.
func (f *File) SamplingRateUnits() (string, error) {
	return f.requiredVariableAttribute("Data.SamplingRate", "Units")
}

// DataIRChannelOrdering returns the ChannelOrdering attribute of Data.IR.
func (f *File) DataIRChannelOrdering() (string, error) {
	return f.requiredVariableAttribute("Data.IR", "ChannelOrdering")
}

// DataIRNormalization returns the Normalization attribute of Data.IR.
func (f *File) DataIRNormalization() (string, error) {
	return f.requiredVariableAttribute("Data.IR", "Normalization")
}

func (f *File) requiredVariableAttribute(name, attr string) (string, error) {
	v, ok, err := f.VariableAttribute(name, attr)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", newError(MissingVariableAttribute, name, "Missing Variable Attribute: %s.%s", name, attr)
	}
	return v, nil
}

// PositionValues returns the values of the position variable of entity k.
func (f *File) PositionValues(k EntityKind) ([]float64, error) {
	return f.VariableValues(k.PositionName())
}

// UpValues returns the values of the up variable of entity k.
func (f *File) UpValues(k EntityKind) ([]float64, error) { return f.VariableValues(k.UpName()) }

// ViewValues returns the values of the view variable of entity k.
func (f *File) ViewValues(k EntityKind) ([]float64, error) { return f.VariableValues(k.ViewName()) }

// ListenerPositionValues returns the values of ListenerPosition.
func (f *File) ListenerPositionValues() ([]float64, error) { return f.PositionValues(Listener) }

// ListenerUpValues returns the values of ListenerUp.
func (f *File) ListenerUpValues() ([]float64, error) { return f.UpValues(Listener) }

// ListenerViewValues returns the values of ListenerView.
func (f *File) ListenerViewValues() ([]float64, error) { return f.ViewValues(Listener) }

// SourcePositionValues returns the values of SourcePosition.
func (f *File) SourcePositionValues() ([]float64, error) { return f.PositionValues(Source) }

// SourceUpValues returns the values of SourceUp.
func (f *File) SourceUpValues() ([]float64, error) { return f.UpValues(Source) }

// SourceViewValues returns the values of SourceView.
func (f *File) SourceViewValues() ([]float64, error) { return f.ViewValues(Source) }

// ReceiverPositionValues returns the values of ReceiverPosition.
func (f *File) ReceiverPositionValues() ([]float64, error) { return f.PositionValues(Receiver) }

// ReceiverUpValues returns the values of ReceiverUp.
func (f *File) ReceiverUpValues() ([]float64, error) { return f.UpValues(Receiver) }

// ReceiverViewValues returns the values of ReceiverView.
func (f *File) ReceiverViewValues() ([]float64, error) { return f.ViewValues(Receiver) }

// EmitterPositionValues returns the values of EmitterPosition.
func (f *File) EmitterPositionValues() ([]float64, error) { return f.PositionValues(Emitter) }

// EmitterUpValues returns the values of EmitterUp.
func (f *File) EmitterUpValues() ([]float64, error) { return f.UpValues(Emitter) }

// EmitterViewValues returns the values of EmitterView.
func (f *File) EmitterViewValues() ([]float64, error) { return f.ViewValues(Emitter) }
