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

// Package sofautil contains the command-line interface for validating,
// inspecting and creating SOFA files.
package sofautil

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spatialmodel/sofa"
)

// open opens the SOFA file at path, downloading it first if it is remote.
func open(ctx context.Context, path string) (*sofa.File, error) {
	local, err := maybeDownload(ctx, path)
	if err != nil {
		return nil, err
	}
	return sofa.Open(local)
}

// Validate validates the files at paths and writes one line per file to w.
// If conv is nil, each file is checked against the registered convention
// named by its SOFAConventions attribute. If all is true, every base
// validation failure of a file is listed instead of only the first.
// An error is returned if any file is invalid.
func Validate(ctx context.Context, w io.Writer, v *sofa.Validator, conv *sofa.Convention, all bool, paths ...string) error {
	var invalid int
	for _, path := range paths {
		f, err := open(ctx, path)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", path, err)
			invalid++
			continue
		}
		errs := validateFile(v, path, f, conv, all)
		f.Close()
		if len(errs) == 0 {
			fmt.Fprintf(w, "%s: valid\n", path)
			continue
		}
		invalid++
		if !all {
			fmt.Fprintf(w, "%s: invalid: %v\n", path, errs[0])
			continue
		}
		fmt.Fprintf(w, "%s: invalid\n", path)
		for _, err := range errs {
			fmt.Fprintf(w, "\t* %v\n", err)
		}
	}
	if invalid > 0 {
		return fmt.Errorf("sofa: %d of %d files are invalid", invalid, len(paths))
	}
	return nil
}

func validateFile(v *sofa.Validator, path string, f *sofa.File, conv *sofa.Convention, all bool) []error {
	if conv == nil {
		conv, _ = v.ConventionOf(f)
	}
	if all {
		errs := v.ValidateAll(f)
		if len(errs) == 0 && conv != nil {
			if err := conv.Check(f.Dataset); err != nil {
				errs = append(errs, err)
			}
		}
		return errs
	}
	var err error
	if conv != nil {
		err = v.ValidateConvention(f, conv)
	} else {
		err = v.Validate(f)
	}
	if err != nil {
		v.Log.WithField("file", path).Debug(err)
		return []error{err}
	}
	return nil
}

// Info writes a report on the file at path to w. If raw is true, the
// global attributes are additionally dumped with their stored types.
func Info(ctx context.Context, w io.Writer, v *sofa.Validator, path string, all, raw bool) error {
	f, err := open(ctx, path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := v.Inspect(f, all).Write(w); err != nil {
		return err
	}
	if !raw {
		return nil
	}
	attrs := make(map[string]interface{})
	for _, a := range f.Attributes("") {
		attrs[a] = f.GetAttribute("", a)
	}
	printer := spew.ConfigState{
		Indent:                  " ",
		SortKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	printer.Fdump(w, attrs)
	return nil
}

// CreateOptions specifies a file to be created.
type CreateOptions struct {
	// Template is the path to a TOML template. If it is empty, a template
	// is generated from DataType and Dimensions.
	Template string

	DataType   sofa.DataType
	Dimensions map[string]int

	// Attributes override the global attributes of the template.
	Attributes map[string]string

	// Convention, if not nil, sets the convention attributes. When no
	// template is given its DataType is used instead of DataType.
	Convention *sofa.Convention

	// Output is the location of the created file. It can be a blob
	// storage location.
	Output string
}

// Create creates a SOFA file as specified by o. The created file is
// validated and a warning is logged if it is not valid.
func Create(ctx context.Context, v *sofa.Validator, o *CreateOptions) error {
	t, err := template(ctx, o)
	if err != nil {
		return err
	}
	if h, err := t.Header(); err != nil {
		return err
	} else if !v.IsValidAs(h) {
		v.Log.WithField("output", o.Output).Warn("sofa: creating invalid file")
	}

	output := o.Output
	if IsBlob(o.Output) {
		dir, err := ioutil.TempDir("", "sofa")
		if err != nil {
			return fmt.Errorf("sofa: %v", err)
		}
		defer os.RemoveAll(dir)
		output = filepath.Join(dir, baseName(o.Output))
	}
	w, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("sofa: creating output file: %v", err)
	}
	if err := sofa.Create(w, t); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("sofa: %v", err)
	}
	if output != o.Output {
		return upload(ctx, output, o.Output)
	}
	return nil
}

func template(ctx context.Context, o *CreateOptions) (*sofa.Template, error) {
	var t *sofa.Template
	if o.Template != "" {
		path, err := maybeDownload(ctx, os.ExpandEnv(o.Template))
		if err != nil {
			return nil, err
		}
		r, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("sofa: opening template: %v", err)
		}
		defer r.Close()
		if t, err = sofa.ReadTemplate(r); err != nil {
			return nil, err
		}
	} else {
		dt := o.DataType
		if o.Convention != nil {
			dt = o.Convention.DataType
		}
		if !dt.Known() {
			return nil, fmt.Errorf("sofa: DataType not known: %s", dt)
		}
		t = sofa.NewTemplate(dt, o.Dimensions)
	}
	if o.Convention != nil {
		t.SetConvention(o.Convention)
	}
	if t.Attributes == nil {
		t.Attributes = make(map[string]string)
	}
	for k, val := range o.Attributes {
		t.Attributes[k] = val
	}
	return t, nil
}

// Attributes writes the attribute schema to w as a table.
func Attributes(w io.Writer, s *sofa.AttributeSchema) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tRequired\tReadOnly\tDefault")
	for _, a := range s.Specs() {
		def := "-"
		if a.HasDefault {
			def = fmt.Sprintf("%q", a.Default)
		}
		fmt.Fprintf(tw, "%s\t%t\t%t\t%s\n", a.Name, a.Required, a.ReadOnly, def)
	}
	return tw.Flush()
}

// Conventions writes the registered conventions to w.
func Conventions(w io.Writer, r *sofa.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tVersion\tDataType")
	for _, n := range r.Names() {
		c, _ := r.Lookup(n)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.VersionString(), c.DataType)
	}
	return tw.Flush()
}
