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

package sofautil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/sofa"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to sofa.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum level of log messages to print. Valid
              options are "debug", "info", "warning", and "error".`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "convention",
			usage: `
              convention specifies the name of a registered convention to check
              files against, or to set when creating a file. By default files
              are checked against the convention named by their SOFAConventions
              attribute.`,
			shorthand:  "c",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{validateCmd.Flags(), createCmd.Flags()},
		},
		{
			name: "all",
			usage: `
              all specifies whether to report every validation failure instead
              of only the first one.`,
			shorthand:  "a",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{validateCmd.Flags(), infoCmd.Flags()},
		},
		{
			name: "raw",
			usage: `
              raw specifies whether to additionally print the global attributes
              with their stored types.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{infoCmd.Flags()},
		},
		{
			name: "template",
			usage: `
              template is the path to a TOML file describing the file to be
              created. If it is empty, a file is created from DataType and
              Dimensions. The path can include environment variables and can
              be a URL or blob storage location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "DataType",
			usage: `
              DataType specifies the data layout of a created file. Valid
              options are "FIR", "FIRE", "SOS", and "TF".`,
			defaultVal: string(sofa.FIR),
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "Dimensions",
			usage: `
              Dimensions gives the sizes of the M, N, R, and E dimensions of
              a created file. Dimensions that are not given have size 1.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "Attributes",
			usage: `
              Attributes gives global attribute values of a created file.
              They override the values from the template.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the path where the created file should be written.
              It can include environment variables and can be a blob
              storage location.`,
			shorthand:  "o",
			defaultVal: "output.sofa",
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("SOFA")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				set.StringP(option.name, option.shorthand, b.String(), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(validateCmd)
	Root.AddCommand(infoCmd)
	Root.AddCommand(attributesCmd)
	Root.AddCommand(conventionsCmd)
	Root.AddCommand(createCmd)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "sofa",
	Short: "A validator for SOFA spatially oriented acoustic data files.",
	Long: `sofa checks files in the SOFA (AES69) format against the base
specification and its conventions, reports on their contents, and creates
new files from templates.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'SOFA_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this program and of the SOFA specification it implements.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("%s v%s (SOFA %s)\n", sofa.DefaultAPI.Name, sofa.DefaultAPI.Version(),
			sofa.DefaultAPI.SpecificationsVersion())
	},
	DisableAutoGenTag: true,
}

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate SOFA files.",
	Long: `validate checks each file against the base SOFA specification and
against its convention, and prints whether it is valid. Files can be local
paths, URLs, or blob storage locations.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := sofa.NewValidator()
		conv, err := convention(Cfg, v.Registry)
		if err != nil {
			return err
		}
		return Validate(context.Background(), cmd.OutOrStdout(), v, conv, Cfg.GetBool("all"), args...)
	},
	DisableAutoGenTag: true,
}

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Print information about a SOFA file.",
	Long: `info prints the global attributes, dimensions, entities, and
validation status of a file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Info(context.Background(), cmd.OutOrStdout(), sofa.NewValidator(), args[0],
			Cfg.GetBool("all"), Cfg.GetBool("raw"))
	},
	DisableAutoGenTag: true,
}

var attributesCmd = &cobra.Command{
	Use:   "attributes",
	Short: "List the global attributes.",
	Long: `attributes lists the recognized global attributes with whether they
are required and read-only, and their default values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Attributes(cmd.OutOrStdout(), sofa.DefaultSchema)
	},
	DisableAutoGenTag: true,
}

var conventionsCmd = &cobra.Command{
	Use:   "conventions",
	Short: "List the registered conventions.",
	Long:  "conventions lists the registered conventions with their versions and data types.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Conventions(cmd.OutOrStdout(), sofa.DefaultRegistry)
	},
	DisableAutoGenTag: true,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a SOFA file.",
	Long: `create writes a new SOFA file, either from a TOML template or with
the given DataType and Dimensions. Position and data variables without values
are filled with the NetCDF fill value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := sofa.NewValidator()
		o, err := createOptions(Cfg, v.Registry)
		if err != nil {
			return err
		}
		if err := Create(context.Background(), v, o); err != nil {
			return err
		}
		cmd.Printf("created %s\n", o.Output)
		return nil
	},
	DisableAutoGenTag: true,
}

func createOptions(cfg *viper.Viper, r *sofa.Registry) (*CreateOptions, error) {
	conv, err := convention(cfg, r)
	if err != nil {
		return nil, err
	}
	dims, err := dimensionSizes(cfg)
	if err != nil {
		return nil, err
	}
	attrs, err := attributes(cfg, sofa.DefaultSchema)
	if err != nil {
		return nil, err
	}
	output := os.ExpandEnv(cfg.GetString("output"))
	if output == "" {
		return nil, fmt.Errorf("sofa: output file is not specified")
	}
	return &CreateOptions{
		Template:   cfg.GetString("template"),
		DataType:   sofa.DataType(cfg.GetString("DataType")),
		Dimensions: dims,
		Attributes: attrs,
		Convention: conv,
		Output:     output,
	}, nil
}
