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
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/sofa"
	"github.com/spf13/cast"
)

// setConfig finds and reads in the configuration file, if there is one,
// and sets up logging.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("sofa: problem reading configuration file: %v", err)
		}
	}
	return setLogger(logrus.StandardLogger(), Cfg.GetString("LogLevel"))
}

// setLogger configures log with a text formatter and the named level.
func setLogger(log *logrus.Logger, level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("sofa: invalid LogLevel: %v", err)
	}
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	log.Level = lvl
	return nil
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		o := make(map[string]string)
		if v == "" {
			return o, nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("sofa: parsing %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("sofa: invalid type for variable %s: %#v", varName, i)
	}
}

// dimensionSizes returns the Dimensions configuration as sizes. Values may
// be numbers or numeric strings.
func dimensionSizes(cfg *viper.Viper) (map[string]int, error) {
	raw := make(map[string]interface{})
	switch v := cfg.Get("Dimensions").(type) {
	case nil:
	case map[string]interface{}:
		raw = v
	case map[string]string:
		for k, s := range v {
			raw[k] = s
		}
	case string:
		if v != "" {
			if err := json.Unmarshal([]byte(v), &raw); err != nil {
				return nil, fmt.Errorf("sofa: parsing Dimensions: %v", err)
			}
		}
	default:
		return nil, fmt.Errorf("sofa: invalid type for variable Dimensions: %#v", v)
	}
	o := make(map[string]int, len(raw))
	for k, v := range raw {
		k = strings.ToUpper(k)
		n, err := cast.ToIntE(v)
		if err != nil {
			return nil, fmt.Errorf("sofa: dimension %s: %v", k, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("sofa: dimension %s=%d but should be >0", k, n)
		}
		o[k] = n
	}
	return o, nil
}

// attributes returns the Attributes configuration. Keys read from a
// configuration file are lower case, so names of attributes in the schema
// are restored to their canonical spelling.
func attributes(cfg *viper.Viper, s *sofa.AttributeSchema) (map[string]string, error) {
	m, err := GetStringMapString("Attributes", cfg)
	if err != nil {
		return nil, err
	}
	o := make(map[string]string, len(m))
	for k, v := range m {
		for _, name := range s.Names() {
			if strings.EqualFold(k, name) {
				k = name
				break
			}
		}
		o[k] = v
	}
	return o, nil
}

// convention returns the registered convention named by the convention
// option, or nil if the option is not set.
func convention(cfg *viper.Viper, r *sofa.Registry) (*sofa.Convention, error) {
	name := cfg.GetString("convention")
	if name == "" {
		return nil, nil
	}
	c, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("sofa: convention %s is not registered; registered conventions are %v", name, r.Names())
	}
	return c, nil
}
