package config

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// iniCodec lets viper read and write INI files. Sections become nested maps,
// keys in the unnamed default section stay at the top level. All values are
// decoded as strings; viper's weak typing converts them on Unmarshal.
type iniCodec struct{}

func (iniCodec) Decode(b []byte, v map[string]any) error {
	f, err := ini.Load(b)
	if err != nil {
		return fmt.Errorf("ini: %w", err)
	}
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			for _, k := range sec.Keys() {
				v[k.Name()] = k.Value()
			}
			continue
		}
		m := make(map[string]any, len(sec.Keys()))
		for _, k := range sec.Keys() {
			m[k.Name()] = k.Value()
		}
		v[sec.Name()] = m
	}
	return nil
}

func (iniCodec) Encode(v map[string]any) ([]byte, error) {
	f := ini.Empty()
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		switch val := v[name].(type) {
		case map[string]any:
			sec, err := f.NewSection(name)
			if err != nil {
				return nil, err
			}
			keys := make([]string, 0, len(val))
			for k := range val {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if _, err := sec.NewKey(k, fmt.Sprint(val[k])); err != nil {
					return nil, err
				}
			}
		default:
			if _, err := f.Section(ini.DefaultSection).NewKey(name, fmt.Sprint(val)); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewViper returns a viper instance that understands the "ini" config type.
func NewViper() *viper.Viper {
	reg := viper.NewCodecRegistry()
	if err := reg.RegisterCodec("ini", iniCodec{}); err != nil {
		panic(fmt.Sprintf("register ini codec: %v", err))
	}
	return viper.NewWithOptions(viper.WithCodecRegistry(reg))
}
