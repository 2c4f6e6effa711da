package story

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Format is an on-disk story encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatINI  Format = "ini"
)

// Formats lists every supported format.
var Formats = []Format{FormatYAML, FormatTOML, FormatINI}

// ParseFormat resolves a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "ini":
		return FormatINI, nil
	default:
		return "", fmt.Errorf("unsupported story format %q", name)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("story file %s has no extension", filepath.Base(path))
	}
	return ParseFormat(ext)
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

func (f Format) String() string {
	return string(f)
}

// document is the generic tree every format decodes into before the world
// is built from it.
type document = map[string]any

func decodeDocument(data []byte, f Format) (document, error) {
	switch f {
	case FormatYAML:
		doc := document{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
		return doc, nil
	case FormatTOML:
		doc := document{}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing toml: %w", err)
		}
		return doc, nil
	case FormatINI:
		return decodeINI(data)
	default:
		return nil, fmt.Errorf("unsupported story format %q", f)
	}
}

// decodeINI maps [story], [room.<id>] and [item.<id>] sections onto the
// same tree the other formats produce. Room item lists are comma separated.
// Only whole lines are comments, so '#' and ';' may appear inside values.
func decodeINI(data []byte) (document, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return nil, fmt.Errorf("parsing ini: %w", err)
	}

	doc := document{}
	rooms := document{}
	items := document{}

	for _, sec := range cfg.Sections() {
		name := sec.Name()
		switch {
		case name == ini.DefaultSection:
			if len(sec.Keys()) > 0 {
				return nil, fmt.Errorf("parsing ini: keys outside a section")
			}
		case name == "story":
			doc["story"] = iniTable(sec, nil)
		case strings.HasPrefix(name, "room."):
			rooms[strings.TrimPrefix(name, "room.")] = iniTable(sec, map[string]bool{"items": true})
		case strings.HasPrefix(name, "item."):
			items[strings.TrimPrefix(name, "item.")] = iniTable(sec, nil)
		default:
			return nil, fmt.Errorf("parsing ini: unknown section [%s]", name)
		}
	}

	if len(rooms) > 0 {
		doc["rooms"] = rooms
	}
	if len(items) > 0 {
		doc["items"] = items
	}
	return doc, nil
}

func iniTable(sec *ini.Section, lists map[string]bool) document {
	table := document{}
	for _, key := range sec.Keys() {
		if lists[key.Name()] {
			var values []any
			for _, v := range key.Strings(",") {
				values = append(values, v)
			}
			table[key.Name()] = values
			continue
		}
		table[key.Name()] = key.String()
	}
	return table
}
