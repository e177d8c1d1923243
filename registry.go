package bcres

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// RegistryItem is one entry of an ArchiveRegistry: an id, the absolute
// offset and length of the archive member it names, and an
// opaque auxiliary word.
type RegistryItem struct {
	ID         string `yaml:"id"`
	FileOffset uint32 `yaml:"file_offset"`
	Aux        uint32 `yaml:"aux"`
	ByteLength uint32 `yaml:"byte_length"`
}

// ArchiveRegistry is the small index file accompanying a set of
// archive members, per spec.md §6 "Archive registry side-interface".
type ArchiveRegistry struct {
	Items []RegistryItem `yaml:"items"`
}

const registryEntrySize = 16 // id_ptr, file_offset, aux, byte_length, each u32.

// ParseRegistry decodes a registry buffer: a count, that many 16-byte
// entries, and a trailing string section holding each entry's
// null-terminated id.
func ParseRegistry(data []byte) (*ArchiveRegistry, error) {
	r := bytes.NewReader(data)

	count, err := readU32(r)
	if err != nil {
		return nil, err
	}

	items := make([]RegistryItem, count)
	for i := uint32(0); i < count; i++ {
		idPtr, hasID, err := readRelativePointer(r)
		if err != nil {
			return nil, err
		}
		var id string
		if hasID {
			if err := scopedSeek(r, idPtr, func() error {
				s, err := readCString(r)
				if err != nil {
					return err
				}
				id = s
				return nil
			}); err != nil {
				return nil, err
			}
		}
		fileOffset, err := readU32(r)
		if err != nil {
			return nil, err
		}
		aux, err := readU32(r)
		if err != nil {
			return nil, err
		}
		byteLength, err := readU32(r)
		if err != nil {
			return nil, err
		}
		items[i] = RegistryItem{ID: id, FileOffset: fileOffset, Aux: aux, ByteLength: byteLength}
	}

	return &ArchiveRegistry{Items: items}, nil
}

// Serialize re-emits the registry: count, 16-byte entries with
// back-patched relative id pointers, then the deduplicated string
// section (substring search, matching the container writer's string
// fixup in §4.F step 4).
func (a *ArchiveRegistry) Serialize() ([]byte, error) {
	buf := &bytes.Buffer{}
	w := &seekBuffer{buf: buf}

	if err := writeU32(w, uint32(len(a.Items))); err != nil {
		return nil, err
	}

	idLocs := make([]Pointer, len(a.Items))
	for i, item := range a.Items {
		loc, err := currentPos(w)
		if err != nil {
			return nil, err
		}
		idLocs[i] = loc
		if err := writeU32(w, 0); err != nil {
			return nil, err
		}
		if err := writeU32(w, item.FileOffset); err != nil {
			return nil, err
		}
		if err := writeU32(w, item.Aux); err != nil {
			return nil, err
		}
		if err := writeU32(w, item.ByteLength); err != nil {
			return nil, err
		}
	}

	stringSectionStart, err := currentPos(w)
	if err != nil {
		return nil, err
	}
	var section strings.Builder
	for i, item := range a.Items {
		idx := strings.Index(section.String(), item.ID)
		if idx < 0 {
			idx = section.Len()
			section.WriteString(item.ID)
			section.WriteByte(0)
		}
		absolute := Pointer(int64(stringSectionStart) + int64(idx))
		if err := writeAtPointer(w, idLocs[i], uint32(int64(absolute)-int64(idLocs[i]))); err != nil {
			return nil, err
		}
	}
	if _, err := w.Write([]byte(section.String())); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ToYAML renders the registry as human-editable YAML.
func (a *ArchiveRegistry) ToYAML() (string, error) {
	out, err := yaml.Marshal(a)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// RegistryFromYAML parses a registry previously produced by ToYAML.
func RegistryFromYAML(data []byte) (*ArchiveRegistry, error) {
	var a ArchiveRegistry
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
