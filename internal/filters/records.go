package filters

import (
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// SafeFileSize returns the size in bytes of a stored file, or 0 when there is
// no file, it has no name, or its size cannot be read.
func SafeFileSize(file StoredFile) (size int64) {
	defer func() {
		if recover() != nil {
			size = 0
		}
	}()

	if isNil(file) || file.Name() == "" {
		return 0
	}

	n, err := file.Size()
	if err != nil {
		return 0
	}
	return n
}

// HasType reports whether any member of the set carries the lowercased label.
func HasType(set TypeSet, label string) (found bool) {
	defer func() {
		if recover() != nil {
			found = false
		}
	}()

	if isNil(set) {
		return false
	}
	return set.ContainsType(strings.ToLower(label))
}

// fileInfo adapts an fs.FileInfo, whose size is already known.
type fileInfo struct {
	fs.FileInfo
}

func (f fileInfo) Size() (int64, error) {
	return f.FileInfo.Size(), nil
}

// openFile adapts an *os.File, whose size needs a stat call.
type openFile struct {
	*os.File
}

func (f openFile) Size() (int64, error) {
	info, err := f.File.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func asStoredFile(value any) (StoredFile, bool) {
	switch v := value.(type) {
	case StoredFile:
		return v, true
	case *os.File:
		if v == nil {
			return nil, false
		}
		return openFile{v}, true
	case fs.FileInfo:
		return fileInfo{v}, true
	}
	return nil, false
}

// typedSlice lets a plain slice of Typed members or of maps with a "type"
// key act as a TypeSet.
type typedSlice struct {
	items reflect.Value
}

func (s typedSlice) ContainsType(label string) bool {
	for i := 0; i < s.items.Len(); i++ {
		item := s.items.Index(i).Interface()
		if isNil(item) {
			continue
		}
		switch v := item.(type) {
		case Typed:
			if v.ComponentType() == label {
				return true
			}
		default:
			if isLookup(v) {
				if t, ok := lookup(v, "type"); ok && cast.ToString(t) == label {
					return true
				}
			}
		}
	}
	return false
}

func asTypeSet(value any) (TypeSet, bool) {
	if set, ok := value.(TypeSet); ok {
		return set, true
	}
	if value == nil {
		return nil, false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return nil, false
		}
		return typedSlice{items: rv}, true
	}
	return nil, false
}
