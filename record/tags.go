package record

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// fieldInfo is one mapped struct field.
type fieldInfo struct {
	name       string // display name; header text on write, match key on read
	index      []int  // reflect field index path
	fixedCol   int    // read-only fixed column; -1 when unbound
	skipRead   bool
	skipWrite  bool
	trueWord   string
	falseWord  string
	fieldType  reflect.Type
}

// typeInfo is the cached registry for one struct type.
type typeInfo struct {
	typ    reflect.Type
	fields []fieldInfo
}

var typeCache sync.Map // reflect.Type -> *typeInfo

// infoFor builds (or fetches) the registry for t, which must be a struct
// type. Pointers are dereferenced by the callers.
func infoFor(t reflect.Type) (*typeInfo, error) {
	if cached, ok := typeCache.Load(t); ok {
		return cached.(*typeInfo), nil
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	ti := &typeInfo{typ: t}
	seenNames := make(map[string]string) // lowercased display name -> field
	seenCols := make(map[int]string)     // fixed column -> field

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		fi, skip, err := parseTag(sf)
		if err != nil {
			return nil, &StructuralError{Type: t.String(), Reason: err.Error()}
		}
		if skip {
			continue
		}

		key := strings.ToLower(fi.name)
		if other, dup := seenNames[key]; dup {
			return nil, &StructuralError{Type: t.String(),
				Reason: fmt.Sprintf("fields %s and %s map the same column name %q", other, sf.Name, fi.name)}
		}
		seenNames[key] = sf.Name

		if fi.fixedCol >= 0 {
			if other, dup := seenCols[fi.fixedCol]; dup {
				return nil, &StructuralError{Type: t.String(),
					Reason: fmt.Sprintf("fields %s and %s both bind column index %d", other, sf.Name, fi.fixedCol)}
			}
			seenCols[fi.fixedCol] = sf.Name
		}

		ti.fields = append(ti.fields, fi)
	}

	actual, _ := typeCache.LoadOrStore(t, ti)
	return actual.(*typeInfo), nil
}

// parseTag interprets one field's xlsx tag. skip is true for `xlsx:"-"`.
func parseTag(sf reflect.StructField) (fieldInfo, bool, error) {
	fi := fieldInfo{
		name:      sf.Name,
		index:     sf.Index,
		fixedCol:  -1,
		fieldType: sf.Type,
	}

	tag, ok := sf.Tag.Lookup("xlsx")
	if !ok {
		return fi, false, nil
	}
	if tag == "-" {
		return fi, true, nil
	}

	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		fi.name = parts[0]
	}
	for _, opt := range parts[1:] {
		switch {
		case opt == "skipread":
			fi.skipRead = true
		case opt == "skipwrite":
			fi.skipWrite = true
		case strings.HasPrefix(opt, "index="):
			n, err := strconv.Atoi(opt[len("index="):])
			if err != nil {
				return fi, false, fmt.Errorf("field %s: bad index option %q", sf.Name, opt)
			}
			if n < 0 {
				return fi, false, fmt.Errorf("field %s: negative column index %d", sf.Name, n)
			}
			fi.fixedCol = n
		case strings.HasPrefix(opt, "true="):
			fi.trueWord = opt[len("true="):]
		case strings.HasPrefix(opt, "false="):
			fi.falseWord = opt[len("false="):]
		case opt == "":
			// tolerate trailing commas
		default:
			return fi, false, fmt.Errorf("field %s: unknown tag option %q", sf.Name, opt)
		}
	}
	return fi, false, nil
}
