package monitor

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// ErrUnknownSetting is returned for settings that don't exist.
var ErrUnknownSetting = errors.New("monitor: unknown setting")

type settings struct {
	DisasmLines     int    `doc:"default number of lines to disassemble"`
	MemDumpBytes    int    `doc:"default number of memory bytes to dump"`
	RunCycles       int    `doc:"default number of cycles to run"`
	CompressStates  bool   `doc:"brotli compress saved states"`
	NextDisasmAddr  uint16 `doc:"address of next disassembly"`
	NextMemDumpAddr uint16 `doc:"address of next memory dump"`
}

func newSettings() *settings {
	return &settings{
		DisasmLines:     10,
		MemDumpBytes:    64,
		RunCycles:       70224 / 4,
		CompressStates:  true,
		NextMemDumpAddr: 0xC000,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := range settingsFields {
		f := settingsType.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var line string
		switch f.kind {
		case reflect.Uint16:
			line = fmt.Sprintf("    %-16s $%04X", f.name, uint16(v.Uint()))
		default:
			line = fmt.Sprintf("    %-16s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-28s (%s)\n", line, f.doc)
	}
}

func (s *settings) Kind(key string) reflect.Kind {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return reflect.Invalid
	}
	return f.kind
}

// Set assigns value, which must be convertible to the setting's type.
func (s *settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	in := reflect.ValueOf(value)
	if !in.Type().ConvertibleTo(f.typ) || (f.kind == reflect.Bool) != (in.Kind() == reflect.Bool) {
		return fmt.Errorf("monitor: invalid value for %s", f.name)
	}
	reflect.ValueOf(s).Elem().Field(f.index).Set(in.Convert(f.typ))
	return nil
}
