package tonegen

import (
	"fmt"
	"reflect"
)

type Initer interface {
	InitAudio(Params)
}

// Params describes the device stream a component renders for.
type Params struct {
	SampleRate float64
	BlockSize  int
}

func (p *Params) InitAudio(q Params) { *p = q }

// Init calls InitAudio on x if it is an Initer.  Otherwise it descends into
// the exported fields of a struct and the elements of a slice or array and
// initializes every Initer it finds.
//
// Init panics on a component held by value whose InitAudio has a pointer
// receiver, since the call would only change a copy.
func Init(x any, p Params) {
	if x == nil {
		return
	}
	if err := initVal(reflect.ValueOf(x), p, reflect.TypeOf(x).String()); err != nil {
		panic("tonegen.Init: " + err.Error())
	}
}

var initerType = reflect.TypeFor[Initer]()

func initVal(v reflect.Value, p Params, path string) error {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() || !v.CanInterface() || v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}

	if v.Kind() != reflect.Pointer && v.CanAddr() {
		v = v.Addr()
	}
	if x, ok := v.Interface().(Initer); ok {
		x.InitAudio(p)
		return nil
	}
	if v.Kind() != reflect.Pointer && reflect.PointerTo(v.Type()).Implements(initerType) {
		return fmt.Errorf("%s: %s is not addressable, only *%[2]s implements Initer", path, v.Type())
	}

	v = reflect.Indirect(v)
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := range v.NumField() {
			if err := initVal(v.Field(i), p, path+"."+t.Field(i).Name); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			if err := initVal(v.Index(i), p, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}
