// Package layering merges preset snapshots, such as course defaults under
// assignment overrides, into one effective snapshot.
package layering

import "reflect"

// MergeLayers composes snapshots ordered from strongest to weakest. A nil
// pointer, slice, map or interface in a stronger layer means "not set" and
// falls through to weaker layers; maps merge key by key; everything else is
// taken from the strongest layer that sets it.
func MergeLayers[T any](layers ...T) T {
	var zero T
	if len(layers) == 0 {
		return zero
	}

	merged := cloneValue(reflect.ValueOf(&layers[len(layers)-1]).Elem())
	for i := len(layers) - 2; i >= 0; i-- {
		merged = mergeValue(reflect.ValueOf(&layers[i]).Elem(), merged)
	}
	if !merged.IsValid() {
		return zero
	}
	return merged.Interface().(T)
}

func mergeValue(strong, weak reflect.Value) reflect.Value {
	switch strong.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice:
		if strong.IsNil() {
			return cloneValue(weak)
		}
		return cloneValue(strong)
	case reflect.Map:
		if strong.IsNil() {
			return cloneValue(weak)
		}
		result := reflect.MakeMapWithSize(strong.Type(), strong.Len())
		if weak.IsValid() && !weak.IsNil() {
			iter := weak.MapRange()
			for iter.Next() {
				result.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
			}
		}
		iter := strong.MapRange()
		for iter.Next() {
			result.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return result
	case reflect.Struct:
		result := reflect.New(strong.Type()).Elem()
		for i := 0; i < strong.NumField(); i++ {
			field := result.Field(i)
			if !field.CanSet() {
				continue
			}
			var weakField reflect.Value
			if weak.IsValid() {
				weakField = weak.Field(i)
			}
			field.Set(mergeValue(strong.Field(i), weakField))
		}
		return result
	default:
		return cloneValue(strong)
	}
}

// cloneValue deep copies v so merged snapshots never alias their inputs.
func cloneValue(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.New(v.Type().Elem())
		clone.Elem().Set(cloneValue(v.Elem()))
		return clone
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.New(v.Type()).Elem()
		clone.Set(cloneValue(v.Elem()))
		return clone
	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return clone
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneValue(v.Index(i)))
		}
		return clone
	case reflect.Struct:
		clone := reflect.New(v.Type()).Elem()
		clone.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if field := clone.Field(i); field.CanSet() {
				field.Set(cloneValue(v.Field(i)))
			}
		}
		return clone
	default:
		clone := reflect.New(v.Type()).Elem()
		clone.Set(v)
		return clone
	}
}
