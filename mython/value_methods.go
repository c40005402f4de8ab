package mython

import (
	"fmt"
	"strconv"
)

func (k ValueKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNone:
		return "none"
	case KindClass:
		return "class"
	case KindInstance:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders the default printed form of a value. A ClassInstance with
// a __str__ method is rendered through the evaluator instead; this fallback
// prints its identity.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindString:
		return v.data.(string)
	case KindBool:
		if v.Bool() {
			return "True"
		}
		return "False"
	case KindEmpty, KindNone:
		return "None"
	case KindClass:
		return "Class " + v.data.(*Class).Name()
	case KindInstance:
		inst := v.data.(*Instance)
		return fmt.Sprintf("<%s object at %p>", inst.class.name, inst)
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// IsTrue reports the truthiness of a value handle: a true Bool, a non-zero
// Number, or a non-empty String. Everything else, None and class instances
// included, is false.
func IsTrue(v Value) bool {
	switch v.kind {
	case KindBool:
		return v.Bool()
	case KindNumber:
		return v.Number() != 0
	case KindString:
		return v.Str() != ""
	default:
		return false
	}
}

// isNoneish reports whether v carries no value: either the empty handle or
// the None constant. The two are interchangeable in comparisons and
// printing.
func isNoneish(v Value) bool {
	return v.kind == KindEmpty || v.kind == KindNone
}
