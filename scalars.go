package graphql

import (
	"encoding/json"
	"fmt"
	"math"
)

// builtinScalarDescriptions mirrors the five built-in scalar doc strings
// from the GraphQL spec, matching the teacher's definitions.go comments
// for Boolean/Int/Float/String/ID.
var builtinScalarDescriptions = map[string]string{
	"Int":     "The Int scalar type represents a signed 32-bit numeric non-fractional value.",
	"Float":   "The Float scalar type represents signed double-precision fractional values.",
	"String":  "The String scalar type represents textual data, represented as UTF-8 character sequences.",
	"Boolean": "The Boolean scalar type represents true or false.",
	"ID":      "The ID scalar type represents a unique identifier, serialized as a String.",
}

const (
	minInt32 = -(1 << 31)
	maxInt32 = (1 << 31) - 1
)

type intScalar struct{}

func (intScalar) CoerceInput(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case int:
		return coerceIntRange(int64(v))
	case int32:
		return coerceIntRange(int64(v))
	case int64:
		return coerceIntRange(v)
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("graphql: Int cannot represent non-integer value %v", v)
		}
		return coerceIntRange(int64(v))
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("graphql: Int cannot represent %v", v)
		}
		return coerceIntRange(i)
	default:
		return nil, fmt.Errorf("graphql: Int cannot represent non-integer value %v", value)
	}
}

func coerceIntRange(v int64) (interface{}, error) {
	if v < minInt32 || v > maxInt32 {
		return nil, fmt.Errorf("graphql: Int value %d is outside the signed 32-bit range", v)
	}
	return int(v), nil
}

func (s intScalar) CoerceLiteral(lit Literal) (interface{}, error) {
	v, ok := lit.(*IntValue)
	if !ok {
		return nil, fmt.Errorf("graphql: expected an Int literal, got %s", lit.literalKind())
	}
	return coerceIntRange(v.Value)
}

func (intScalar) CoerceOutput(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case int:
		return coerceIntRange(int64(v))
	case int32:
		return coerceIntRange(int64(v))
	case int64:
		return coerceIntRange(v)
	default:
		return nil, fmt.Errorf("graphql: Int resolver produced non-integer value %v (%T)", value, value)
	}
}

type floatScalar struct{}

func (floatScalar) CoerceInput(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("graphql: Float cannot represent %v", v)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("graphql: Float cannot represent non-numeric value %v", value)
	}
}

func (floatScalar) CoerceLiteral(lit Literal) (interface{}, error) {
	switch v := lit.(type) {
	case *FloatValue:
		return v.Value, nil
	case *IntValue:
		return float64(v.Value), nil
	default:
		return nil, fmt.Errorf("graphql: expected a Float or Int literal, got %s", lit.literalKind())
	}
}

func (floatScalar) CoerceOutput(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	default:
		return nil, fmt.Errorf("graphql: Float resolver produced non-numeric value %v (%T)", value, value)
	}
}

type stringScalar struct{ typeName string }

func (s stringScalar) CoerceInput(value interface{}) (interface{}, error) {
	str, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("graphql: %s cannot represent non-string value %v", s.typeName, value)
	}
	return str, nil
}

func (s stringScalar) CoerceLiteral(lit Literal) (interface{}, error) {
	v, ok := lit.(*StringValue)
	if !ok {
		return nil, fmt.Errorf("graphql: expected a String literal, got %s", lit.literalKind())
	}
	return v.Value, nil
}

func (s stringScalar) CoerceOutput(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return nil, fmt.Errorf("graphql: %s resolver produced non-string value %v (%T)", s.typeName, value, value)
	}
}

type boolScalar struct{}

func (boolScalar) CoerceInput(value interface{}) (interface{}, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("graphql: Boolean cannot represent non-boolean value %v", value)
	}
	return b, nil
}

func (boolScalar) CoerceLiteral(lit Literal) (interface{}, error) {
	v, ok := lit.(*BoolValue)
	if !ok {
		return nil, fmt.Errorf("graphql: expected a Boolean literal, got %s", lit.literalKind())
	}
	return v.Value, nil
}

func (boolScalar) CoerceOutput(value interface{}) (interface{}, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("graphql: Boolean resolver produced non-boolean value %v (%T)", value, value)
	}
	return b, nil
}

func builtinScalarImpls() map[string]ScalarImpl {
	return map[string]ScalarImpl{
		"Int":     intScalar{},
		"Float":   floatScalar{},
		"String":  stringScalar{typeName: "String"},
		"Boolean": boolScalar{},
		"ID":      stringScalar{typeName: "ID"},
	}
}
