// Package filterexpr turns AIP-style `filter` and `order_by` request
// strings into whitelisted query parameters. Filters are parsed as CEL
// expressions restricted to conjunctions of simple comparisons; every
// field and operator must be declared in the resource schema, so
// request input can never reach SQL unchecked.
package filterexpr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// ValueKind describes the kind of literal value a field accepts.
type ValueKind string

const (
	KindString    ValueKind = "string"
	KindNumber    ValueKind = "number"
	KindTimestamp ValueKind = "timestamp"
)

// Op represents a supported comparison operation.
type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpSW  Op = "startsWith"
	OpIN  Op = "in"
)

// FieldRule describes how a filter field maps to a bindings struct
// field and which operations are allowed on it.
type FieldRule struct {
	Kind ValueKind
	Ops  map[Op]string
}

// Schema whitelists the fields a resource accepts in filter expressions.
type Schema struct {
	Fields map[string]FieldRule
}

var timeType = reflect.TypeOf(time.Time{})

// ErrInvalidExpr marks errors caused by the caller-supplied filter or
// order_by string, as opposed to a misconfigured schema. Transports can
// test for it with errors.Is to return a client error.
var ErrInvalidExpr = errors.New("invalid list expression")

// BindCELTo parses the filter expression and assigns each predicate's
// literal into the bindings struct field named by the schema. Fields
// not mentioned in the filter are left untouched, so optional bindings
// should be pointers or slices.
func BindCELTo(filter string, bindings any, schema Schema) error {
	if err := bindCELTo(filter, bindings, schema); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExpr, err)
	}
	return nil
}

func bindCELTo(filter string, bindings any, schema Schema) error {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil
	}
	if len(schema.Fields) == 0 {
		return errors.New("filter schema has no fields defined")
	}

	dest, err := bindingStruct(bindings)
	if err != nil {
		return err
	}

	env, err := buildEnv(schema.Fields)
	if err != nil {
		return err
	}

	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("invalid filter: %w", issues.Err())
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return fmt.Errorf("failed to convert AST: %w", err)
	}

	conjuncts, err := extractConjuncts(parsed.GetExpr())
	if err != nil {
		return err
	}

	for _, expr := range conjuncts {
		pred, err := parseAtomicPredicate(expr)
		if err != nil {
			return err
		}

		rule, ok := schema.Fields[pred.Field]
		if !ok {
			return fmt.Errorf("field %q is not allowed", pred.Field)
		}
		targetName, ok := rule.Ops[pred.Op]
		if !ok {
			return fmt.Errorf("operator %q is not allowed for field %q", string(pred.Op), pred.Field)
		}
		if err := validateLiteral(rule.Kind, pred.Op, pred.Value); err != nil {
			return fmt.Errorf("field %q: %w", pred.Field, err)
		}

		field := dest.FieldByName(targetName)
		if !field.IsValid() {
			return fmt.Errorf("bindings struct %s has no field named %q", dest.Type(), targetName)
		}
		if !field.CanSet() {
			return fmt.Errorf("cannot set field %q on bindings struct", targetName)
		}
		if err := assignValue(field, pred.Value); err != nil {
			return fmt.Errorf("failed to assign field %q: %w", targetName, err)
		}
	}

	return nil
}

func bindingStruct(bindings any) (reflect.Value, error) {
	rv := reflect.ValueOf(bindings)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return reflect.Value{}, errors.New("bindings must be a non-nil pointer")
	}
	dest := rv.Elem()
	if dest.Kind() != reflect.Struct {
		return reflect.Value{}, errors.New("bindings must point to a struct")
	}
	return dest, nil
}

type atomicPredicate struct {
	Field string
	Op    Op
	Value any
}

func buildEnv(fields map[string]FieldRule) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(fields))
	for name, rule := range fields {
		celType, err := celTypeForKind(rule.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		opts = append(opts, cel.Variable(name, celType))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	return cel.NewEnv(opts...)
}

func celTypeForKind(kind ValueKind) (*cel.Type, error) {
	switch kind {
	case KindString:
		return cel.StringType, nil
	case KindNumber:
		return cel.DoubleType, nil
	case KindTimestamp:
		return cel.TimestampType, nil
	default:
		return nil, fmt.Errorf("unsupported field kind %s", kind)
	}
}

// extractConjuncts flattens nested AND chains. Any other logical
// operator is rejected: the binder only supports conjunctions.
func extractConjuncts(expr *exprpb.Expr) ([]*exprpb.Expr, error) {
	if expr == nil {
		return nil, errors.New("empty expression")
	}

	call := expr.GetCallExpr()
	if call == nil {
		return []*exprpb.Expr{expr}, nil
	}

	switch call.Function {
	case "_&&_":
		if len(call.Args) < 2 || call.Target != nil {
			return nil, errors.New("logical AND must have at least two operands")
		}
		var result []*exprpb.Expr
		for _, arg := range call.Args {
			conjuncts, err := extractConjuncts(arg)
			if err != nil {
				return nil, err
			}
			result = append(result, conjuncts...)
		}
		return result, nil
	case "_||_", "_?_:_", "!":
		return nil, fmt.Errorf("logical operator %q is not supported; only AND is allowed", call.Function)
	default:
		return []*exprpb.Expr{expr}, nil
	}
}

func parseAtomicPredicate(expr *exprpb.Expr) (atomicPredicate, error) {
	call := expr.GetCallExpr()
	if call == nil {
		return atomicPredicate{}, errors.New("unsupported expression; expected comparison or function call")
	}

	switch call.Function {
	case "_==_":
		return parseBinaryPredicate(call, OpEQ)
	case "_>=_":
		return parseBinaryPredicate(call, OpGTE)
	case "_<=_":
		return parseBinaryPredicate(call, OpLTE)
	case "_in_", "@in":
		return parseInPredicate(call)
	case "startsWith":
		return parseStartsWith(call)
	default:
		return atomicPredicate{}, fmt.Errorf("function %q is not supported", call.Function)
	}
}

func parseBinaryPredicate(call *exprpb.Expr_Call, op Op) (atomicPredicate, error) {
	if call.Target != nil || len(call.Args) != 2 {
		return atomicPredicate{}, fmt.Errorf("operator %q expects two operands", string(op))
	}
	fieldName, err := parseFieldIdent(call.Args[0])
	if err != nil {
		return atomicPredicate{}, err
	}
	value, err := parseLiteral(call.Args[1])
	if err != nil {
		return atomicPredicate{}, err
	}
	return atomicPredicate{Field: fieldName, Op: op, Value: value}, nil
}

func parseInPredicate(call *exprpb.Expr_Call) (atomicPredicate, error) {
	var fieldExpr, listExpr *exprpb.Expr
	if call.Target != nil {
		if len(call.Args) != 1 {
			return atomicPredicate{}, errors.New("in operator with receiver must have exactly one argument")
		}
		listExpr = call.Target
		fieldExpr = call.Args[0]
	} else {
		if len(call.Args) != 2 {
			return atomicPredicate{}, errors.New("in operator expects two operands")
		}
		fieldExpr = call.Args[0]
		listExpr = call.Args[1]
	}

	fieldName, err := parseFieldIdent(fieldExpr)
	if err != nil {
		return atomicPredicate{}, err
	}
	value, err := parseLiteral(listExpr)
	if err != nil {
		return atomicPredicate{}, err
	}
	return atomicPredicate{Field: fieldName, Op: OpIN, Value: value}, nil
}

func parseStartsWith(call *exprpb.Expr_Call) (atomicPredicate, error) {
	var fieldExpr, valueExpr *exprpb.Expr
	if call.Target != nil {
		if len(call.Args) != 1 {
			return atomicPredicate{}, errors.New("startsWith with receiver must have exactly one argument")
		}
		fieldExpr = call.Target
		valueExpr = call.Args[0]
	} else {
		if len(call.Args) != 2 {
			return atomicPredicate{}, errors.New("startsWith expects two operands")
		}
		fieldExpr = call.Args[0]
		valueExpr = call.Args[1]
	}

	fieldName, err := parseFieldIdent(fieldExpr)
	if err != nil {
		return atomicPredicate{}, err
	}
	value, err := parseLiteral(valueExpr)
	if err != nil {
		return atomicPredicate{}, err
	}
	return atomicPredicate{Field: fieldName, Op: OpSW, Value: value}, nil
}

func parseFieldIdent(expr *exprpb.Expr) (string, error) {
	ident := expr.GetIdentExpr()
	if ident == nil {
		return "", errors.New("left operand must be a plain field identifier")
	}
	return ident.Name, nil
}

func parseLiteral(expr *exprpb.Expr) (any, error) {
	if list := expr.GetListExpr(); list != nil {
		values := make([]any, 0, len(list.Elements))
		for _, elem := range list.Elements {
			v, err := parseLiteral(elem)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	}

	if call := expr.GetCallExpr(); call != nil && call.Function == "timestamp" {
		if len(call.Args) != 1 {
			return nil, errors.New("timestamp() expects one argument")
		}
		raw, err := parseLiteral(call.Args[0])
		if err != nil {
			return nil, err
		}
		s, ok := raw.(string)
		if !ok {
			return nil, errors.New("timestamp() argument must be a string literal")
		}
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp literal: %w", err)
		}
		return ts, nil
	}

	konst := expr.GetConstExpr()
	if konst == nil {
		return nil, errors.New("right operand must be a literal")
	}
	switch v := konst.ConstantKind.(type) {
	case *exprpb.Constant_StringValue:
		return v.StringValue, nil
	case *exprpb.Constant_Int64Value:
		return float64(v.Int64Value), nil
	case *exprpb.Constant_Uint64Value:
		return float64(v.Uint64Value), nil
	case *exprpb.Constant_DoubleValue:
		return v.DoubleValue, nil
	case *exprpb.Constant_BoolValue:
		return v.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported literal kind %T", v)
	}
}

func validateLiteral(kind ValueKind, op Op, value any) error {
	if op == OpIN {
		values, ok := value.([]any)
		if !ok {
			return errors.New("in operator expects a list literal")
		}
		for _, v := range values {
			if err := validateScalar(kind, v); err != nil {
				return err
			}
		}
		return nil
	}
	return validateScalar(kind, value)
}

func validateScalar(kind ValueKind, value any) error {
	switch kind {
	case KindString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string literal, got %T", value)
		}
	case KindNumber:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("expected numeric literal, got %T", value)
		}
	case KindTimestamp:
		if _, ok := value.(time.Time); !ok {
			return errors.New("expected timestamp() literal")
		}
	default:
		return fmt.Errorf("unsupported field kind %s", kind)
	}
	return nil
}

func assignValue(field reflect.Value, value any) error {
	if values, ok := value.([]any); ok {
		if field.Kind() != reflect.Slice {
			return fmt.Errorf("list literal requires a slice field, got %s", field.Type())
		}
		slice := reflect.MakeSlice(field.Type(), 0, len(values))
		for _, v := range values {
			elem := reflect.New(field.Type().Elem()).Elem()
			if err := assignScalar(elem, v); err != nil {
				return err
			}
			slice = reflect.Append(slice, elem)
		}
		field.Set(slice)
		return nil
	}

	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return assignScalar(field.Elem(), value)
	}
	return assignScalar(field, value)
}

func assignScalar(field reflect.Value, value any) error {
	rv := reflect.ValueOf(value)
	if field.Type() == timeType {
		ts, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("field requires time.Time, got %T", value)
		}
		field.Set(reflect.ValueOf(ts))
		return nil
	}
	if !rv.Type().ConvertibleTo(field.Type()) {
		return fmt.Errorf("cannot convert %T to %s", value, field.Type())
	}
	field.Set(rv.Convert(field.Type()))
	return nil
}
