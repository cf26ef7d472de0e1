package filterexpr

import (
	"errors"
	"fmt"
	"strings"
)

// OrderSchema whitelists the keys a resource accepts in order_by and
// maps them to SQL column expressions.
type OrderSchema struct {
	Default     string
	DefaultDesc bool
	Fallback    string
	Fields      map[string]string
}

// ParseOrderBy validates an order_by string ("key", "key desc",
// "key asc, key2 desc") against the schema and returns the ORDER BY
// clause body. The fallback key is always appended as a tiebreaker so
// paginated listings stay deterministic.
func ParseOrderBy(raw string, schema OrderSchema) (string, error) {
	clause, err := parseOrderBy(raw, schema)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidExpr, err)
	}
	return clause, nil
}

func parseOrderBy(raw string, schema OrderSchema) (string, error) {
	if schema.Default == "" || schema.Fallback == "" {
		return "", errors.New("order schema requires default and fallback keys")
	}
	if _, ok := schema.Fields[schema.Default]; !ok {
		return "", fmt.Errorf("order key %q missing from schema fields", schema.Default)
	}
	if _, ok := schema.Fields[schema.Fallback]; !ok {
		return "", fmt.Errorf("fallback order key %q missing from schema fields", schema.Fallback)
	}

	type clause struct {
		key  string
		desc bool
	}
	var clauses []clause

	raw = strings.TrimSpace(raw)
	if raw != "" {
		seen := make(map[string]struct{})
		for _, seg := range strings.Split(raw, ",") {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}
			parts := strings.Fields(seg)
			key := parts[0]
			if _, ok := schema.Fields[key]; !ok {
				return "", fmt.Errorf("field %q cannot be used for ordering", key)
			}
			if _, dup := seen[key]; dup {
				return "", fmt.Errorf("duplicate order key %q", key)
			}
			seen[key] = struct{}{}

			var desc bool
			switch len(parts) {
			case 1:
			case 2:
				switch strings.ToLower(parts[1]) {
				case "asc":
				case "desc":
					desc = true
				default:
					return "", fmt.Errorf("invalid direction %q for field %q", parts[1], key)
				}
			default:
				return "", fmt.Errorf("invalid order segment %q", seg)
			}
			clauses = append(clauses, clause{key: key, desc: desc})
		}
	}

	if len(clauses) == 0 {
		clauses = append(clauses, clause{key: schema.Default, desc: schema.DefaultDesc})
	}
	if clauses[len(clauses)-1].key != schema.Fallback {
		clauses = append(clauses, clause{key: schema.Fallback})
	}

	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		expr := schema.Fields[c.key]
		if c.desc {
			expr += " DESC"
		}
		parts = append(parts, expr)
	}
	return strings.Join(parts, ", "), nil
}
