package stormsql

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/asdine/storm/v3/q"
	"github.com/pkg/errors"
	"github.com/xwb1989/sqlparser"
)

// A FieldMapper resolves a filter attribute to the struct field name used by storm.
// It returns an error when the attribute is not filterable.
type FieldMapper func(attribute string) (string, error)

// ParseFilter parses a search filter expression into a storm matcher.
//
// The grammar is a SQL WHERE clause: `attribute = "value"` comparisons combined with AND, OR, NOT and parentheses.
// Equality and IN on a slice field match when the slice contains the value.
// An empty expression matches everything.
func ParseFilter(filter string, mapper FieldMapper) (q.Matcher, error) {
	if strings.TrimSpace(filter) == "" {
		return q.And(), nil
	}

	if err := rejectComments(filter); err != nil {
		return nil, err
	}

	stmt, err := sqlparser.Parse("SELECT * FROM hits WHERE " + filter)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse filter")
	}

	s, ok := stmt.(*sqlparser.Select)
	if !ok || s.Where == nil || s.Limit != nil || len(s.OrderBy) > 0 || len(s.GroupBy) > 0 || s.Having != nil || s.Lock != "" {
		return nil, errors.New("filter must only contain conditions")
	}

	p := &parser{
		mapper: mapper,
		eq:     contains,
	}
	return p.where(s.Where.Expr)
}

// rejectComments fails when the filter holds a comment, comments are not part of the filter grammar.
func rejectComments(filter string) error {
	// MySQL-specific comments are expanded by the tokenizer instead of being reported.
	if strings.Contains(filter, "/*!") {
		return errors.New("filter must not contain comments")
	}

	tokenizer := sqlparser.NewStringTokenizer(filter)
	for {
		typ, _ := tokenizer.Scan()
		switch typ {
		case 0, sqlparser.LEX_ERROR:
			return nil
		case sqlparser.COMMENT:
			return errors.New("filter must not contain comments")
		}
	}
}

type parser struct {
	mapper FieldMapper
	eq     func(field string, value any) q.Matcher
	dates  bool
}

func (p *parser) where(expr sqlparser.Expr) (q.Matcher, error) {
	switch v := expr.(type) {
	//
	//
	//
	case *sqlparser.ComparisonExpr:
		return p.comparison(v)
		//
		//
		//
	case *sqlparser.IsExpr:
		col, ok := v.Expr.(*sqlparser.ColName)
		if !ok {
			return nil, errors.New("unsupported IS expression")
		}
		field, err := p.mapper(col.Name.String())
		if err != nil {
			return nil, err
		}

		switch v.Operator {
		case sqlparser.IsNullStr:
			return q.Eq(field, nil), nil
		case sqlparser.IsNotNullStr:
			return q.Not(q.Eq(field, nil)), nil
		default:
			return nil, errors.Errorf("unsupported operator: %s", v.Operator)
		}
		//
		//
		//
	case *sqlparser.AndExpr:
		left, err := p.where(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := p.where(v.Right)
		if err != nil {
			return nil, err
		}
		return q.And(left, right), nil
		//
		//
		//
	case *sqlparser.OrExpr:
		left, err := p.where(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := p.where(v.Right)
		if err != nil {
			return nil, err
		}
		return q.Or(left, right), nil
		//
		//
		//
	case *sqlparser.NotExpr:
		m, err := p.where(v.Expr)
		if err != nil {
			return nil, err
		}
		return q.Not(m), nil
		//
		//
		//
	case *sqlparser.ParenExpr:
		return p.where(v.Expr)
	default:
		return nil, errors.Errorf("unsupported expression: %s", sqlparser.String(expr))
	}
}

func (p *parser) comparison(v *sqlparser.ComparisonExpr) (q.Matcher, error) {
	col, ok := v.Left.(*sqlparser.ColName)
	if !ok {
		return nil, errors.Errorf("left operand must be an attribute: %s", sqlparser.String(v))
	}
	field, err := p.mapper(col.Name.String())
	if err != nil {
		return nil, err
	}

	// Parse value
	var value any
	switch sqlvalue := v.Right.(type) {
	case sqlparser.BoolVal:
		value = bool(sqlvalue)
	case sqlparser.ValTuple:
		var tuple []any
		for _, t := range sqlvalue {
			sv, ok := t.(*sqlparser.SQLVal)
			if !ok {
				return nil, errors.New("unsupported tuple value")
			}
			tv, err := parseSQLVal(sv, p.dates)
			if err != nil {
				return nil, err
			}
			tuple = append(tuple, tv)
		}
		value = tuple
	case *sqlparser.SQLVal:
		if value, err = parseSQLVal(sqlvalue, p.dates); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unsupported value: %s", sqlparser.String(v.Right))
	}

	// Parse operator
	switch v.Operator {
	case sqlparser.EqualStr:
		return p.eq(field, value), nil
	case sqlparser.NotEqualStr:
		return q.Not(p.eq(field, value)), nil
	case sqlparser.GreaterThanStr:
		return q.Gt(field, value), nil
	case sqlparser.GreaterEqualStr:
		return q.Gte(field, value), nil
	case sqlparser.LessThanStr:
		return q.Lt(field, value), nil
	case sqlparser.LessEqualStr:
		return q.Lte(field, value), nil
	case sqlparser.InStr:
		return p.in(field, value)
	case sqlparser.NotInStr:
		m, err := p.in(field, value)
		if err != nil {
			return nil, err
		}
		return q.Not(m), nil
	case sqlparser.LikeStr:
		return q.Re(field, fmt.Sprintf("%v", value)), nil
	default:
		return nil, errors.Errorf("unsupported operator: %s", v.Operator)
	}
}

// in matches when any value of the tuple is equal to (or contained in) the field.
func (p *parser) in(field string, value any) (q.Matcher, error) {
	tuple, ok := value.([]any)
	if !ok {
		return nil, errors.New("IN operator expects a tuple")
	}

	matchers := make([]q.Matcher, 0, len(tuple))
	for _, v := range tuple {
		matchers = append(matchers, p.eq(field, v))
	}
	return q.Or(matchers...), nil
}

// contains returns a matcher that checks the equality of scalar fields
// or the membership of the value in slice fields.
func contains(field string, value any) q.Matcher {
	return q.NewFieldMatcher(field, &containsMatcher{value: fmt.Sprint(value)})
}

type containsMatcher struct {
	value string
}

func (m *containsMatcher) MatchField(v any) (bool, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		for i := 0; i < rv.Len(); i++ {
			if fmt.Sprint(rv.Index(i).Interface()) == m.value {
				return true, nil
			}
		}
		return false, nil
	}

	return fmt.Sprint(v) == m.value, nil
}
