package stmt

import (
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/gertd/go-pluralize"
	"github.com/iancoleman/strcase"
	"github.com/jmoiron/sqlx/reflectx"
)

// mapper resolves struct fields the way sqlx does: embedded structs are
// flattened, `db:"name"` overrides the snake_case column name and `db:"-"`
// skips a field.
var mapper = reflectx.NewMapperFunc("db", strcase.ToSnake)

// columnFields lists the top-level bindable fields of t in declaration order.
// Fields of nested, non-embedded structs such as sql.NullString are not
// columns of their own.
func columnFields(t reflect.Type) []*reflectx.FieldInfo {
	if t == nil || reflectx.Deref(t).Kind() != reflect.Struct {
		return nil
	}
	var fields []*reflectx.FieldInfo
	for _, fi := range mapper.TypeMap(t).Index {
		if fi.Embedded || strings.Contains(fi.Path, ".") {
			continue
		}
		fields = append(fields, fi)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return lessIndex(fields[i].Index, fields[j].Index)
	})
	return fields
}

func lessIndex(a, b []int) bool {
	for k := 0; k < len(a) && k < len(b); k++ {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return len(a) < len(b)
}

// ColumnsOf returns the column names T binds to, in field order.
func ColumnsOf[T any]() []string {
	var cols []string
	for _, fi := range columnFields(reflect.TypeOf(*new(T))) {
		cols = append(cols, fi.Path)
	}
	return cols
}

// TableOf infers a table name from T: `AuthorEmail` becomes `author_emails`.
func TableOf[T any]() string {
	t := reflect.TypeOf(*new(T))
	if t == nil {
		return ""
	}
	return pluralize.NewClient().Plural(strcase.ToSnake(reflectx.Deref(t).Name()))
}

// SelectOf starts a SELECT of every column of T from T's table.
func SelectOf[T any](b *Builder) *Builder {
	return b.Select(ColumnsOf[T]()...).From(TableOf[T]())
}

// Bind maps records onto values of T, matching columns to fields by name.
// Columns without a matching field are ignored.
func Bind[T any](records []Record) ([]T, error) {
	t := reflect.TypeOf(*new(T))
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind: %v is not a struct type", t)
	}
	names := mapper.TypeMap(t).Names

	out := make([]T, 0, len(records))
	for _, r := range records {
		var obj T
		v := reflect.ValueOf(&obj).Elem()
		for i, col := range r.columns {
			fi, ok := names[col]
			if !ok {
				continue
			}
			if err := setField(reflectx.FieldByIndexes(v, fi.Index), r.values[i]); err != nil {
				return nil, fmt.Errorf("bind column %s: %w", col, err)
			}
		}
		out = append(out, obj)
	}
	return out, nil
}

func setField(dst reflect.Value, value any) error {
	if scanner, ok := dst.Addr().Interface().(sql.Scanner); ok {
		return scanner.Scan(value)
	}
	if value == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	if dst.Kind() == reflect.Ptr {
		elem := reflect.New(dst.Type().Elem())
		if err := setField(elem.Elem(), value); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	}

	src := reflect.ValueOf(value)
	switch {
	case src.Type().AssignableTo(dst.Type()):
		dst.Set(src)
	case isNumber(src.Kind()) && isNumber(dst.Kind()):
		dst.Set(src.Convert(dst.Type()))
	case src.Kind() == reflect.String && dst.Kind() == reflect.String:
		dst.SetString(src.String())
	case src.Kind() == reflect.String && isNumber(dst.Kind()):
		return setNumberFromString(dst, src.String())
	case src.Kind() == reflect.String && dst.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(src.String())
		if err != nil {
			return err
		}
		dst.SetBool(b)
	case isNumber(src.Kind()) && dst.Kind() == reflect.Bool:
		dst.SetBool(!src.IsZero())
	default:
		return fmt.Errorf("cannot assign %T to %s", value, dst.Type())
	}
	return nil
}

func setNumberFromString(dst reflect.Value, s string) error {
	switch {
	case dst.CanInt():
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		dst.SetInt(n)
	case dst.CanUint():
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		dst.SetUint(n)
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		dst.SetFloat(f)
	}
	return nil
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
