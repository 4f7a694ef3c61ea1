package oxyplot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	ErrNoSuchColumn = errors.New("no such column")
	ErrEmptyFrame   = errors.New("empty data frame")
)

// DataFrame is a column oriented table. All columns have length N.
// String values are interned in Pool and stored as their pool index.
type DataFrame struct {
	Name    string
	N       int
	Columns map[string]Field
	Pool    *StringPool
}

func NewDataFrame(name string, pool *StringPool) *DataFrame {
	if pool == nil {
		pool = NewStringPool()
	}
	return &DataFrame{
		Name:    name,
		Columns: make(map[string]Field),
		Pool:    pool,
	}
}

// FieldType represents the basic type of a field.
type FieldType uint

const (
	Int FieldType = iota
	Float
	String
	Vector
)

func (t FieldType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Vector:
		return "vector"
	}
	return "?"
}

// Field is one column of a data frame.
type Field struct {
	Type FieldType
	Data []float64
	Vec  [][]float64 // only for Vector fields, e.g. the outliers of a boxplot
	Pool *StringPool
}

func NewField(n int, t FieldType, pool *StringPool) Field {
	f := Field{
		Type: t,
		Data: make([]float64, n),
		Pool: pool,
	}
	if t == Vector {
		f.Vec = make([][]float64, n)
	}
	return f
}

func (f Field) Discrete() bool {
	return f.Type == Int || f.Type == String
}

// String formats the value x of this field.
func (f Field) String(x float64) string {
	if math.IsNaN(x) {
		return "NaN"
	}
	switch f.Type {
	case String:
		return f.Pool.Get(int(x))
	case Int:
		return strconv.FormatInt(int64(x), 10)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// GetVec returns the i'th vector of a Vector field.
func (f Field) GetVec(i int) []float64 {
	if f.Type != Vector || i >= len(f.Vec) {
		return nil
	}
	return f.Vec[i]
}

// MinMax returns the minimum and maximum of the non-NaN values in f and
// their indices. The indices are -1 if f holds no such value.
func (f Field) MinMax() (min, max float64, mini, maxi int) {
	min, max = math.Inf(+1), math.Inf(-1)
	mini, maxi = -1, -1
	for i, x := range f.Data {
		if math.IsNaN(x) {
			continue
		}
		if x < min {
			min, mini = x, i
		}
		if x > max {
			max, maxi = x, i
		}
	}
	return min, max, mini, maxi
}

// Levels returns the distinct non-NaN values of f.
func (f Field) Levels() FloatSet {
	levels := NewFloatSet()
	for _, x := range f.Data {
		if math.IsNaN(x) {
			continue
		}
		levels.Add(x)
	}
	return levels
}

func (f Field) Copy() Field {
	c := Field{
		Type: f.Type,
		Data: make([]float64, len(f.Data)),
		Pool: f.Pool,
	}
	copy(c.Data, f.Data)
	if f.Vec != nil {
		c.Vec = make([][]float64, len(f.Vec))
		copy(c.Vec, f.Vec)
	}
	return c
}

func (f Field) rows(idx []int) Field {
	r := NewField(len(idx), f.Type, f.Pool)
	for j, i := range idx {
		r.Data[j] = f.Data[i]
		if f.Type == Vector {
			r.Vec[j] = f.Vec[i]
		}
	}
	return r
}

// matcher returns a predicate reporting whether the i'th value of f
// equals the textual value.
func (f Field) matcher(value string) func(i int) bool {
	if f.Type == String {
		idx := f.Pool.Find(value)
		return func(i int) bool { return idx != -1 && !math.IsNaN(f.Data[i]) && int(f.Data[i]) == idx }
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return func(int) bool { return false }
	}
	return func(i int) bool { return f.Data[i] == v }
}

// -------------------------------------------------------------------------
// Data Frame

func (df *DataFrame) Has(field string) bool {
	_, ok := df.Columns[field]
	return ok
}

// FieldNames returns the column names of df in lexical order.
func (df *DataFrame) FieldNames() []string {
	names := make([]string, 0, len(df.Columns))
	for name := range df.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Copy returns a deep copy of df sharing the string pool.
func (df *DataFrame) Copy() *DataFrame {
	c := NewDataFrame(df.Name, df.Pool)
	c.N = df.N
	for name, f := range df.Columns {
		c.Columns[name] = f.Copy()
	}
	return c
}

// Rename renames the column old to new, overwriting a column named new.
func (df *DataFrame) Rename(old, new string) {
	if old == new {
		return
	}
	f, ok := df.Columns[old]
	if !ok {
		return
	}
	df.Columns[new] = f
	delete(df.Columns, old)
}

func (df *DataFrame) field(name string) (Field, error) {
	f, ok := df.Columns[name]
	if !ok {
		return Field{}, fmt.Errorf("%s: %q: %w", df.Name, name, ErrNoSuchColumn)
	}
	return f, nil
}

// AddIndex adds the Int column name holding the row numbers 0..N-1.
func (df *DataFrame) AddIndex(name string) {
	f := NewField(df.N, Int, df.Pool)
	for i := range f.Data {
		f.Data[i] = float64(i)
	}
	df.Columns[name] = f
}

// AddFloats adds (or replaces) the Float column name. The first column
// added to an empty frame fixes N.
func (df *DataFrame) AddFloats(name string, xs []float64) error {
	if err := df.checkLen(name, len(xs)); err != nil {
		return err
	}
	f := NewField(len(xs), Float, df.Pool)
	copy(f.Data, xs)
	df.Columns[name] = f
	return nil
}

// AddStrings adds (or replaces) the String column name.
func (df *DataFrame) AddStrings(name string, ss []string) error {
	if err := df.checkLen(name, len(ss)); err != nil {
		return err
	}
	f := NewField(len(ss), String, df.Pool)
	for i, s := range ss {
		f.Data[i] = float64(df.Pool.Add(s))
	}
	df.Columns[name] = f
	return nil
}

func (df *DataFrame) checkLen(name string, n int) error {
	if len(df.Columns) == 0 {
		df.N = n
		return nil
	}
	if n != df.N {
		return fmt.Errorf("%s: column %q has %d rows, frame has %d", df.Name, name, n, df.N)
	}
	return nil
}

// Floats returns a copy of the numeric column name.
func (df *DataFrame) Floats(name string) ([]float64, error) {
	f, err := df.field(name)
	if err != nil {
		return nil, err
	}
	if f.Type == String || f.Type == Vector {
		return nil, fmt.Errorf("%s: column %q is of type %s, not numeric", df.Name, name, f.Type)
	}
	xs := make([]float64, len(f.Data))
	copy(xs, f.Data)
	return xs, nil
}

// Strings returns the formatted values of column name.
func (df *DataFrame) Strings(name string) ([]string, error) {
	f, err := df.field(name)
	if err != nil {
		return nil, err
	}
	ss := make([]string, len(f.Data))
	for i, x := range f.Data {
		ss[i] = f.String(x)
	}
	return ss, nil
}

func (df *DataFrame) rows(name string, idx []int) *DataFrame {
	r := NewDataFrame(name, df.Pool)
	r.N = len(idx)
	for fn, f := range df.Columns {
		r.Columns[fn] = f.rows(idx)
	}
	return r
}

func (df *DataFrame) selectRows(name string, keep func(i int) bool) *DataFrame {
	idx := make([]int, 0, df.N)
	for i := 0; i < df.N; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	return df.rows(name, idx)
}

// Filter extracts all rows from df where field == value.
func (df *DataFrame) Filter(field string, value string) (*DataFrame, error) {
	f, err := df.field(field)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s|%s=%s", df.Name, field, value)
	return df.selectRows(name, f.matcher(value)), nil
}

// Exclude drops all rows from df where field equals one of values. Values
// are compared in their formatted form, see Field.String.
func (df *DataFrame) Exclude(field string, values ...string) (*DataFrame, error) {
	f, err := df.field(field)
	if err != nil {
		return nil, err
	}
	drop := NewStringSet(values...)
	name := fmt.Sprintf("%s|%s!=%s", df.Name, field, strings.Join(drop.Elements(), ","))
	return df.selectRows(name, func(i int) bool {
		return !drop.Contains(f.String(f.Data[i]))
	}), nil
}

// Levels returns the distinct values of field in df.
func Levels(df *DataFrame, field string) FloatSet {
	f, ok := df.Columns[field]
	if !ok {
		return NewFloatSet()
	}
	return f.Levels()
}

// LevelNames returns the distinct values of field in order of their first
// appearance in df.
func (df *DataFrame) LevelNames(field string) ([]string, error) {
	f, err := df.field(field)
	if err != nil {
		return nil, err
	}
	seen := NewFloatSet()
	var names []string
	for _, x := range f.Data {
		if seen.Contains(x) || math.IsNaN(x) {
			continue
		}
		seen.Add(x)
		names = append(names, f.String(x))
	}
	return names, nil
}

// Group is one partition of a data frame.
type Group struct {
	Keys  []string
	Frame *DataFrame
}

// Label joins the keys of g.
func (g Group) Label() string {
	return strings.Join(g.Keys, "/")
}

// Partition splits df by the distinct value combinations of the given
// fields. Groups are sorted by key, numeric fields compare numerically.
func (df *DataFrame) Partition(fields ...string) ([]Group, error) {
	if len(fields) == 0 {
		return []Group{{Frame: df}}, nil
	}
	fs := make([]Field, len(fields))
	for j, name := range fields {
		f, err := df.field(name)
		if err != nil {
			return nil, err
		}
		fs[j] = f
	}

	type part struct {
		vals []float64
		idx  []int
	}
	var parts []*part
	index := make(map[string]*part)
	for i := 0; i < df.N; i++ {
		vals := make([]float64, len(fs))
		skip := false
		for j, f := range fs {
			vals[j] = f.Data[i]
			skip = skip || math.IsNaN(vals[j])
		}
		if skip {
			continue
		}
		key := fmt.Sprint(vals)
		p, ok := index[key]
		if !ok {
			p = &part{vals: vals}
			index[key] = p
			parts = append(parts, p)
		}
		p.idx = append(p.idx, i)
	}

	sort.SliceStable(parts, func(a, b int) bool {
		for j, f := range fs {
			va, vb := parts[a].vals[j], parts[b].vals[j]
			if va == vb {
				continue
			}
			if f.Type == String {
				return f.String(va) < f.String(vb)
			}
			return va < vb
		}
		return false
	})

	groups := make([]Group, len(parts))
	for g, p := range parts {
		keys := make([]string, len(fs))
		for j, f := range fs {
			keys[j] = f.String(p.vals[j])
		}
		groups[g] = Group{
			Keys:  keys,
			Frame: df.rows(df.Name+"|"+strings.Join(keys, "/"), p.idx),
		}
	}
	return groups, nil
}

// Print renders df as a table to w.
func (df *DataFrame) Print(w io.Writer) error {
	names := df.FieldNames()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(names...)
	for i := 0; i < df.N; i++ {
		row := make([]string, len(names))
		for j, name := range names {
			f := df.Columns[name]
			if f.Type == Vector {
				row[j] = fmt.Sprint(f.Vec[i])
			} else {
				row[j] = f.String(f.Data[i])
			}
		}
		t.Row(row...)
	}
	_, err := fmt.Fprintf(w, "%s (%d rows)\n%s\n", df.Name, df.N, t.Render())
	return err
}

// -------------------------------------------------------------------------
// CSV

func isNA(s string) bool {
	switch s {
	case "", "NA", "NaN", "nan", "N/A", "null":
		return true
	}
	return false
}

// ReadCSV reads a comma separated table with a header line. A column whose
// non-missing cells all parse as integers becomes an Int field, one whose
// cells all parse as numbers becomes a Float field, anything else a String
// field. Missing numeric cells are NaN.
func ReadCSV(r io.Reader, name string) (*DataFrame, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: %w", name, ErrEmptyFrame)
	}

	header, rows := records[0], records[1:]
	df := NewDataFrame(name, NewStringPool())
	df.N = len(rows)
	for j, col := range header {
		if j == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		if col == "" {
			col = fmt.Sprintf("Unnamed: %d", j)
		}
		if df.Has(col) {
			return nil, fmt.Errorf("read %s: duplicate column %q", name, col)
		}
		df.Columns[col] = parseColumn(rows, j, df.Pool)
	}
	return df, nil
}

func parseColumn(rows [][]string, j int, pool *StringPool) Field {
	typ := Int
	for _, rec := range rows {
		s := strings.TrimSpace(rec[j])
		if isNA(s) {
			continue
		}
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			typ = Float
			continue
		}
		typ = String
		break
	}

	f := NewField(len(rows), typ, pool)
	for i, rec := range rows {
		s := strings.TrimSpace(rec[j])
		if isNA(s) {
			f.Data[i] = math.NaN()
			continue
		}
		if typ == String {
			f.Data[i] = float64(pool.Add(rec[j]))
			continue
		}
		f.Data[i], _ = strconv.ParseFloat(s, 64)
	}
	return f
}
