// Package contenttest provides an in-memory content store that evaluates
// catalog queries over fixture documents. It backs the package tests and can
// serve a local fixture file when no project is configured.
package contenttest

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/ecellfcrit/ecellweb/content"
)

// Doc is a stored document.
type Doc = map[string]any

// Store holds documents and answers content.Query values against them.
type Store struct {
	mu        sync.Mutex
	docs      []Doc
	err       error
	queryErrs map[string]error
	createErr error
	calls     []content.Query
	created   []Doc
}

var (
	_ content.Fetcher = (*Store)(nil)
	_ content.Creator = (*Store)(nil)
)

// New returns a store holding docs.
func New(docs ...Doc) *Store {
	s := &Store{queryErrs: make(map[string]error)}
	s.Add(docs...)
	return s
}

// Load reads a JSON array of documents.
func Load(r io.Reader) (*Store, error) {
	var docs []Doc
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("contenttest: decode fixtures: %w", err)
	}
	return New(docs...), nil
}

// Add stores docs. Values are normalised through JSON so that fixtures
// written as Go literals compare like fetched documents.
func (s *Store) Add(docs ...Doc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range docs {
		s.docs = append(s.docs, normalize(d).(Doc))
	}
}

// FailWith makes every query fail with err. A nil err clears the failure.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// FailQuery makes queries with the given catalog name fail with err.
func (s *Store) FailQuery(name string, err error) {
	s.mu.Lock()
	s.queryErrs[name] = err
	s.mu.Unlock()
}

// FailCreate makes Create fail with err.
func (s *Store) FailCreate(err error) {
	s.mu.Lock()
	s.createErr = err
	s.mu.Unlock()
}

// Queries returns the queries executed so far, in call order.
func (s *Store) Queries() []content.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// Created returns the documents stored through Create.
func (s *Store) Created() []Doc {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.created)
}

// FetchRaw evaluates q over the stored documents.
func (s *Store) FetchRaw(ctx context.Context, q content.Query) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, &content.NetworkError{Query: q.Name, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, q)
	if s.err != nil {
		return nil, s.err
	}
	if err := s.queryErrs[q.Name]; err != nil {
		return nil, err
	}

	params := normalize(toAny(q.Params))
	var matched []Doc
	for _, d := range s.docs {
		if d["_type"] == q.Type && s.matches(d, q.Filters, params) {
			matched = append(matched, d)
		}
	}
	if len(q.Order) > 0 {
		slices.SortStableFunc(matched, func(a, b Doc) int {
			for _, o := range q.Order {
				c := compareValues(orderValue(a, o), orderValue(b, o))
				if o.Desc {
					c = -c
				}
				if c != 0 {
					return c
				}
			}
			return 0
		})
	}

	if q.Single {
		if len(matched) == 0 {
			return json.RawMessage("null"), nil
		}
		return json.Marshal(s.project(matched[0], q.Expand))
	}
	if q.End > 0 {
		start := min(q.Start, len(matched))
		end := min(q.End, len(matched))
		matched = matched[start:end]
	}
	out := make([]any, 0, len(matched))
	for _, d := range matched {
		out = append(out, s.project(d, q.Expand))
	}
	return json.Marshal(out)
}

// Create stores doc with a generated id.
func (s *Store) Create(ctx context.Context, doc any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	var d Doc
	if err := json.Unmarshal(b, &d); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return "", s.createErr
	}
	typ, _ := d["_type"].(string)
	id := fmt.Sprintf("%s-%d", cmp.Or(typ, "doc"), len(s.created)+1)
	d["_id"] = id
	s.created = append(s.created, d)
	s.docs = append(s.docs, d)
	return id, nil
}

func (s *Store) matches(d Doc, filters []content.Filter, params any) bool {
	for _, f := range filters {
		want := normalize(f.Value)
		if f.Param != "" {
			want = nil
			if p, ok := params.(map[string]any); ok {
				want = p[f.Param]
			}
		}
		got := lookup(d, f.Field)
		eq := reflect.DeepEqual(got, want)
		if (f.Op == content.OpEq) != eq {
			return false
		}
	}
	return true
}

func (s *Store) byID(id string) Doc {
	for _, d := range s.docs {
		if d["_id"] == id {
			return d
		}
	}
	return nil
}

// project deep-copies d and dereferences the expand paths.
func (s *Store) project(d Doc, expand []string) any {
	var v any = normalize(d)
	for _, path := range expand {
		v = s.expand(v, strings.Split(path, "."))
	}
	return v
}

func (s *Store) expand(v any, segs []string) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if len(segs) == 0 {
		ref, ok := m["_ref"].(string)
		if !ok {
			return v
		}
		if target := s.byID(ref); target != nil {
			return normalize(target)
		}
		return nil
	}
	name, each := strings.CutSuffix(segs[0], "[]")
	child, ok := m[name]
	if !ok || child == nil {
		return v
	}
	if each {
		if list, ok := child.([]any); ok {
			for i := range list {
				list[i] = s.expand(list[i], segs[1:])
			}
		}
		return v
	}
	m[name] = s.expand(child, segs[1:])
	return v
}

func lookup(d Doc, path string) any {
	var cur any = d
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[seg]
	}
	return cur
}

func orderValue(d Doc, o content.Order) any {
	v := lookup(d, o.Field)
	if v == nil && o.Default != nil {
		return normalize(o.Default)
	}
	return v
}

// compareValues orders nil before numbers, numbers before strings, strings
// before booleans.
func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch x := a.(type) {
	case float64:
		return cmp.Compare(x, b.(float64))
	case string:
		return cmp.Compare(x, b.(string))
	case bool:
		y := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	}
	return 0
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case float64:
		return 1
	case string:
		return 2
	case bool:
		return 3
	}
	return 4
}

func toAny(p map[string]any) any {
	if p == nil {
		return map[string]any{}
	}
	return p
}

// normalize returns a deep copy of v with JSON value types.
func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("contenttest: fixture is not JSON: %v", err))
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		panic(fmt.Sprintf("contenttest: fixture is not JSON: %v", err))
	}
	return out
}
