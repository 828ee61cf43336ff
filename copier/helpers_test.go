package copier_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"record-copier/copier"
	"record-copier/record"
	"record-copier/store/memory"
	"record-copier/transform"
)

const blogFixture = `
models:
  Post:
    attributes:
      - {name: title, type: string}
      - {name: meta, type: object}
      - {name: publishedAt, type: date}
    relationships:
      - {name: author, kind: belongsTo, type: User}
      - {name: comments, kind: hasMany, type: Comment}
  Comment:
    attributes:
      - {name: body, type: string}
    relationships:
      - {name: post, kind: belongsTo, type: Post}
      - {name: author, kind: belongsTo, type: User}
  User:
    attributes:
      - {name: name, type: string}
records:
  - key: a
    model: Post
    attributes:
      title: x
      publishedAt: "2024-03-01T12:00:00Z"
      meta: {tags: [go], stats: {views: 1}}
    relationships: {author: u, comments: [c1, c2]}
  - key: c1
    model: Comment
    attributes: {body: one}
    relationships: {post: a, author: u}
  - key: c2
    model: Comment
    attributes: {body: two}
    relationships: {post: a, author: u}
  - key: u
    model: User
    attributes: {name: ann}
`

type blog struct {
	store *memory.Store
	a     *memory.Record
	c1    *memory.Record
	c2    *memory.Record
	u     *memory.Record
}

func newBlog(t *testing.T) blog {
	t.Helper()

	store, byKey, err := memory.ParseFixture([]byte(blogFixture))
	require.NoError(t, err)

	return blog{store: store, a: byKey["a"], c1: byKey["c1"], c2: byKey["c2"], u: byKey["u"]}
}

func (b blog) copier(opts ...copier.Option) *copier.Copier {
	return copier.New(b.store, b.store.Schema(), nil, opts...)
}

// asRecord asserts that a clone is a memory record.
func asRecord(t *testing.T, v any) *memory.Record {
	t.Helper()

	rec, ok := v.(*memory.Record)
	require.Truef(t, ok, "expected *memory.Record, got %T", v)

	return rec
}

// members returns the memory records of a to-many value.
func members(t *testing.T, v any) []*memory.Record {
	t.Helper()

	list, ok := v.([]record.Record)
	require.Truef(t, ok, "expected []record.Record, got %T", v)

	out := make([]*memory.Record, 0, len(list))
	for _, item := range list {
		out = append(out, asRecord(t, item))
	}

	return out
}

var errBoom = errors.New("boom")

// fragment is an attribute value which copies itself.
type fragment struct {
	Items []string

	mu       sync.Mutex
	deepSeen []bool
	fail     bool
	started  chan struct{}
	release  chan struct{}
}

func (f *fragment) Copy(ctx context.Context, deep bool) (any, error) {
	f.mu.Lock()
	f.deepSeen = append(f.deepSeen, deep)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.fail {
		return nil, errBoom
	}

	return &fragment{Items: slices.Clone(f.Items)}, nil
}

func (f *fragment) seen() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.deepSeen)
}

// docSchema is a schema whose records carry fragment attributes.
func docSchema() *memory.Schema {
	return &memory.Schema{Models: map[string]memory.Model{
		"Doc": {
			Attributes: []memory.AttributeDef{
				{Name: "title", Type: "string"},
				{Name: "body", Type: "fragment"},
			},
			Relationships: []memory.RelationshipDef{
				{Name: "sections", Kind: record.KindToMany, Type: "Doc"},
			},
		},
	}}
}

// flakyStore fails the first unload.
type flakyStore struct {
	*memory.Store

	mu     sync.Mutex
	failed bool
}

func (s *flakyStore) UnloadRecord(ctx context.Context, rec record.Record) error {
	s.mu.Lock()
	first := !s.failed
	s.failed = true
	s.mu.Unlock()

	if first {
		return errors.New("unload refused")
	}

	return s.Store.UnloadRecord(ctx, rec)
}

// countingStore counts the records it creates and unloads.
type countingStore struct {
	*memory.Store

	mu       sync.Mutex
	created  int
	unloaded int
}

func (s *countingStore) CreateRecord(ctx context.Context, modelName string) (record.Record, error) {
	rec, err := s.Store.CreateRecord(ctx, modelName)
	if err == nil {
		s.mu.Lock()
		s.created++
		s.mu.Unlock()
	}

	return rec, err
}

func (s *countingStore) UnloadRecord(ctx context.Context, rec record.Record) error {
	err := s.Store.UnloadRecord(ctx, rec)
	if err == nil {
		s.mu.Lock()
		s.unloaded++
		s.mu.Unlock()
	}

	return err
}

func (s *countingStore) counts() (created, unloaded int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.created, s.unloaded
}

// failingProvider cannot resolve any transform.
type failingProvider struct{}

func (failingProvider) Transform(record.Record, string) (transform.Transform, error) {
	return nil, errBoom
}
