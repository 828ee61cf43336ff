package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-copier/record"
)

func TestMerge_Defaults(t *testing.T) {
	opts := Merge()

	assert.Empty(t, opts.IgnoreAttributes)
	assert.NotNil(t, opts.Overwrite)
	assert.True(t, opts.AsModel())
	assert.Nil(t, opts.ObjectDefinition)
}

func TestMerge_LaterLayerWins(t *testing.T) {
	typeOpts := &CopyOptions{
		IgnoreAttributes: []string{"slug"},
		CopyByReference:  []string{"author"},
		CreateAsModel:    Bool(false),
	}
	callOpts := &CopyOptions{
		IgnoreAttributes: []string{},
		Overwrite:        map[string]any{"title": "forced"},
	}

	opts := Merge(typeOpts, nil, callOpts)

	assert.Empty(t, opts.IgnoreAttributes, "empty call-site set clears the configured one")
	assert.Equal(t, []string{"author"}, opts.CopyByReference)
	assert.False(t, opts.AsModel())

	v, ok := opts.Overwritten("title")
	assert.True(t, ok)
	assert.Equal(t, "forced", v)
}

func TestMerge_ObjectDefinitionAndTrace(t *testing.T) {
	trace := NewTrace()
	factory := func() record.Clone { return record.Object{} }

	opts := Merge(&CopyOptions{ObjectDefinition: factory}, &CopyOptions{Trace: trace})

	require.NotNil(t, opts.ObjectDefinition)
	assert.Same(t, trace, opts.Trace)
}

func TestCopyOptions_Overwritten_NilValue(t *testing.T) {
	opts := Merge(&CopyOptions{Overwrite: map[string]any{"author": nil}})

	v, ok := opts.Overwritten("author")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = opts.Overwritten("title")
	assert.False(t, ok)
}

func TestCopyOptions_Relationship(t *testing.T) {
	opts := Merge(&CopyOptions{
		Relationships: map[string]RelationshipOptions{
			"comments": {Deep: Bool(false), CopyOptions: CopyOptions{IgnoreAttributes: []string{"body"}}},
			"tags":     {CopyOptions: CopyOptions{CopyByReference: []string{"x"}}},
		},
	})

	sub, deep := opts.Relationship("comments", true)
	require.NotNil(t, sub)
	assert.False(t, deep)
	assert.Equal(t, []string{"body"}, sub.IgnoreAttributes)

	sub, deep = opts.Relationship("tags", true)
	require.NotNil(t, sub)
	assert.True(t, deep, "deep falls back to the ambient flag")

	sub, deep = opts.Relationship("author", false)
	assert.Nil(t, sub)
	assert.False(t, deep)
}

func TestCopyOptions_Sets(t *testing.T) {
	opts := Merge(&CopyOptions{
		IgnoreAttributes: []string{"a"},
		CopyByReference:  []string{"b"},
	})

	assert.True(t, opts.Ignores("a"))
	assert.False(t, opts.Ignores("b"))
	assert.True(t, opts.ByReference("b"))
	assert.False(t, opts.ByReference("a"))
}

func TestTrace(t *testing.T) {
	var trace Trace

	_, ok := trace.Lookup("1")
	assert.False(t, ok)

	trace.Record("1", Snapshot{Final: map[string]any{"title": "x"}})
	snap, ok := trace.Lookup("1")
	require.True(t, ok)
	assert.Equal(t, "x", snap.Final["title"])
	assert.Equal(t, 1, trace.Len())
}
