// FILE: lixenwraith/conftree/ingest_test.go
package conftree

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ev(t EventType) Event { return Event{Type: t} }

func sc(v string) Event { return scalarEvent(v, false, 0) }

func quoted(v string) Event { return scalarEvent(v, true, 0) }

// stream wraps each body in document start/end and the whole in a stream.
func stream(docs ...[]Event) *SliceSource {
	events := []Event{ev(EventStreamStart)}
	for _, body := range docs {
		events = append(events, ev(EventDocumentStart))
		events = append(events, body...)
		events = append(events, ev(EventDocumentEnd))
	}
	events = append(events, ev(EventStreamEnd))
	return NewSliceSource(events...)
}

// mapping wraps body in mapping start/end.
func mapping(body ...Event) []Event {
	out := append([]Event{ev(EventMappingStart)}, body...)
	return append(out, ev(EventMappingEnd))
}

func sequence(body ...Event) []Event {
	out := append([]Event{ev(EventSequenceStart)}, body...)
	return append(out, ev(EventSequenceEnd))
}

func join(parts ...[]Event) []Event {
	var out []Event
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestIngestMapping(t *testing.T) {
	root := NewRoot()
	defer root.Destroy()

	body := mapping(join(
		[]Event{sc("name"), sc("demo")},
		[]Event{sc("port"), sc("8080")},
		[]Event{sc("ratio"), sc("0.5")},
		[]Event{sc("debug"), sc("yes")},
		[]Event{sc("zip"), quoted("000000000")},
		[]Event{sc("tags")}, sequence(sc("a"), sc("b")),
		[]Event{sc("server")}, mapping(sc("host"), sc("localhost")),
	)...)

	require.NoError(t, Ingest(root, stream(body)))

	s, ok, err := root.GetString("name")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "demo", s)

	i, _, err := root.GetInt("port")
	require.NoError(t, err)
	assert.Equal(t, int64(8080), i)

	f, _, err := root.GetFloat("ratio")
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)

	b, _, err := root.GetBool("debug")
	require.NoError(t, err)
	assert.True(t, b)

	s, _, err = root.GetString("zip")
	require.NoError(t, err)
	assert.Equal(t, "000000000", s)

	s, _, err = root.GetString("tags.[1]")
	require.NoError(t, err)
	assert.Equal(t, "b", s)

	s, _, err = root.GetString("server.host")
	require.NoError(t, err)
	assert.Equal(t, "localhost", s)
}

func TestIngestNestedContainers(t *testing.T) {
	t.Run("Dictionaries In Array", func(t *testing.T) {
		root := NewRoot()
		defer root.Destroy()

		body := mapping(join(
			[]Event{sc("a")},
			sequence(join(mapping(sc("b"), sc("1")), mapping(sc("c"), sc("2")))...),
			[]Event{sc("after"), sc("x")},
		)...)
		require.NoError(t, Ingest(root, stream(body)))

		v, _, err := root.GetInt("a.[0].b")
		require.NoError(t, err)
		assert.Equal(t, int64(1), v)

		v, _, err = root.GetInt("a.[1].c")
		require.NoError(t, err)
		assert.Equal(t, int64(2), v)

		assert.True(t, root.Has("after"))
	})

	t.Run("Array In Array", func(t *testing.T) {
		root := NewRoot()
		defer root.Destroy()

		body := mapping(join(
			[]Event{sc("m")},
			sequence(join(sequence(sc("1"), sc("2")), []Event{sc("3")})...),
		)...)
		require.NoError(t, Ingest(root, stream(body)))

		v, _, err := root.GetInt("m.[0].[1]")
		require.NoError(t, err)
		assert.Equal(t, int64(2), v)

		v, _, err = root.GetInt("m.[1]")
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)
	})

	t.Run("Empty Document", func(t *testing.T) {
		root := NewRoot()
		defer root.Destroy()
		require.NoError(t, Ingest(root, stream(nil)))
		assert.Equal(t, 0, root.Dict().Len())
	})
}

func TestIngestMultipleDocuments(t *testing.T) {
	root := NewRoot()
	defer root.Destroy()

	first := mapping(sc("a"), sc("1"), sc("b"), sc("x"))
	second := mapping(sc("a"), sc("2"))
	require.NoError(t, Ingest(root, stream(first, second)))

	a, _, _ := root.GetInt("a")
	assert.Equal(t, int64(2), a)
	b, _, _ := root.GetString("b")
	assert.Equal(t, "x", b)

	t.Run("Type Conflict Across Documents", func(t *testing.T) {
		err := Ingest(root, stream(mapping(sc("a"), quoted("two"))))
		assert.ErrorIs(t, err, ErrTypeMismatch)
		a, _, _ := root.GetInt("a")
		assert.Equal(t, int64(2), a)
	})
}

func TestIngestInvalidSequences(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		kind   Kind
		msg    string
	}{
		{
			name:   "Missing Stream Start",
			events: []Event{ev(EventDocumentStart)},
			kind:   KindParse,
			msg:    "unexpected document_start event in start state",
		},
		{
			name:   "Truncated Stream",
			events: []Event{ev(EventStreamStart), ev(EventDocumentStart)},
			kind:   KindParse,
			msg:    "unexpected end of events in document state",
		},
		{
			name:   "Scalar Document",
			events: []Event{ev(EventStreamStart), ev(EventDocumentStart), sc("x")},
			kind:   KindParse,
			msg:    "unexpected scalar event in document state",
		},
		{
			name:   "Sequence Document",
			events: []Event{ev(EventStreamStart), ev(EventDocumentStart), ev(EventSequenceStart)},
			kind:   KindParse,
			msg:    "unexpected sequence_start event in document state",
		},
		{
			name: "Mapping As Key",
			events: []Event{
				ev(EventStreamStart), ev(EventDocumentStart), ev(EventMappingStart),
				ev(EventMappingStart),
			},
			kind: KindParse,
			msg:  "parent is dictionary, but key is not set",
		},
		{
			name: "Key Without Value",
			events: []Event{
				ev(EventStreamStart), ev(EventDocumentStart), ev(EventMappingStart),
				sc("k"), ev(EventMappingEnd),
			},
			kind: KindParse,
			msg:  "unexpected mapping_end event in block_content state",
		},
		{
			name: "Numeric Overflow",
			events: []Event{
				ev(EventStreamStart), ev(EventDocumentStart), ev(EventMappingStart),
				sc("big"), sc("99999999999999999999"),
			},
			kind: KindNumeric,
		},
		{
			name: "Line Prefix",
			events: []Event{
				ev(EventStreamStart), ev(EventDocumentStart),
				scalarEvent("oops", false, 3),
			},
			kind: KindParse,
			msg:  "line 3: unexpected scalar event in document state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewRoot()
			defer root.Destroy()

			err := Ingest(root, NewSliceSource(tt.events...))
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestIngestDepthLimit(t *testing.T) {
	nested := func(levels int) []Event {
		events := []Event{ev(EventMappingStart)}
		for i := 0; i < levels; i++ {
			events = append(events, sc("k"), ev(EventMappingStart))
		}
		events = append(events, sc("leaf"), sc("1"))
		for i := 0; i <= levels; i++ {
			events = append(events, ev(EventMappingEnd))
		}
		return events
	}

	t.Run("At Limit", func(t *testing.T) {
		root := NewRoot()
		defer root.Destroy()

		levels := MaxDepth - 2
		require.NoError(t, Ingest(root, stream(nested(levels))))

		path := strings.Repeat("k.", levels) + "leaf"
		v, ok, err := root.GetInt(path)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(1), v)
	})

	t.Run("Beyond Limit", func(t *testing.T) {
		root := NewRoot()
		defer root.Destroy()

		err := Ingest(root, stream(nested(MaxDepth+5)))
		assert.ErrorIs(t, err, ErrCapacity)
		assert.Contains(t, err.Error(), "maximum depth reached when reading document")
	})
}

type failingSource struct{ err error }

func (s failingSource) Next() (Event, error) { return Event{}, s.err }

func TestIngestArguments(t *testing.T) {
	assert.ErrorIs(t, Ingest(nil, stream()), ErrStructural)
	assert.ErrorIs(t, Ingest(NewRoot(), nil), ErrStructural)
	assert.ErrorIs(t, Ingest(NewString("x"), stream()), ErrTypeMismatch)

	cause := errors.New("broken reader")
	err := Ingest(NewRoot(), failingSource{err: cause})
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, cause)
}
