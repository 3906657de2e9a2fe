package di

import (
	"sync/atomic"

	"github.com/goliatone/go-notes/internal/identity"
	"github.com/goliatone/go-notes/internal/markdown"
	"github.com/goliatone/go-notes/internal/notesindex"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// library is the reloadable distill.Library held by the container. Each
// reload swaps a complete state so readers never mix stores and indexes.
type library struct {
	state atomic.Pointer[libraryState]
}

type libraryState struct {
	source *librarySource
	index  notesindex.Index
}

// librarySource is the store as seen by search and the reloader. Its version
// covers the note contents and the recency index.
type librarySource struct {
	*markdown.Store
	version string
}

func (s *librarySource) Version() string { return s.version }

func newLibraryState(store *markdown.Store, index notesindex.Index) *libraryState {
	if store == nil {
		store = markdown.NewStore(nil)
	}
	if index == nil {
		index = notesindex.Index{}
	}
	parts := append([]string{store.Version()}, index.Fingerprint()...)
	return &libraryState{
		source: &librarySource{
			Store:   store,
			version: identity.VersionUUID("library", parts).String(),
		},
		index: index,
	}
}

func newLibrary() *library {
	l := &library{}
	l.state.Store(newLibraryState(nil, nil))
	return l
}

func (l *library) Notes() interfaces.NoteSource { return l.state.Load().source }

func (l *library) Recency() notesindex.Index { return l.state.Load().index }

func (l *library) Store() *markdown.Store { return l.state.Load().source.Store }

func (l *library) replace(store *markdown.Store, index notesindex.Index) {
	l.state.Store(newLibraryState(store, index))
}

func (l *library) setIndex(index notesindex.Index) {
	for {
		current := l.state.Load()
		next := newLibraryState(current.source.Store, index)
		if l.state.CompareAndSwap(current, next) {
			return
		}
	}
}
