package keel

import (
	"iter"
	"reflect"
)

// componentAs fetches the typed component pointer for id, reporting whether
// the entity still holds one. Used by the typed queries to re-verify each
// entity at yield time, so rows mutated out of the match mid-iteration are
// skipped instead of yielding stale pointers.
func componentAs[T any](s *componentStore, id EntityID) (*T, bool) {
	cid, ok := s.schema.lookup(reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}
	c, ok := s.byEntity[id][cid]
	if !ok {
		return nil, false
	}
	p, ok := any(c).(*T)
	return p, ok
}

// Query1 iterates every entity holding A, ascending by id.
func Query1[A any](w *World) iter.Seq2[EntityID, *A] {
	types := []reflect.Type{reflect.TypeFor[A]()}
	return func(yield func(EntityID, *A) bool) {
		for _, id := range matchAll(w.store, types) {
			a, ok := componentAs[A](w.store, id)
			if !ok {
				continue
			}
			if !yield(id, a) {
				return
			}
		}
	}
}

// Row2 carries the component pointers yielded by Query2.
type Row2[A, B any] struct {
	A *A
	B *B
}

// Query2 iterates every entity holding A and B, ascending by id.
func Query2[A, B any](w *World) iter.Seq2[EntityID, Row2[A, B]] {
	types := []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
	return func(yield func(EntityID, Row2[A, B]) bool) {
		for _, id := range matchAll(w.store, types) {
			a, okA := componentAs[A](w.store, id)
			b, okB := componentAs[B](w.store, id)
			if !okA || !okB {
				continue
			}
			if !yield(id, Row2[A, B]{a, b}) {
				return
			}
		}
	}
}

// Row3 carries the component pointers yielded by Query3.
type Row3[A, B, C any] struct {
	A *A
	B *B
	C *C
}

// Query3 iterates every entity holding A, B and C, ascending by id.
func Query3[A, B, C any](w *World) iter.Seq2[EntityID, Row3[A, B, C]] {
	types := []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
	return func(yield func(EntityID, Row3[A, B, C]) bool) {
		for _, id := range matchAll(w.store, types) {
			a, okA := componentAs[A](w.store, id)
			b, okB := componentAs[B](w.store, id)
			c, okC := componentAs[C](w.store, id)
			if !okA || !okB || !okC {
				continue
			}
			if !yield(id, Row3[A, B, C]{a, b, c}) {
				return
			}
		}
	}
}

// Row4 carries the component pointers yielded by Query4.
type Row4[A, B, C, D any] struct {
	A *A
	B *B
	C *C
	D *D
}

// Query4 iterates every entity holding A, B, C and D, ascending by id.
func Query4[A, B, C, D any](w *World) iter.Seq2[EntityID, Row4[A, B, C, D]] {
	types := []reflect.Type{
		reflect.TypeFor[A](), reflect.TypeFor[B](),
		reflect.TypeFor[C](), reflect.TypeFor[D](),
	}
	return func(yield func(EntityID, Row4[A, B, C, D]) bool) {
		for _, id := range matchAll(w.store, types) {
			a, okA := componentAs[A](w.store, id)
			b, okB := componentAs[B](w.store, id)
			c, okC := componentAs[C](w.store, id)
			d, okD := componentAs[D](w.store, id)
			if !okA || !okB || !okC || !okD {
				continue
			}
			if !yield(id, Row4[A, B, C, D]{a, b, c, d}) {
				return
			}
		}
	}
}

// Row5 carries the component pointers yielded by Query5.
type Row5[A, B, C, D, E any] struct {
	A *A
	B *B
	C *C
	D *D
	E *E
}

// Query5 iterates every entity holding all five components, ascending by id.
func Query5[A, B, C, D, E any](w *World) iter.Seq2[EntityID, Row5[A, B, C, D, E]] {
	types := []reflect.Type{
		reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](),
		reflect.TypeFor[D](), reflect.TypeFor[E](),
	}
	return func(yield func(EntityID, Row5[A, B, C, D, E]) bool) {
		for _, id := range matchAll(w.store, types) {
			a, okA := componentAs[A](w.store, id)
			b, okB := componentAs[B](w.store, id)
			c, okC := componentAs[C](w.store, id)
			d, okD := componentAs[D](w.store, id)
			e, okE := componentAs[E](w.store, id)
			if !okA || !okB || !okC || !okD || !okE {
				continue
			}
			if !yield(id, Row5[A, B, C, D, E]{a, b, c, d, e}) {
				return
			}
		}
	}
}

// Row6 carries the component pointers yielded by Query6.
type Row6[A, B, C, D, E, F any] struct {
	A *A
	B *B
	C *C
	D *D
	E *E
	F *F
}

// Query6 iterates every entity holding all six components, ascending by id.
func Query6[A, B, C, D, E, F any](w *World) iter.Seq2[EntityID, Row6[A, B, C, D, E, F]] {
	types := []reflect.Type{
		reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](),
		reflect.TypeFor[D](), reflect.TypeFor[E](), reflect.TypeFor[F](),
	}
	return func(yield func(EntityID, Row6[A, B, C, D, E, F]) bool) {
		for _, id := range matchAll(w.store, types) {
			a, okA := componentAs[A](w.store, id)
			b, okB := componentAs[B](w.store, id)
			c, okC := componentAs[C](w.store, id)
			d, okD := componentAs[D](w.store, id)
			e, okE := componentAs[E](w.store, id)
			f, okF := componentAs[F](w.store, id)
			if !okA || !okB || !okC || !okD || !okE || !okF {
				continue
			}
			if !yield(id, Row6[A, B, C, D, E, F]{a, b, c, d, e, f}) {
				return
			}
		}
	}
}

// Row7 carries the component pointers yielded by Query7.
type Row7[A, B, C, D, E, F, G any] struct {
	A *A
	B *B
	C *C
	D *D
	E *E
	F *F
	G *G
}

// Query7 iterates every entity holding all seven components, ascending by id.
func Query7[A, B, C, D, E, F, G any](w *World) iter.Seq2[EntityID, Row7[A, B, C, D, E, F, G]] {
	types := []reflect.Type{
		reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](),
		reflect.TypeFor[D](), reflect.TypeFor[E](), reflect.TypeFor[F](),
		reflect.TypeFor[G](),
	}
	return func(yield func(EntityID, Row7[A, B, C, D, E, F, G]) bool) {
		for _, id := range matchAll(w.store, types) {
			a, okA := componentAs[A](w.store, id)
			b, okB := componentAs[B](w.store, id)
			c, okC := componentAs[C](w.store, id)
			d, okD := componentAs[D](w.store, id)
			e, okE := componentAs[E](w.store, id)
			f, okF := componentAs[F](w.store, id)
			g, okG := componentAs[G](w.store, id)
			if !okA || !okB || !okC || !okD || !okE || !okF || !okG {
				continue
			}
			if !yield(id, Row7[A, B, C, D, E, F, G]{a, b, c, d, e, f, g}) {
				return
			}
		}
	}
}

// Row8 carries the component pointers yielded by Query8.
type Row8[A, B, C, D, E, F, G, H any] struct {
	A *A
	B *B
	C *C
	D *D
	E *E
	F *F
	G *G
	H *H
}

// Query8 iterates every entity holding all eight components, ascending by id.
func Query8[A, B, C, D, E, F, G, H any](w *World) iter.Seq2[EntityID, Row8[A, B, C, D, E, F, G, H]] {
	types := []reflect.Type{
		reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](),
		reflect.TypeFor[D](), reflect.TypeFor[E](), reflect.TypeFor[F](),
		reflect.TypeFor[G](), reflect.TypeFor[H](),
	}
	return func(yield func(EntityID, Row8[A, B, C, D, E, F, G, H]) bool) {
		for _, id := range matchAll(w.store, types) {
			a, okA := componentAs[A](w.store, id)
			b, okB := componentAs[B](w.store, id)
			c, okC := componentAs[C](w.store, id)
			d, okD := componentAs[D](w.store, id)
			e, okE := componentAs[E](w.store, id)
			f, okF := componentAs[F](w.store, id)
			g, okG := componentAs[G](w.store, id)
			h, okH := componentAs[H](w.store, id)
			if !okA || !okB || !okC || !okD || !okE || !okF || !okG || !okH {
				continue
			}
			if !yield(id, Row8[A, B, C, D, E, F, G, H]{a, b, c, d, e, f, g, h}) {
				return
			}
		}
	}
}
