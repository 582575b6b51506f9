package ecs

// This file hand-writes a handful of typed query arities (1-4) in the style the
// teacher's code generator produces (filter_generated.go / functions_generated.go),
// instead of shipping the generator itself — the generator is explicitly out of
// scope (§1).

// Query1 iterates entities carrying component A, exposing a typed pointer.
type Query1[A any] struct {
	q   *Query
	idA EntityId
}

// NewQuery1 builds a Query1 over w, requiring A plus any extra terms.
func NewQuery1[A any](w *World, extra ...Term) *Query1[A] {
	idA := ComponentIDOf[A](w)
	terms := append([]Term{WithTerm(idA)}, extra...)
	return &Query1[A]{q: NewQuery(w, terms...), idA: idA}
}

func (q *Query1[A]) Next() bool      { return q.q.Next() }
func (q *Query1[A]) Entity() EntityId { return q.q.Entity() }
func (q *Query1[A]) Reset()          { q.q.Reset() }
func (q *Query1[A]) A() *A           { return (*A)(q.q.Raw(q.idA)) }

// Query2 iterates entities carrying components A and B.
type Query2[A, B any] struct {
	q          *Query
	idA, idB   EntityId
}

func NewQuery2[A, B any](w *World, extra ...Term) *Query2[A, B] {
	idA, idB := ComponentIDOf[A](w), ComponentIDOf[B](w)
	terms := append([]Term{WithTerm(idA), WithTerm(idB)}, extra...)
	return &Query2[A, B]{q: NewQuery(w, terms...), idA: idA, idB: idB}
}

func (q *Query2[A, B]) Next() bool      { return q.q.Next() }
func (q *Query2[A, B]) Entity() EntityId { return q.q.Entity() }
func (q *Query2[A, B]) Reset()          { q.q.Reset() }
func (q *Query2[A, B]) A() *A           { return (*A)(q.q.Raw(q.idA)) }
func (q *Query2[A, B]) B() *B           { return (*B)(q.q.Raw(q.idB)) }

// Query3 iterates entities carrying components A, B and C.
type Query3[A, B, C any] struct {
	q                 *Query
	idA, idB, idC     EntityId
}

func NewQuery3[A, B, C any](w *World, extra ...Term) *Query3[A, B, C] {
	idA, idB, idC := ComponentIDOf[A](w), ComponentIDOf[B](w), ComponentIDOf[C](w)
	terms := append([]Term{WithTerm(idA), WithTerm(idB), WithTerm(idC)}, extra...)
	return &Query3[A, B, C]{q: NewQuery(w, terms...), idA: idA, idB: idB, idC: idC}
}

func (q *Query3[A, B, C]) Next() bool      { return q.q.Next() }
func (q *Query3[A, B, C]) Entity() EntityId { return q.q.Entity() }
func (q *Query3[A, B, C]) Reset()          { q.q.Reset() }
func (q *Query3[A, B, C]) A() *A           { return (*A)(q.q.Raw(q.idA)) }
func (q *Query3[A, B, C]) B() *B           { return (*B)(q.q.Raw(q.idB)) }
func (q *Query3[A, B, C]) C() *C           { return (*C)(q.q.Raw(q.idC)) }

// Query4 iterates entities carrying components A, B, C and D.
type Query4[A, B, C, D any] struct {
	q                       *Query
	idA, idB, idC, idD      EntityId
}

func NewQuery4[A, B, C, D any](w *World, extra ...Term) *Query4[A, B, C, D] {
	idA := ComponentIDOf[A](w)
	idB := ComponentIDOf[B](w)
	idC := ComponentIDOf[C](w)
	idD := ComponentIDOf[D](w)
	terms := append([]Term{WithTerm(idA), WithTerm(idB), WithTerm(idC), WithTerm(idD)}, extra...)
	return &Query4[A, B, C, D]{q: NewQuery(w, terms...), idA: idA, idB: idB, idC: idC, idD: idD}
}

func (q *Query4[A, B, C, D]) Next() bool      { return q.q.Next() }
func (q *Query4[A, B, C, D]) Entity() EntityId { return q.q.Entity() }
func (q *Query4[A, B, C, D]) Reset()          { q.q.Reset() }
func (q *Query4[A, B, C, D]) A() *A           { return (*A)(q.q.Raw(q.idA)) }
func (q *Query4[A, B, C, D]) B() *B           { return (*B)(q.q.Raw(q.idB)) }
func (q *Query4[A, B, C, D]) C() *C           { return (*C)(q.q.Raw(q.idC)) }
func (q *Query4[A, B, C, D]) D() *D           { return (*D)(q.q.Raw(q.idD)) }
