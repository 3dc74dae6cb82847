package foil

import (
	"sync"
	"testing"
)

func sampleProblem() Problem {
	return Problem{
		Target: sampleTarget(),
		Background: []Clause{
			{Head: Literal{Atom: Atom{Functor: "parent", Terms: []Term{v("abe"), v("bob")}}}},
		},
		Universe: []Value{v("abe"), v("bob")},
	}
}

func TestCacheMissThenHit(t *testing.T) {
	c := NewCache()
	p := sampleProblem()
	if _, ok := c.Get(p); ok {
		t.Fatalf("expected a miss on an empty cache")
	}

	h := Hypothesis{{Head: p.Target}}
	c.Put(p, h)

	got, ok := c.Get(p)
	if !ok {
		t.Fatalf("expected a hit after Put")
	}
	if len(got) != len(h) {
		t.Errorf("got %v, want %v", got, h)
	}
}

func TestCacheDistinguishesProblems(t *testing.T) {
	c := NewCache()
	p1 := sampleProblem()
	p2 := sampleProblem()
	p2.Universe = append(p2.Universe, v("carl"))

	c.Put(p1, Hypothesis{{Head: p1.Target}})
	if _, ok := c.Get(p2); ok {
		t.Fatalf("expected p2 to miss: it differs from p1 in Universe")
	}
}

func TestCacheLen(t *testing.T) {
	c := NewCache()
	if c.Len() != 0 {
		t.Fatalf("got Len() = %d on a new cache, want 0", c.Len())
	}
	c.Put(sampleProblem(), nil)
	if c.Len() != 1 {
		t.Fatalf("got Len() = %d after one Put, want 1", c.Len())
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := sampleProblem()
			p.Universe = append(p.Universe, Value{Symbol: string(rune('a' + i))})
			c.Put(p, Hypothesis{{Head: p.Target}})
			c.Get(p)
		}(i)
	}
	wg.Wait()
}
