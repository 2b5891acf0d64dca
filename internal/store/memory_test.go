package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/amishk599/jobscrapper/internal/model"
)

func TestMemoryCache_MissThenHit(t *testing.T) {
	c := NewMemoryCache()

	if _, ok := c.Get("python"); ok {
		t.Fatal("expected miss on empty cache")
	}

	jobs := []model.Job{{Position: "Dev", Company: "Acme"}}
	c.Put("python", jobs)

	got, ok := c.Get("python")
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if len(got) != 1 || got[0] != jobs[0] {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestMemoryCache_KeywordsAreExact(t *testing.T) {
	c := NewMemoryCache()
	c.Put("Python", []model.Job{{Position: "Dev"}})

	if _, ok := c.Get("python"); ok {
		t.Error("keywords must be matched case-sensitively")
	}
}

func TestMemoryCache_EmptyResultIsCached(t *testing.T) {
	c := NewMemoryCache()
	c.Put("cobol", nil)

	if _, ok := c.Get("cobol"); !ok {
		t.Error("an empty result must still count as cached")
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kw := fmt.Sprintf("kw%d", i%5)
			c.Put(kw, []model.Job{{Position: kw}})
			c.Get(kw)
		}(i)
	}
	wg.Wait()

	if c.Len() != 5 {
		t.Errorf("Len = %d, want 5", c.Len())
	}
}

func TestNopCache_NeverHits(t *testing.T) {
	c := NewNopCache()
	c.Put("python", []model.Job{{Position: "Dev"}})
	if _, ok := c.Get("python"); ok {
		t.Error("NopCache must never hit")
	}
}
