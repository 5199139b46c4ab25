package dupes

import (
	"fmt"
	"sort"

	"github.com/corona10/goimagehash"
)

// Pair records the hash distance between two distinct pages.
type Pair struct {
	A, B     int
	Distance int
}

// Findings holds everything the duplicate report needs.
type Findings struct {
	Total       int
	ExactGroups [][]int // pages sharing an identical hash
	NearPairs   []Pair  // 0 < distance <= threshold
	Groups      [][]int // connected components over distance <= threshold
}

// Analyze compares all page hashes pairwise and unions pages whose distance
// is within threshold into groups. Grouping is symmetric by construction and
// the output ordering is deterministic.
func Analyze(hashes []PageHash, threshold int) (*Findings, error) {
	decoded := make([]*goimagehash.ImageHash, len(hashes))
	for i, h := range hashes {
		ih, err := goimagehash.ImageHashFromString(h.PHash)
		if err != nil {
			return nil, fmt.Errorf("bad hash for page %d: %w", h.Page, err)
		}
		decoded[i] = ih
	}

	uf := newUnionFind(hashes)

	byHash := make(map[string][]int)
	for _, h := range hashes {
		byHash[h.PHash] = append(byHash[h.PHash], h.Page)
	}

	f := &Findings{Total: len(hashes)}
	for _, pgs := range byHash {
		if len(pgs) < 2 {
			continue
		}
		sort.Ints(pgs)
		f.ExactGroups = append(f.ExactGroups, pgs)
		for _, p := range pgs[1:] {
			uf.union(pgs[0], p)
		}
	}
	sort.Slice(f.ExactGroups, func(i, j int) bool { return f.ExactGroups[i][0] < f.ExactGroups[j][0] })

	for i := range hashes {
		for j := i + 1; j < len(hashes); j++ {
			d, err := decoded[i].Distance(decoded[j])
			if err != nil {
				return nil, fmt.Errorf("failed to compare pages %d and %d: %w", hashes[i].Page, hashes[j].Page, err)
			}
			if d > 0 && d <= threshold {
				f.NearPairs = append(f.NearPairs, Pair{A: hashes[i].Page, B: hashes[j].Page, Distance: d})
				uf.union(hashes[i].Page, hashes[j].Page)
			}
		}
	}
	sort.Slice(f.NearPairs, func(i, j int) bool {
		if f.NearPairs[i].A != f.NearPairs[j].A {
			return f.NearPairs[i].A < f.NearPairs[j].A
		}
		return f.NearPairs[i].B < f.NearPairs[j].B
	})

	f.Groups = uf.groups()
	return f, nil
}

type unionFind struct {
	parent map[int]int
}

func newUnionFind(hashes []PageHash) *unionFind {
	uf := &unionFind{parent: make(map[int]int, len(hashes))}
	for _, h := range hashes {
		uf.parent[h.Page] = h.Page
	}
	return uf
}

func (uf *unionFind) find(p int) int {
	for uf.parent[p] != p {
		uf.parent[p] = uf.parent[uf.parent[p]]
		p = uf.parent[p]
	}
	return p
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf.parent[rb] = ra
	}
}

// groups returns the connected components with more than one member,
// each sorted, ordered by their smallest page.
func (uf *unionFind) groups() [][]int {
	members := make(map[int][]int)
	for p := range uf.parent {
		r := uf.find(p)
		members[r] = append(members[r], p)
	}

	var out [][]int
	for _, g := range members {
		if len(g) < 2 {
			continue
		}
		sort.Ints(g)
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
