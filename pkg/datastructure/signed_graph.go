package datastructure

import (
	"sort"

	"github.com/lintang-b-s/frustration-ig/pkg/util"
)

type Index uint32

type Sign int8

const (
	POSITIVE Sign = 1
	NEGATIVE Sign = -1
)

func (s Sign) IsPositive() bool {
	return s == POSITIVE
}

func (s Sign) IsNegative() bool {
	return s == NEGATIVE
}

func (s Sign) Valid() bool {
	return s == POSITIVE || s == NEGATIVE
}

// SignedEdge. half of an undirected signed edge, stored in the adjacency list of its tail.
type SignedEdge struct {
	head Index
	sign Sign
}

func NewSignedEdge(head Index, sign Sign) SignedEdge {
	return SignedEdge{head: head, sign: sign}
}

func (e SignedEdge) GetHead() Index {
	return e.head
}

func (e SignedEdge) GetSign() Sign {
	return e.sign
}

// SignedGraph. immutable undirected signed graph. adjList[u] holds (neighbor, sign) pairs sorted by neighbor id,
// every edge is stored in the lists of both endpoints.
type SignedGraph struct {
	numVertices int
	numEdges    int
	adjList     [][]SignedEdge
}

func (g *SignedGraph) NumberOfVertices() int {
	return g.numVertices
}

func (g *SignedGraph) NumberOfEdges() int {
	return g.numEdges
}

func (g *SignedGraph) GetDegree(u Index) int {
	return len(g.adjList[u])
}

func (g *SignedGraph) GetNeighbors(u Index) []SignedEdge {
	return g.adjList[u]
}

func (g *SignedGraph) ForNeighborsOfVertex(u Index, handle func(v Index, sign Sign)) {
	for _, e := range g.adjList[u] {
		handle(e.head, e.sign)
	}
}

// GetSign. sign of edge (u, v), false if u and v are not adjacent. O(log degree(u)).
func (g *SignedGraph) GetSign(u, v Index) (Sign, bool) {
	adj := g.adjList[u]
	i := sort.Search(len(adj), func(i int) bool {
		return adj[i].head >= v
	})
	if i < len(adj) && adj[i].head == v {
		return adj[i].sign, true
	}
	return 0, false
}

// ForEachEdge. visit every undirected edge once, with u < v.
func (g *SignedGraph) ForEachEdge(handle func(u, v Index, sign Sign)) {
	for u := range g.adjList {
		for _, e := range g.adjList[u] {
			if Index(u) < e.head {
				handle(Index(u), e.head, e.sign)
			}
		}
	}
}

func (g *SignedGraph) NumberOfPositiveEdges() int {
	count := 0
	g.ForEachEdge(func(_, _ Index, sign Sign) {
		if sign.IsPositive() {
			count++
		}
	})
	return count
}

func (g *SignedGraph) NumberOfNegativeEdges() int {
	return g.numEdges - g.NumberOfPositiveEdges()
}

// SignedGraphBuilder. collects undirected signed edges, a repeated edge overwrites the sign of the previous one.
type SignedGraphBuilder struct {
	numVertices int
	edges       map[uint64]Sign
}

func NewSignedGraphBuilder(numVertices int) *SignedGraphBuilder {
	return &SignedGraphBuilder{
		numVertices: numVertices,
		edges:       make(map[uint64]Sign),
	}
}

func edgeKey(u, v Index) uint64 {
	if u > v {
		u, v = v, u
	}
	return uint64(u)<<32 | uint64(v)
}

func (b *SignedGraphBuilder) AddEdge(u, v Index, sign Sign) error {
	if int(u) >= b.numVertices || int(v) >= b.numVertices {
		return util.NewErrorf(util.ErrMalformedInput, "edge (%d, %d) out of range, number of vertices %d", u, v, b.numVertices)
	}
	if u == v {
		return util.NewErrorf(util.ErrMalformedInput, "self loop on vertex %d", u)
	}
	if !sign.Valid() {
		return util.NewErrorf(util.ErrMalformedInput, "invalid sign %d on edge (%d, %d)", sign, u, v)
	}
	b.edges[edgeKey(u, v)] = sign
	return nil
}

func (b *SignedGraphBuilder) NumberOfVertices() int {
	return b.numVertices
}

func (b *SignedGraphBuilder) Build() *SignedGraph {
	adjList := make([][]SignedEdge, b.numVertices)
	for key, sign := range b.edges {
		u, v := Index(key>>32), Index(key&0xffffffff)
		adjList[u] = append(adjList[u], NewSignedEdge(v, sign))
		adjList[v] = append(adjList[v], NewSignedEdge(u, sign))
	}
	for u := range adjList {
		adj := adjList[u]
		sort.Slice(adj, func(i, j int) bool {
			return adj[i].head < adj[j].head
		})
	}

	return &SignedGraph{
		numVertices: b.numVertices,
		numEdges:    len(b.edges),
		adjList:     adjList,
	}
}
