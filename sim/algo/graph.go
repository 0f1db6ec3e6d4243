package algo

import (
	"container/heap"
	"log"
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
)

type node[NT any] struct {
	p    geometry.Point
	attr NT
}

type edge[ET any] struct {
	length float64
	attr   ET
}

// SearchGraph 带属性的有向图，按边长求最短路
// 仿真开始前构建完成，Runtime期间只读，搜索不需要加锁
type SearchGraph[NT any, ET any] struct {
	// 邻接表 in node -> out node -> edge
	edges []map[int]edge[ET]
	nodes []node[NT]
	// A Star距离预估函数
	h IHeuristics
}

type IHeuristics interface {
	HeuristicEuclidean(geometry.Point, geometry.Point) float64
}

func NewSearchGraph[NT any, ET any](h IHeuristics) *SearchGraph[NT, ET] {
	return &SearchGraph[NT, ET]{
		edges: make([]map[int]edge[ET], 0),
		nodes: make([]node[NT], 0),
		h:     h,
	}
}

func (g *SearchGraph[NT, ET]) InitNode(p geometry.Point, attr NT) int {
	g.nodes = append(g.nodes, node[NT]{p: p, attr: attr})
	g.edges = append(g.edges, make(map[int]edge[ET]))
	return len(g.nodes) - 1
}

func (g *SearchGraph[NT, ET]) InitEdge(from, to int, length float64, attr ET) {
	if from >= len(g.edges) {
		log.Panicf("from node %d >= len(g.edges) %d", from, len(g.edges))
	}
	g.edges[from][to] = edge[ET]{
		length: length,
		attr:   attr,
	}
}

func (g *SearchGraph[NT, ET]) NodeCount() int {
	return len(g.nodes)
}

func (g *SearchGraph[NT, ET]) GetEdgeLength(from, to int) float64 {
	return g.edges[from][to].length
}

type PathItem[NT any, ET any] struct {
	NodeAttr NT
	EdgeAttr ET
}

func (g *SearchGraph[NT, ET]) reconstructPath(cameFrom map[int]int, curNode int) ([]PathItem[NT, ET], float64) {
	pathBeforeReversed := []PathItem[NT, ET]{{NodeAttr: g.nodes[curNode].attr}}
	cost := .0
	for {
		if from, ok := cameFrom[curNode]; ok {
			e := g.edges[from][curNode]
			cost += e.length
			curNode = from
			pathBeforeReversed = append(pathBeforeReversed, PathItem[NT, ET]{
				NodeAttr: g.nodes[curNode].attr,
				EdgeAttr: e.attr,
			})
		} else {
			break
		}
	}
	return lo.Reverse(pathBeforeReversed), cost
}

// A Star算法求最短路，不可达时返回nil与+Inf
func (g *SearchGraph[NT, ET]) ShortestPath(start, end int) ([]PathItem[NT, ET], float64) {
	if start == end {
		return []PathItem[NT, ET]{{NodeAttr: g.nodes[start].attr}}, 0
	}
	openSet := make(PriorityQueue, 1)
	openSetMap := make(map[int]*Item, 1) // openSet value -> openSet item
	cameFrom := make(map[int]int, 0)
	gScore := make(map[int]float64, 0)
	gScore[start] = .0
	fScore := g.h.HeuristicEuclidean(g.nodes[start].p, g.nodes[end].p)
	openSet[0] = &Item{Value: start, Priority: fScore, Index: 0}
	openSetMap[start] = openSet[0]
	heap.Init(&openSet)
	for openSet.Len() > 0 {
		cur := heap.Pop(&openSet).(*Item).Value
		if cur == end {
			return g.reconstructPath(cameFrom, cur)
		}
		for neighbor, edge := range g.edges[cur] {
			gScoreTentative := gScore[cur] + edge.length
			var gScoreNeighbor float64
			s, ok := gScore[neighbor]
			if ok {
				gScoreNeighbor = s
			} else {
				gScoreNeighbor = math.Inf(0)
			}
			if gScoreTentative < gScoreNeighbor {
				cameFrom[neighbor] = cur
				gScore[neighbor] = gScoreTentative
				fScore := gScoreTentative + g.h.HeuristicEuclidean(g.nodes[neighbor].p, g.nodes[end].p)
				if ok {
					// 已经访问过的节点，修改其在heap中的优先级
					openSetMap[neighbor].Priority = fScore
					heap.Fix(&openSet, openSetMap[neighbor].Index)
				} else {
					// 新访问的节点
					item := &Item{Value: neighbor, Priority: fScore}
					heap.Push(&openSet, item)
					openSetMap[neighbor] = item
				}
			}
		}
	}
	return nil, math.Inf(0)
}
