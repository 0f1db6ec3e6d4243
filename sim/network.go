package sim

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/urbansim/foottraffic/sim/algo"
)

type footHeuristics struct{}

// 直线距离，不超过任何按长度累加的真实路径代价
func (footHeuristics) HeuristicEuclidean(p1, p2 geometry.Point) float64 {
	return geometry.Distance(p1, p2)
}

// Network 可路由路网，构建完成后只读
type Network struct {
	Edges []Edge

	edgeByID  map[EdgeID]*Edge
	nodeIndex map[int64]int // 节点id -> graph内部编号
	graph     *algo.SearchGraph[int64, EdgeID]
}

func NewNetwork(nodes []Node, edges []Edge) *Network {
	n := &Network{
		Edges:     edges,
		edgeByID:  make(map[EdgeID]*Edge, len(edges)),
		nodeIndex: make(map[int64]int, len(nodes)),
		graph:     algo.NewSearchGraph[int64, EdgeID](footHeuristics{}),
	}
	for _, node := range nodes {
		n.nodeIndex[node.ID] = n.graph.InitNode(node.P, node.ID)
	}
	type pair struct{ u, v int }
	// 平行边只保留最短的一条参与路由
	shortest := make(map[pair]float64)
	dangling := 0
	for i := range edges {
		e := &edges[i]
		n.edgeByID[e.ID] = e
		from, okU := n.nodeIndex[e.ID.U]
		to, okV := n.nodeIndex[e.ID.V]
		if !okU || !okV {
			dangling++
			continue
		}
		p := pair{from, to}
		if prev, ok := shortest[p]; ok && prev <= e.Length {
			continue
		}
		shortest[p] = e.Length
		n.graph.InitEdge(from, to, e.Length, e.ID)
	}
	if dangling > 0 {
		log.Warnf("network: %d edges reference unknown nodes, excluded from routing", dangling)
	}
	log.Infof("network: %d nodes, %d edges (%d routable)", len(nodes), len(edges), len(shortest))
	return n
}

// EdgeByID 取边（用于把几何回填到输出）
func (n *Network) EdgeByID(id EdgeID) (*Edge, bool) {
	e, ok := n.edgeByID[id]
	return e, ok
}

// ShortestPathEdges 按长度求from到to的最短路，返回途经边序列
// 节点未知或不可达时返回(nil, false)
func (n *Network) ShortestPathEdges(from, to int64) ([]EdgeID, bool) {
	start, ok := n.nodeIndex[from]
	if !ok {
		return nil, false
	}
	end, ok := n.nodeIndex[to]
	if !ok {
		return nil, false
	}
	path, _ := n.graph.ShortestPath(start, end)
	if path == nil {
		return nil, false
	}
	edges := make([]EdgeID, 0, len(path)-1)
	for _, item := range path[:len(path)-1] {
		edges = append(edges, item.EdgeAttr)
	}
	return edges, true
}
