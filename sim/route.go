package sim

import (
	"github.com/puzpuzpuz/xsync/v3"
)

type odKey struct {
	From int64
	To   int64
}

type routeEntry struct {
	edges []EdgeID
	ok    bool
}

// RouteResolver 求通勤路径并缓存结果
// 图是静态的，(起点,终点)对应的最短路确定，缓存对并行分片共享
type RouteResolver struct {
	network *Network
	cache   *xsync.MapOf[odKey, routeEntry]
}

func NewRouteResolver(network *Network) *RouteResolver {
	return &RouteResolver{
		network: network,
		cache:   xsync.NewMapOf[odKey, routeEntry](),
	}
}

// Resolve 家边起点到工作边终点的最短路途经边
// 不可达时返回(nil, false)，由调用方回退到家边计数
func (r *RouteResolver) Resolve(from, to int64) ([]EdgeID, bool) {
	entry, _ := r.cache.LoadOrCompute(odKey{From: from, To: to}, func() routeEntry {
		edges, ok := r.network.ShortestPathEdges(from, to)
		return routeEntry{edges: edges, ok: ok}
	})
	return entry.edges, entry.ok
}

// CacheSize 已缓存的OD对数
func (r *RouteResolver) CacheSize() int {
	return r.cache.Size()
}
