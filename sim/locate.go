package sim

import "math/rand"

// Locator 把tract解析为其范围内的道路边集合
// 候选集由几何决定，构建一次；边的抽取对每个agent独立进行
type Locator struct {
	candidates map[string][]EdgeID
}

func NewLocator(tracts map[string]*Tract, network *Network) *Locator {
	l := &Locator{candidates: make(map[string][]EdgeID, len(tracts))}
	covered := 0
	for geoid, t := range tracts {
		if len(t.Boundary) < 3 {
			// 缺失几何，该tract的agent会被放弃
			continue
		}
		cands := make([]EdgeID, 0)
		for i := range network.Edges {
			e := &network.Edges[i]
			if t.Boundary.IntersectsPolyline(e.Line) {
				cands = append(cands, e.ID)
			}
		}
		if len(cands) > 0 {
			l.candidates[geoid] = cands
			covered++
		}
	}
	log.Infof("locator: %d/%d tracts have candidate edges", covered, len(tracts))
	return l
}

// SampleEdge 在tract候选边中均匀抽取一条
// tract未知、缺失几何或无候选边时返回false，调用方放弃该agent（或其工作侧）
func (l *Locator) SampleEdge(rng *rand.Rand, geoid string) (EdgeID, bool) {
	cands := l.candidates[geoid]
	if len(cands) == 0 {
		return EdgeID{}, false
	}
	return cands[rng.Intn(len(cands))], true
}
