package sim

import "math/rand"

type weightedFlow struct {
	work   string
	weight float64
}

// FlowTable 按home tract分组的就业流，用于给定家抽取工作地
type FlowTable struct {
	byHome map[string][]weightedFlow
	totals map[string]float64
}

// NewFlowTable 建表，非正权重的记录直接丢弃（不会被抽中）
func NewFlowTable(records []FlowRecord) *FlowTable {
	f := &FlowTable{
		byHome: make(map[string][]weightedFlow),
		totals: make(map[string]float64),
	}
	dropped := 0
	for _, r := range records {
		if r.Weight <= 0 {
			dropped++
			continue
		}
		f.byHome[r.Home] = append(f.byHome[r.Home], weightedFlow{work: r.Work, weight: r.Weight})
		f.totals[r.Home] += r.Weight
	}
	if dropped > 0 {
		log.Warnf("flow table: dropped %d records with non-positive weight", dropped)
	}
	log.Infof("flow table: %d home tracts", len(f.byHome))
	return f
}

// SampleWork 按权重有放回地抽取工作tract
// home无流量记录时返回false，调用方放弃该agent的通勤
func (f *FlowTable) SampleWork(rng *rand.Rand, home string) (string, bool) {
	flows := f.byHome[home]
	if len(flows) == 0 {
		return "", false
	}
	r := rng.Float64() * f.totals[home]
	cum := .0
	for _, fl := range flows {
		cum += fl.weight
		if r < cum {
			return fl.work, true
		}
	}
	// 浮点累加误差兜底
	return flows[len(flows)-1].work, true
}
