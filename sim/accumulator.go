package sim

import (
	"sort"
)

// TrafficRecord 最终输出表的一行
type TrafficRecord struct {
	Edge  EdgeID
	Hour  int
	Count int
}

// Accumulator 24个按小时独立的边流量计数器
// 单写者使用，分片并行时每个分片各持一个，结束后Merge求和
type Accumulator struct {
	hours [HOURS_PER_DAY]map[EdgeID]int
}

func NewAccumulator() *Accumulator {
	a := &Accumulator{}
	for i := range a.hours {
		a.hours[i] = make(map[EdgeID]int)
	}
	return a
}

// Credit 给edge在hour时刻增加n单位流量，计数只增不减
func (a *Accumulator) Credit(edge EdgeID, hour int, n int) {
	if hour < 0 || hour >= HOURS_PER_DAY {
		log.Panicf("credit with hour %d out of [0,24)", hour)
	}
	if n <= 0 {
		log.Panicf("credit with non-positive amount %d", n)
	}
	a.hours[hour][edge] += n
}

// Get 查询计数，缺失的边视为0
func (a *Accumulator) Get(edge EdgeID, hour int) int {
	return a.hours[hour][edge]
}

// Merge 将另一累加器按和并入
func (a *Accumulator) Merge(b *Accumulator) {
	for hour, counts := range b.hours {
		for edge, n := range counts {
			a.hours[hour][edge] += n
		}
	}
}

// Finalize 产出长表，剔除零计数行，按(hour, edge)排序保证输出稳定
func (a *Accumulator) Finalize() []TrafficRecord {
	records := make([]TrafficRecord, 0)
	for hour, counts := range a.hours {
		for edge, n := range counts {
			if n <= 0 {
				continue
			}
			records = append(records, TrafficRecord{Edge: edge, Hour: hour, Count: n})
		}
	}
	sort.Slice(records, func(i, j int) bool {
		ri, rj := records[i], records[j]
		if ri.Hour != rj.Hour {
			return ri.Hour < rj.Hour
		}
		if ri.Edge.U != rj.Edge.U {
			return ri.Edge.U < rj.Edge.U
		}
		if ri.Edge.V != rj.Edge.V {
			return ri.Edge.V < rj.Edge.V
		}
		return ri.Edge.Key < rj.Edge.Key
	})
	return records
}
