package sim

import (
	"math/rand"
	"sort"
	"sync"
)

// Config 仿真配置
type Config struct {
	// 随机种子，分片i的随机源以Seed+i初始化
	Seed int64
	// 并行分片数，<=1时串行
	Shards int
	// 是否给drive/carpool的通勤小时也按最短路计边流量
	// 默认关闭：原模型不对驾车通勤做空间分布（见DESIGN.md开放问题）
	RouteDrivers bool
}

// Simulator 从通勤统计合成agent群体并聚合小时级边流量
// 输入在构建时全部载入，仿真循环内无I/O
type Simulator struct {
	tracts   map[string]*Tract
	order    []string // 确定性的tract遍历顺序
	flows    *FlowTable
	network  *Network
	locator  *Locator
	resolver *RouteResolver
	cfg      Config
}

func New(tracts []*Tract, flows []FlowRecord, network *Network, cfg Config) *Simulator {
	byID := make(map[string]*Tract, len(tracts))
	order := make([]string, 0, len(tracts))
	for _, t := range tracts {
		if _, ok := byID[t.GEOID]; ok {
			log.Warnf("duplicate tract %s, keeping the first", t.GEOID)
			continue
		}
		byID[t.GEOID] = t
		order = append(order, t.GEOID)
	}
	sort.Strings(order)
	return &Simulator{
		tracts:   byID,
		order:    order,
		flows:    NewFlowTable(flows),
		network:  network,
		locator:  NewLocator(byID, network),
		resolver: NewRouteResolver(network),
		cfg:      cfg,
	}
}

// Run 仿真全部tract并产出最终长表
// tract按轮转分配到各分片，分片各自持有随机源与累加器，结束后按和合并
func (s *Simulator) Run() []TrafficRecord {
	shards := s.cfg.Shards
	if shards < 1 {
		shards = 1
	}
	accs := make([]*Accumulator, shards)
	var wg sync.WaitGroup
	wg.Add(shards)
	for i := 0; i < shards; i++ {
		go func(shard int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(s.cfg.Seed + int64(shard)))
			acc := NewAccumulator()
			for j := shard; j < len(s.order); j += shards {
				s.SimulateTract(rng, s.tracts[s.order[j]], acc)
			}
			accs[shard] = acc
		}(i)
	}
	wg.Wait()
	total := accs[0]
	for _, acc := range accs[1:] {
		total.Merge(acc)
	}
	log.Infof("simulated %d tracts, %d cached routes", len(s.order), s.resolver.CacheSize())
	return total.Finalize()
}

// SimulateTract 仿真一个tract内上报的全部worker
func (s *Simulator) SimulateTract(rng *rand.Rand, t *Tract, acc *Accumulator) {
	log.Debugf("simulating tract %s", t.GEOID)
	for i := 0; i < t.WFH; i++ {
		s.simulateHomeWorker(rng, t, acc)
	}
	for _, c := range t.Counts {
		for i := 0; i < c.Workers; i++ {
			s.simulateCommuter(rng, t, c, acc)
		}
	}
}

// 居家办公agent：醒着的每个小时给家边计1
func (s *Simulator) simulateHomeWorker(rng *rand.Rand, t *Tract, acc *Accumulator) {
	homeEdge, ok := s.locator.SampleEdge(rng, t.GEOID)
	if !ok {
		return
	}
	sched := NewHomeSchedule(rng)
	for hour := 0; hour < HOURS_PER_DAY; hour++ {
		if sched.StateAt(hour) != StateAsleep {
			acc.Credit(homeEdge, hour, 1)
		}
	}
}

// 通勤agent：定位失败、无流量数据等逐级放弃，均不中断仿真
func (s *Simulator) simulateCommuter(rng *rand.Rand, t *Tract, c CommuteCount, acc *Accumulator) {
	homeEdge, ok := s.locator.SampleEdge(rng, t.GEOID)
	if !ok {
		return
	}
	workGeoid, ok := s.flows.SampleWork(rng, t.GEOID)
	if !ok {
		return
	}
	workEdge, ok := s.locator.SampleEdge(rng, workGeoid)
	if !ok {
		return
	}
	sched := NewCommuteSchedule(rng, c.Window)

	// 通勤路径对去程回程复用，首个通勤小时才解析
	var routed []EdgeID
	routedOK, resolved := false, false
	for hour := 0; hour < HOURS_PER_DAY; hour++ {
		switch sched.StateAt(hour) {
		case StateAsleep:
			// 不产生流量
		case StateAtHome:
			acc.Credit(homeEdge, hour, 1)
		case StateAtWork:
			acc.Credit(workEdge, hour, 1)
		case StateCommutingOut, StateCommutingBack:
			switch c.Mode {
			case ModeWalk, ModeOther:
				if !resolved {
					routed, routedOK = s.resolver.Resolve(homeEdge.U, workEdge.V)
					resolved = true
				}
				if routedOK {
					for _, e := range routed {
						acc.Credit(e, hour, 1)
					}
				} else {
					// 不可达，回退到家边
					acc.Credit(homeEdge, hour, 1)
				}
			case ModeTransit:
				// 近似：只计接驳两端
				acc.Credit(homeEdge, hour, 1)
				acc.Credit(workEdge, hour, 1)
			case ModeDrive, ModeCarpool:
				if s.cfg.RouteDrivers {
					if !resolved {
						routed, routedOK = s.resolver.Resolve(homeEdge.U, workEdge.V)
						resolved = true
					}
					if routedOK {
						for _, e := range routed {
							acc.Credit(e, hour, 1)
						}
					} else {
						acc.Credit(homeEdge, hour, 1)
					}
				}
				// 默认不把驾车通勤落到边流量上
			}
		}
	}
}
