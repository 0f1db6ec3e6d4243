package main

import (
	"flag"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urbansim/foottraffic/sim"
)

var (
	benchmarkCount = flag.Int("benchmark.count", 1000, "the random agent count for benchmark")
	benchmarkSeed  = flag.Int64("benchmark.seed", 0, "the seed for benchmark")
	benchmarkCPU   = flag.Int("benchmark.cpu", 1, "the shard count for benchmark")
)

// runBenchmark 在已加载数据上合成随机agent并计时仿真
func runBenchmark(in *inputs) {
	log.Logger.SetLevel(logrus.WarnLevel)
	// 设置随机种子
	e := rand.New(rand.NewSource(*benchmarkSeed))

	// 随机生成benchmarkCount个agent：随机tract、通勤方式、出发时段
	tracts := make([]*sim.Tract, len(in.tracts))
	for i, t := range in.tracts {
		tracts[i] = &sim.Tract{GEOID: t.GEOID, Boundary: t.Boundary}
	}
	for i := 0; i < *benchmarkCount; i++ {
		t := tracts[e.Intn(len(tracts))]
		mode := sim.CommuteModes[e.Intn(len(sim.CommuteModes))]
		window := sim.DefaultTimeWindows[e.Intn(len(sim.DefaultTimeWindows))]
		t.Counts = append(t.Counts, sim.CommuteCount{Mode: mode, Window: window, Workers: 1})
	}

	s := sim.New(tracts, in.flows, in.network, sim.Config{
		Seed:         *benchmarkSeed,
		Shards:       *benchmarkCPU,
		RouteDrivers: *routeDrivers,
	})

	// 开始benchmark
	start := time.Now()
	records := s.Run()
	timeCost := time.Since(start)
	log.Error(
		"benchmark finished", "\n",
		"count:", *benchmarkCount, "\n",
		"time:", timeCost, "\n",
		"avg:", timeCost/time.Duration(*benchmarkCount), "\n",
		"records:", len(records), "\n",
	)
}
