package sim_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urbansim/foottraffic/sim"
)

// 五种状态对[0,24)构成划分：每个整点恰好落入一种状态
func TestStateAtPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		window := sim.DefaultTimeWindows[rng.Intn(len(sim.DefaultTimeWindows))]
		sched := sim.NewCommuteSchedule(rng, window)
		states := make(map[sim.State]int)
		for hour := 0; hour < 24; hour++ {
			states[sched.StateAt(hour)]++
		}
		total := 0
		for _, n := range states {
			total += n
		}
		assert.Equal(t, 24, total)
		// 工作8小时恰好覆盖8个整点
		assert.Equal(t, 8, states[sim.StateAtWork])
		// 睡眠5~9小时
		asleep := states[sim.StateAsleep]
		assert.GreaterOrEqual(t, asleep, 5)
		assert.LessOrEqual(t, asleep, 9)
	}
}

// 睡眠区间跨午夜：sleep_start=22, duration=7 ⇒ {22,23,0,1,2,3,4}
func TestStateAtWrappedSleep(t *testing.T) {
	sched := sim.Schedule{
		WFH:           true,
		SleepStart:    22,
		SleepDuration: 7,
	}
	asleep := make([]int, 0)
	for hour := 0; hour < 24; hour++ {
		if sched.StateAt(hour) == sim.StateAsleep {
			asleep = append(asleep, hour)
		} else {
			assert.Equal(t, sim.StateAtHome, sched.StateAt(hour))
		}
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 22, 23}, asleep)
}

// 通勤区间跨午夜
func TestStateAtWrappedCommute(t *testing.T) {
	sched := sim.Schedule{
		SleepStart:      12.25, // 23.75 - 10.5 - 1
		SleepDuration:   10,    // 仅用于构造，范围外的值不影响判定逻辑
		Departure:       23.75,
		Arrival:         24.75,
		ReturnDeparture: 32.75,
		ReturnArrival:   33.75,
	}
	assert.Equal(t, sim.StateAtHome, sched.StateAt(23))
	assert.Equal(t, sim.StateCommutingOut, sched.StateAt(0))
	for hour := 1; hour <= 8; hour++ {
		assert.Equal(t, sim.StateAtWork, sched.StateAt(hour), "hour %d", hour)
	}
	assert.Equal(t, sim.StateCommutingBack, sched.StateAt(9))
}

func TestNewCommuteScheduleRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		sched := sim.NewCommuteSchedule(rng, sim.TimeWindow{Start: 7, End: 7.5})
		commute := sched.Arrival - sched.Departure
		assert.GreaterOrEqual(t, commute, 0.25)
		assert.Less(t, commute, 1.5)
		assert.GreaterOrEqual(t, sched.SleepDuration, 5.0)
		assert.Less(t, sched.SleepDuration, 9.0)
		assert.Equal(t, sched.Arrival+8, sched.ReturnDeparture)
		assert.InDelta(t, commute, sched.ReturnArrival-sched.ReturnDeparture, 1e-9)
		assert.GreaterOrEqual(t, sched.SleepStart, 0.0)
		assert.Less(t, sched.SleepStart, 24.0)
		assert.False(t, sched.WFH)
	}
}

// 居家办公agent永远不会出现通勤或工作状态
func TestNewHomeSchedule(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		sched := sim.NewHomeSchedule(rng)
		assert.True(t, sched.WFH)
		for hour := 0; hour < 24; hour++ {
			state := sched.StateAt(hour)
			assert.Contains(t, []sim.State{sim.StateAsleep, sim.StateAtHome}, state)
		}
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "asleep", sim.StateAsleep.String())
	assert.Equal(t, "commuting-back", sim.StateCommutingBack.String())
	assert.Equal(t, "unknown", sim.State(99).String())
}
