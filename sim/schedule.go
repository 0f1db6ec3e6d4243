package sim

import (
	"math"
	"math/rand"
)

// State 某一整点小时的活动状态，五种状态对[0,24)构成划分
type State int

const (
	StateAsleep State = iota
	StateAtHome
	StateCommutingOut
	StateAtWork
	StateCommutingBack
)

func (s State) String() string {
	switch s {
	case StateAsleep:
		return "asleep"
	case StateAtHome:
		return "at-home"
	case StateCommutingOut:
		return "commuting-out"
	case StateAtWork:
		return "at-work"
	case StateCommutingBack:
		return "commuting-back"
	default:
		return "unknown"
	}
}

// Schedule 单个agent的24小时活动时间线（闭式表示）
// 各时刻为实数小时，可能越过24
type Schedule struct {
	WFH bool

	SleepStart    float64
	SleepDuration float64

	// 以下字段仅对通勤agent有效
	Departure       float64
	Arrival         float64
	ReturnDeparture float64
	ReturnArrival   float64
}

func wrap24(x float64) float64 {
	m := math.Mod(x, HOURS_PER_DAY)
	if m < 0 {
		m += HOURS_PER_DAY
	}
	return m
}

// inWindow 24小时环上的区间隶属判定，[start, start+length)，区间可跨午夜
func inWindow(hour, start, length float64) bool {
	return wrap24(hour-start) < length
}

// NewHomeSchedule 生成居家办公agent的时间线
func NewHomeSchedule(rng *rand.Rand) Schedule {
	sleepDuration := SLEEP_MIN + rng.Float64()*(SLEEP_MAX-SLEEP_MIN)
	workStart := rng.NormFloat64()*WFH_START_STD + WFH_START_MEAN
	return Schedule{
		WFH:           true,
		SleepStart:    wrap24(workStart - sleepDuration - WAKE_LEAD),
		SleepDuration: sleepDuration,
	}
}

// NewCommuteSchedule 生成通勤agent的时间线
// 出发时刻取时段中点附近的正态采样，工作时长固定
func NewCommuteSchedule(rng *rand.Rand, window TimeWindow) Schedule {
	sleepDuration := SLEEP_MIN + rng.Float64()*(SLEEP_MAX-SLEEP_MIN)
	departure := rng.NormFloat64()*DEPARTURE_STD + window.Midpoint()
	commute := COMMUTE_MIN + rng.Float64()*(COMMUTE_MAX-COMMUTE_MIN)
	arrival := departure + commute
	returnDeparture := arrival + WORKDAY_HOURS
	return Schedule{
		SleepStart:      wrap24(departure - sleepDuration - WAKE_LEAD),
		SleepDuration:   sleepDuration,
		Departure:       departure,
		Arrival:         arrival,
		ReturnDeparture: returnDeparture,
		ReturnArrival:   returnDeparture + commute,
	}
}

// StateAt 返回整点小时hour所属的状态
// 睡眠区间优先，通勤与工作区间在24小时环上判定，其余时间在家
func (s Schedule) StateAt(hour int) State {
	h := float64(hour)
	if inWindow(h, s.SleepStart, s.SleepDuration) {
		return StateAsleep
	}
	if s.WFH {
		return StateAtHome
	}
	if inWindow(h, s.Departure, s.Arrival-s.Departure) {
		return StateCommutingOut
	}
	if inWindow(h, s.Arrival, s.ReturnDeparture-s.Arrival) {
		return StateAtWork
	}
	if inWindow(h, s.ReturnDeparture, s.ReturnArrival-s.ReturnDeparture) {
		return StateCommutingBack
	}
	return StateAtHome
}
