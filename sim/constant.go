package sim

const (
	// 睡眠时长均匀分布范围/h
	SLEEP_MIN = 5
	SLEEP_MAX = 9

	// 居家办公开始工作时刻 正态分布参数/h
	WFH_START_MEAN = 9
	WFH_START_STD  = 1

	// 出发时刻正态分布标准差/h
	DEPARTURE_STD = 0.5

	// 单程通勤时长均匀分布范围/h
	COMMUTE_MIN = 0.25
	COMMUTE_MAX = 1.5

	// 工作时长/h
	WORKDAY_HOURS = 8

	// 起床到出发（或开始工作）之间的间隔/h
	WAKE_LEAD = 1

	HOURS_PER_DAY = 24
)

// DefaultTimeWindows ACS B08132出发时段表
var DefaultTimeWindows = []TimeWindow{
	{0, 5},
	{5, 5.5},
	{5.5, 6},
	{6, 6.5},
	{6.5, 7},
	{7, 7.5},
	{7.5, 8},
	{8, 8.5},
	{8.5, 9},
	{9, 10},
	{10, 11},
	{11, 12},
	{12, 16},
	{16, 24},
}

// CommuteModes 除居家办公外的全部通勤方式
var CommuteModes = []Mode{ModeDrive, ModeCarpool, ModeTransit, ModeWalk, ModeOther}
