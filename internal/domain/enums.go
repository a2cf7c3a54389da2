package domain

// TimeLogCategory is the closed set of activity categories for time logs.
type TimeLogCategory string

const (
	CategoryWork          TimeLogCategory = "work"
	CategoryStudy         TimeLogCategory = "study"
	CategoryExercise      TimeLogCategory = "exercise"
	CategorySleep         TimeLogCategory = "sleep"
	CategoryMeal          TimeLogCategory = "meal"
	CategorySocial        TimeLogCategory = "social"
	CategoryEntertainment TimeLogCategory = "entertainment"
	CategoryCommute       TimeLogCategory = "commute"
	CategoryShopping      TimeLogCategory = "shopping"
	CategoryChores        TimeLogCategory = "chores"
	CategoryBreak         TimeLogCategory = "break"
	CategoryDeepwork      TimeLogCategory = "deepwork"
	CategoryMeeting       TimeLogCategory = "meeting"
	CategoryLearning      TimeLogCategory = "learning"
	CategoryPersonal      TimeLogCategory = "personal"
	CategoryOther         TimeLogCategory = "other"
)

func (c TimeLogCategory) String() string { return string(c) }

func (c TimeLogCategory) IsValid() bool {
	switch c {
	case CategoryWork, CategoryStudy, CategoryExercise, CategorySleep, CategoryMeal,
		CategorySocial, CategoryEntertainment, CategoryCommute, CategoryShopping,
		CategoryChores, CategoryBreak, CategoryDeepwork, CategoryMeeting,
		CategoryLearning, CategoryPersonal, CategoryOther:
		return true
	}
	return false
}

// TodoPriority represents the urgency level of a todo.
type TodoPriority string

const (
	PriorityLow    TodoPriority = "low"
	PriorityMedium TodoPriority = "medium"
	PriorityHigh   TodoPriority = "high"
	PriorityUrgent TodoPriority = "urgent"
)

func (p TodoPriority) String() string { return string(p) }

func (p TodoPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TodoBucket is the planning horizon a todo is filed under.
type TodoBucket string

const (
	BucketToday   TodoBucket = "today"
	BucketWeek    TodoBucket = "week"
	BucketMonth   TodoBucket = "month"
	BucketYear    TodoBucket = "year"
	BucketSomeday TodoBucket = "someday"
)

func (b TodoBucket) String() string { return string(b) }

func (b TodoBucket) IsValid() bool {
	switch b {
	case BucketToday, BucketWeek, BucketMonth, BucketYear, BucketSomeday:
		return true
	}
	return false
}

// RecurrencePattern is the closed set of recurrence steps for recurring todos.
type RecurrencePattern string

const (
	RecurDaily   RecurrencePattern = "daily"
	RecurWeekly  RecurrencePattern = "weekly"
	RecurMonthly RecurrencePattern = "monthly"
	RecurYearly  RecurrencePattern = "yearly"
)

func (p RecurrencePattern) String() string { return string(p) }

func (p RecurrencePattern) IsValid() bool {
	switch p {
	case RecurDaily, RecurWeekly, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

// Trend classifies the direction of a productivity score series.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

func (t Trend) String() string { return string(t) }
