package domain

import "time"

// WeeklyPlanConfig assigns a routine to each weekday. An empty string marks a
// rest day; fields are never omitted when persisted.
type WeeklyPlanConfig struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Monday    string    `json:"monday"`
	Tuesday   string    `json:"tuesday"`
	Wednesday string    `json:"wednesday"`
	Thursday  string    `json:"thursday"`
	Friday    string    `json:"friday"`
	Saturday  string    `json:"saturday"`
	Sunday    string    `json:"sunday"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WeeklyPlanPatch lists the weekdays to overwrite. Weekdays missing from the
// map keep their current assignment; an empty value sets a rest day.
type WeeklyPlanPatch map[time.Weekday]string

// RoutineFor returns the routine assigned to day, or "" for a rest day.
func (p WeeklyPlanConfig) RoutineFor(day time.Weekday) string {
	if field := p.field(day); field != nil {
		return *field
	}
	return ""
}

// Assign sets the routine for day.
func (p *WeeklyPlanConfig) Assign(day time.Weekday, routineID string) {
	if field := p.field(day); field != nil {
		*field = routineID
	}
}

func (p *WeeklyPlanConfig) field(day time.Weekday) *string {
	switch day {
	case time.Sunday:
		return &p.Sunday
	case time.Monday:
		return &p.Monday
	case time.Tuesday:
		return &p.Tuesday
	case time.Wednesday:
		return &p.Wednesday
	case time.Thursday:
		return &p.Thursday
	case time.Friday:
		return &p.Friday
	case time.Saturday:
		return &p.Saturday
	}
	return nil
}

// ParseWeekday maps a lowercase weekday name ("monday") to time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if weekdayNames[day] == name {
			return day, true
		}
	}
	return 0, false
}

// WeekdayName returns the plan field name for day.
func WeekdayName(day time.Weekday) string {
	return weekdayNames[day]
}

var weekdayNames = [...]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}
