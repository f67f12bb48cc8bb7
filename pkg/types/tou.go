package types

// TOUCategory is a named time-of-use rate category.
type TOUCategory string

const (
	OnPeak       TOUCategory = "On-Peak"
	OffPeak      TOUCategory = "Off-Peak"
	SuperOffPeak TOUCategory = "Super Off-Peak"
)

// TOUCategories lists every category from the most to the least expensive.
var TOUCategories = []TOUCategory{OnPeak, OffPeak, SuperOffPeak}

// DayType selects which half of a rate schedule applies to a day.
type DayType string

const (
	Weekdays            DayType = "Weekdays"
	WeekendsAndHolidays DayType = "WeekendsAndHolidays"
)

// Season selects the seasonal half of a rate schedule.
type Season string

const (
	Summer Season = "Summer"
	Winter Season = "Winter"
)

// CategoryHours counts charging hours credited to each TOU category.
type CategoryHours map[TOUCategory]int

// Total returns the hours across all categories.
func (h CategoryHours) Total() int {
	var total int
	for _, n := range h {
		total += n
	}
	return total
}

// Add accumulates other into h.
func (h CategoryHours) Add(other CategoryHours) {
	for c, n := range other {
		h[c] += n
	}
}

// NewCategoryHours returns a CategoryHours with every category set to zero so
// that all three appear in serialized output.
func NewCategoryHours() CategoryHours {
	h := make(CategoryHours, len(TOUCategories))
	for _, c := range TOUCategories {
		h[c] = 0
	}
	return h
}
