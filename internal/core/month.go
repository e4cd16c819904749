package core

import "sort"

// UnknownMonthRank sorts unrecognized month stems after all calendar
// months; their relative order stays stable.
const UnknownMonthRank = 13

// Month is the result of resolving a workbook filename stem.
type Month struct {
	Stem string // filename stem as found on disk
	Name string // canonical full month name, or the stem itself
	Rank int    // 1-12 calendar index, or UnknownMonthRank
}

// canonicalMonths maps recognized stems (abbreviations and full names,
// case-sensitive on exact match) to canonical full names.
var canonicalMonths = map[string]string{
	"Jan": "January", "January": "January",
	"Feb": "February", "February": "February",
	"Mar": "March", "March": "March",
	"Apr": "April", "April": "April",
	"May": "May",
	"Jun": "June", "June": "June",
	"Jul": "July", "July": "July",
	"Aug": "August", "August": "August",
	"Sep": "September", "Sept": "September", "September": "September",
	"Oct": "October", "October": "October",
	"Nov": "November", "November": "November",
	"Dec": "December", "December": "December",
}

var monthRank = map[string]int{
	"January": 1, "February": 2, "March": 3, "April": 4,
	"May": 5, "June": 6, "July": 7, "August": 8,
	"September": 9, "October": 10, "November": 11, "December": 12,
}

// ResolveMonth maps a filename stem to its canonical month. Unrecognized
// stems pass through unchanged with UnknownMonthRank.
func ResolveMonth(stem string) Month {
	if name, ok := canonicalMonths[stem]; ok {
		return Month{Stem: stem, Name: name, Rank: monthRank[name]}
	}
	return Month{Stem: stem, Name: stem, Rank: UnknownMonthRank}
}

// SortMonths orders months chronologically. The sort is stable so
// unrecognized stems keep their discovery order after the calendar months.
func SortMonths(months []Month) {
	sort.SliceStable(months, func(i, j int) bool {
		return months[i].Rank < months[j].Rank
	})
}
