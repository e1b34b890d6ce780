package core

import "sort"

// TypeCount is the number of units of a given property type.
type TypeCount struct {
	Type  PropertyType
	Count int
}

// Summary is the dashboard overview of the portfolio.
type Summary struct {
	TotalUnits    int
	OccupiedUnits int
	VacantUnits   int
	TotalTenants  int
	MonthlyRent   Money // base rent of occupied units
	PotentialRent Money // base rent of all units
	ByType        []TypeCount
}

// OccupancyRate returns occupied units as a percentage of all units.
func (s Summary) OccupancyRate() float64 {
	if s.TotalUnits == 0 {
		return 0
	}
	return float64(s.OccupiedUnits) * 100 / float64(s.TotalUnits)
}

// Summarize computes the dashboard overview from the unit and tenant lists.
func Summarize(units []PropertyUnit, tenants []Tenant) Summary {
	s := Summary{TotalUnits: len(units), TotalTenants: len(tenants)}
	counts := make(map[PropertyType]int)
	for _, u := range units {
		s.PotentialRent = s.PotentialRent.Add(u.BaseRentAmount)
		if u.Occupied() {
			s.OccupiedUnits++
			s.MonthlyRent = s.MonthlyRent.Add(u.BaseRentAmount)
		}
		counts[u.Type]++
	}
	s.VacantUnits = s.TotalUnits - s.OccupiedUnits
	for t, c := range counts {
		s.ByType = append(s.ByType, TypeCount{Type: t, Count: c})
	}
	sort.Slice(s.ByType, func(i, j int) bool {
		if s.ByType[i].Count != s.ByType[j].Count {
			return s.ByType[i].Count > s.ByType[j].Count
		}
		return s.ByType[i].Type < s.ByType[j].Type
	})
	return s
}
