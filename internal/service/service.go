package service

import (
	"sort"

	"carebook/internal/model"
	"carebook/internal/util"

	"github.com/google/uuid"
)

// memberNames builds a display-name lookup that degrades to a fallback
// string instead of failing on dangling references.
func memberNames(members []model.FamilyMember) func(id util.Optional[uuid.UUID]) string {
	byID := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		byID[m.ID] = m.Name
	}
	return func(id util.Optional[uuid.UUID]) string {
		if !id.IsSet {
			return "General"
		}
		if name, ok := byID[id.Val]; ok {
			return name
		}
		return "Unknown Member"
	}
}

func sortAppointmentsAscending(appointments []model.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].Date.Before(appointments[j].Date)
	})
}
