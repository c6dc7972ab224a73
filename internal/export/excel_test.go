package export

import (
	"bytes"
	"testing"

	"carebook/internal/model"
	"carebook/internal/service"
	"carebook/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestEmergencySheetWorkbook(t *testing.T) {
	charlie := model.FamilyMember{
		ID:           uuid.New(),
		Name:         "Charlie Johnson",
		Relationship: model.RelationshipChild,
		DateOfBirth:  model.NewDate(2015, 4, 12),
		BloodType:    util.Some("A+"),
		Allergies:    []string{"Penicillin", "Peanuts"},
	}
	sheet := service.EmergencySheet{
		Contacts: []model.EmergencyContact{
			{ID: uuid.New(), Name: "Maria Garcia", Phone: "555-123-4567", Relationship: "Neighbor"},
		},
		CriticalNotes: []model.MedicalNote{
			{ID: uuid.New(), Title: "Penicillin Allergy", Content: "Severe reaction", IsCritical: true,
				Date: model.NewDate(2020, 3, 10), FamilyMemberID: util.Some(charlie.ID)},
			{ID: uuid.New(), Title: "House Alarm Code", Content: "By the door", IsCritical: true,
				Date: model.NewDate(2021, 1, 1)},
		},
		AffectedMembers: []model.FamilyMember{charlie},
	}

	data, err := EmergencySheetWorkbook(sheet)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Emergency Contacts", "Critical Notes", "Members"}, f.GetSheetList())

	contacts, err := f.GetRows("Emergency Contacts")
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, []string{"Name", "Phone", "Relationship"}, contacts[0])
	assert.Equal(t, []string{"Maria Garcia", "555-123-4567", "Neighbor"}, contacts[1])

	notes, err := f.GetRows("Critical Notes")
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "Penicillin Allergy", notes[1][0])
	assert.Equal(t, "Charlie Johnson", notes[1][1])
	assert.Equal(t, "2020-03-10", notes[1][2])
	// Notes without a member fall back to General.
	assert.Equal(t, "General", notes[2][1])

	members, err := f.GetRows("Members")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Charlie Johnson", members[1][0])
	assert.Equal(t, "A+", members[1][3])
	assert.Equal(t, "Penicillin, Peanuts", members[1][4])
}

func TestEmergencySheetWorkbookUnknownMember(t *testing.T) {
	sheet := service.EmergencySheet{
		CriticalNotes: []model.MedicalNote{
			{ID: uuid.New(), Title: "Orphaned Note", IsCritical: true,
				Date: model.NewDate(2022, 5, 5), FamilyMemberID: util.Some(uuid.New())},
		},
	}

	data, err := EmergencySheetWorkbook(sheet)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	notes, err := f.GetRows("Critical Notes")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "Unknown Member", notes[1][1])
}

func TestFamilyWorkbook(t *testing.T) {
	members := []model.FamilyMember{
		{ID: uuid.New(), Name: "Alex Johnson", Relationship: model.RelationshipSelf,
			DateOfBirth: model.NewDate(1988, 7, 2), BloodType: util.Some("O-"),
			Allergies: []string{}, MedicalHistorySummary: "Hypertension"},
		{ID: uuid.New(), Name: "Brenda Johnson", Relationship: model.RelationshipSpouse,
			DateOfBirth: model.NewDate(1990, 11, 23)},
	}

	data, err := FamilyWorkbook(members)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Family Members"}, f.GetSheetList())

	rows, err := f.GetRows("Family Members")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Relationship", "Date of Birth", "Blood Type", "Allergies", "Medical History"}, rows[0])
	assert.Equal(t, "Alex Johnson", rows[1][0])
	assert.Equal(t, "Self", rows[1][1])
	assert.Equal(t, "O-", rows[1][3])
	assert.Equal(t, "Hypertension", rows[1][5])
	// Missing blood type reads as Unknown.
	assert.Equal(t, "Unknown", rows[2][3])
}
