package repository

import (
	"context"
	"fmt"
	"time"

	"carebook/internal/model"
	"carebook/internal/util"

	"github.com/google/uuid"
)

// Stable ids so the seeded dataset survives restarts unchanged.
var (
	SeedMemberAlex    = uuid.MustParse("a1e00000-0000-4000-8000-000000000001")
	SeedMemberBrenda  = uuid.MustParse("a1e00000-0000-4000-8000-000000000002")
	SeedMemberCharlie = uuid.MustParse("a1e00000-0000-4000-8000-000000000003")
)

// Seed loads the starter dataset. Relative dates (the expiring refill, the
// upcoming appointments) are anchored to now so the dashboard has content
// on first run.
func Seed(ctx context.Context, repo Repository, now time.Time) error {
	base := now.Add(-30 * 24 * time.Hour)
	today := model.DateOf(now)

	members := []model.FamilyMember{
		{
			ID:                    SeedMemberAlex,
			Name:                  "Alex Johnson",
			DateOfBirth:           model.NewDate(1988, 5, 20),
			Relationship:          model.RelationshipSelf,
			MedicalHistorySummary: "Generally healthy. History of seasonal allergies.",
			BloodType:             util.Some("O+"),
			Allergies:             []string{"Pollen", "Dust Mites"},
			CreatedAt:             base,
			UpdatedAt:             base,
		},
		{
			ID:                    SeedMemberBrenda,
			Name:                  "Brenda Johnson",
			DateOfBirth:           model.NewDate(1990, 11, 12),
			Relationship:          model.RelationshipSpouse,
			MedicalHistorySummary: "No major health issues. Manages occasional migraines.",
			BloodType:             util.Some("A-"),
			Allergies:             []string{},
			CreatedAt:             base.Add(time.Second),
			UpdatedAt:             base.Add(time.Second),
		},
		{
			ID:                    SeedMemberCharlie,
			Name:                  "Charlie Johnson",
			DateOfBirth:           model.NewDate(2018, 9, 1),
			Relationship:          model.RelationshipChild,
			MedicalHistorySummary: "Up to date on all vaccinations. History of minor ear infections.",
			BloodType:             util.Some("O+"),
			Allergies:             []string{"Penicillin"},
			CreatedAt:             base.Add(2 * time.Second),
			UpdatedAt:             base.Add(2 * time.Second),
		},
	}
	for _, m := range members {
		if err := repo.CreateMember(ctx, m); err != nil {
			return fmt.Errorf("seed member %s: %w", m.Name, err)
		}
	}

	documents := []model.DocumentItem{
		{
			ID:             uuid.New(),
			Title:          "Charlie's Annual Checkup",
			Category:       "Doctor's Note",
			UploadDate:     model.NewDate(2023, 9, 15),
			FileName:       "charlie_checkup_2023.pdf",
			FamilyMemberID: util.Some(SeedMemberCharlie),
			Version:        1,
			CreatedAt:      base,
			UpdatedAt:      base,
		},
		{
			ID:             uuid.New(),
			Title:          "Blood Panel Results",
			Category:       "Lab Report",
			UploadDate:     model.NewDate(2023, 10, 22),
			FileName:       "alex_bloodwork_2023.pdf",
			FamilyMemberID: util.Some(SeedMemberAlex),
			Version:        1,
			CreatedAt:      base.Add(time.Second),
			UpdatedAt:      base.Add(time.Second),
		},
		{
			ID:             uuid.New(),
			Title:          "Dental X-Ray",
			Category:       "Imaging Scan",
			UploadDate:     model.NewDate(2023, 6, 5),
			FileName:       "brenda_xray.jpg",
			FamilyMemberID: util.Some(SeedMemberBrenda),
			Version:        1,
			CreatedAt:      base.Add(2 * time.Second),
			UpdatedAt:      base.Add(2 * time.Second),
		},
	}
	for _, d := range documents {
		if err := repo.CreateDocument(ctx, d); err != nil {
			return fmt.Errorf("seed document %s: %w", d.Title, err)
		}
	}

	prescriptions := []model.Prescription{
		{
			ID:                uuid.New(),
			MedicationName:    "Amoxicillin",
			Dosage:            "250mg",
			Frequency:         "Twice a day for 10 days",
			PrescribingDoctor: "Dr. Evans",
			FamilyMemberID:    SeedMemberCharlie,
			StartDate:         model.NewDate(2023, 11, 1),
			EndDate:           util.Some(model.NewDate(2023, 11, 10)),
			Notes:             "For ear infection. Take with food.",
			Adherence:         map[string]model.AdherenceStatus{},
			CreatedAt:         base,
			UpdatedAt:         base,
		},
		{
			ID:                uuid.New(),
			MedicationName:    "Lisinopril",
			Dosage:            "10mg",
			Frequency:         "Once daily",
			PrescribingDoctor: "Dr. Smith",
			FamilyMemberID:    SeedMemberAlex,
			StartDate:         model.NewDate(2022, 1, 15),
			Notes:             "For blood pressure management.",
			Adherence:         map[string]model.AdherenceStatus{},
			CreatedAt:         base.Add(time.Second),
			UpdatedAt:         base.Add(time.Second),
		},
		{
			ID:                uuid.New(),
			MedicationName:    "Metformin",
			Dosage:            "500mg",
			Frequency:         "Once daily",
			PrescribingDoctor: "Dr. Chen",
			FamilyMemberID:    SeedMemberBrenda,
			StartDate:         today.AddDays(-25),
			EndDate:           util.Some(today.AddDays(5)),
			Notes:             "For glucose control. Refill needed soon.",
			RefillsRemaining:  util.Some(1),
			Adherence:         map[string]model.AdherenceStatus{},
			CreatedAt:         base.Add(2 * time.Second),
			UpdatedAt:         base.Add(2 * time.Second),
		},
	}
	for _, rx := range prescriptions {
		if err := repo.CreatePrescription(ctx, rx); err != nil {
			return fmt.Errorf("seed prescription %s: %w", rx.MedicationName, err)
		}
	}

	contacts := []model.EmergencyContact{
		{ID: uuid.New(), Name: "Maria Garcia", Phone: "555-123-4567", Relationship: "Neighbor", CreatedAt: base, UpdatedAt: base},
		{ID: uuid.New(), Name: "David Johnson", Phone: "555-987-6543", Relationship: "Brother (Alex)", CreatedAt: base.Add(time.Second), UpdatedAt: base.Add(time.Second)},
	}
	for _, c := range contacts {
		if err := repo.CreateContact(ctx, c); err != nil {
			return fmt.Errorf("seed contact %s: %w", c.Name, err)
		}
	}

	notes := []model.MedicalNote{
		{
			ID:             uuid.New(),
			Title:          "Post-Op Instructions: Wisdom Teeth",
			Content:        "Avoid solid foods for 24 hours. Use salt water rinse. No straws.",
			Date:           model.NewDate(2022, 8, 19),
			IsCritical:     false,
			FamilyMemberID: util.Some(SeedMemberBrenda),
			CreatedAt:      base,
			UpdatedAt:      base,
		},
		{
			ID:             uuid.New(),
			Title:          "CRITICAL: Penicillin Allergy",
			Content:        "Charlie is severely allergic to Penicillin. Alternative is Erythromycin.",
			Date:           model.NewDate(2020, 3, 10),
			IsCritical:     true,
			FamilyMemberID: util.Some(SeedMemberCharlie),
			CreatedAt:      base.Add(time.Second),
			UpdatedAt:      base.Add(time.Second),
		},
	}
	for _, n := range notes {
		if err := repo.CreateNote(ctx, n); err != nil {
			return fmt.Errorf("seed note %s: %w", n.Title, err)
		}
	}

	policies := []model.InsurancePolicy{
		{
			ID:            uuid.New(),
			ProviderName:  "Blue Shield PPO",
			PolicyNumber:  "XF12345678",
			GroupNumber:   util.Some("G-98765"),
			MemberID:      SeedMemberAlex,
			EffectiveDate: model.NewDate(2021, 1, 1),
			CreatedAt:     base,
			UpdatedAt:     base,
		},
		{
			ID:            uuid.New(),
			ProviderName:  "Delta Dental",
			PolicyNumber:  "DD98765432",
			GroupNumber:   util.Some("G-98765"),
			MemberID:      SeedMemberBrenda,
			EffectiveDate: model.NewDate(2021, 1, 1),
			CreatedAt:     base.Add(time.Second),
			UpdatedAt:     base.Add(time.Second),
		},
	}
	for _, p := range policies {
		if err := repo.CreatePolicy(ctx, p); err != nil {
			return fmt.Errorf("seed policy %s: %w", p.ProviderName, err)
		}
	}

	bills := []model.Bill{
		{
			ID:              uuid.New(),
			ServiceProvider: "City General Hospital",
			ServiceDate:     model.NewDate(2023, 11, 1),
			AmountDue:       150.75,
			DueDate:         model.NewDate(2023, 11, 30),
			IsPaid:          true,
			Notes:           "Charlie's ER visit for ear infection",
			CreatedAt:       base,
			UpdatedAt:       base,
		},
		{
			ID:              uuid.New(),
			ServiceProvider: "Quest Diagnostics",
			ServiceDate:     model.NewDate(2023, 10, 22),
			AmountDue:       45.50,
			DueDate:         today.AddDays(10),
			IsPaid:          false,
			Notes:           "Alex's annual blood work",
			FamilyMemberID:  util.Some(SeedMemberAlex),
			CreatedAt:       base.Add(time.Second),
			UpdatedAt:       base.Add(time.Second),
		},
	}
	for _, b := range bills {
		if err := repo.CreateBill(ctx, b); err != nil {
			return fmt.Errorf("seed bill %s: %w", b.ServiceProvider, err)
		}
	}

	appointments := []model.Appointment{
		{
			ID:             uuid.New(),
			Date:           today.AddDays(10),
			Time:           "10:00 AM",
			Doctor:         "Dr. Evans",
			Type:           model.AppointmentCheckUp,
			FamilyMemberID: SeedMemberCharlie,
			Notes:          "Annual check-up for Charlie",
			CreatedAt:      base,
			UpdatedAt:      base,
		},
		{
			ID:             uuid.New(),
			Date:           today.AddDays(25),
			Time:           "02:30 PM",
			Doctor:         "Dr. Miller (Dentist)",
			Type:           model.AppointmentDental,
			FamilyMemberID: SeedMemberBrenda,
			Notes:          "Routine cleaning",
			CreatedAt:      base.Add(time.Second),
			UpdatedAt:      base.Add(time.Second),
		},
	}
	for _, a := range appointments {
		if err := repo.CreateAppointment(ctx, a); err != nil {
			return fmt.Errorf("seed appointment with %s: %w", a.Doctor, err)
		}
	}

	vitals := []model.VitalSign{
		{
			ID:             uuid.New(),
			FamilyMemberID: SeedMemberAlex,
			Date:           model.NewDate(2023, 10, 22),
			HeightCm:       util.Some(180.0),
			WeightKg:       util.Some(82.0),
			BloodPressure:  util.Some("122/80"),
			HeartRate:      util.Some(65),
			CreatedAt:      base,
			UpdatedAt:      base,
		},
		{
			ID:             uuid.New(),
			FamilyMemberID: SeedMemberCharlie,
			Date:           model.NewDate(2023, 9, 15),
			HeightCm:       util.Some(105.0),
			WeightKg:       util.Some(18.0),
			Notes:          "Annual checkup measurements",
			CreatedAt:      base.Add(time.Second),
			UpdatedAt:      base.Add(time.Second),
		},
	}
	for _, v := range vitals {
		if err := repo.CreateVital(ctx, v); err != nil {
			return fmt.Errorf("seed vital sign: %w", err)
		}
	}

	vaccinations := []model.VaccinationRecord{
		{
			ID:               uuid.New(),
			FamilyMemberID:   SeedMemberCharlie,
			VaccineName:      "MMR (Dose 2)",
			DateAdministered: model.NewDate(2023, 9, 15),
			CreatedAt:        base,
			UpdatedAt:        base,
		},
		{
			ID:               uuid.New(),
			FamilyMemberID:   SeedMemberAlex,
			VaccineName:      "Tetanus Booster",
			DateAdministered: model.NewDate(2021, 7, 20),
			CreatedAt:        base.Add(time.Second),
			UpdatedAt:        base.Add(time.Second),
		},
	}
	for _, v := range vaccinations {
		if err := repo.CreateVaccination(ctx, v); err != nil {
			return fmt.Errorf("seed vaccination %s: %w", v.VaccineName, err)
		}
	}

	profile := model.UserProfile{
		ID:    SeedMemberAlex,
		Name:  "Alex Johnson",
		Email: "alex.johnson@example.com",
	}
	if err := repo.UpdateProfile(ctx, profile); err != nil {
		return fmt.Errorf("seed profile: %w", err)
	}

	return nil
}
