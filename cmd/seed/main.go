// cmd/seed/main.go
//
// Seeds a fresh database with an admin account and sample maintenance data.
// Running it also applies any pending migrations.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/serviceops/maintdesk/internal/models"
	"github.com/serviceops/maintdesk/internal/store"
	"github.com/serviceops/maintdesk/pkg/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbPath := getEnv("DB_PATH", "maintdesk.db")
	st, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	ctx := context.Background()

	adminID, err := seedAdmin(ctx, st)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	if err := seedTasks(ctx, st, adminID); err != nil {
		log.Fatalf("Failed to seed tasks: %v", err)
	}

	if err := seedKnowledge(ctx, st); err != nil {
		log.Fatalf("Failed to seed knowledge base: %v", err)
	}

	log.Printf("Database %s seeded", dbPath)
}

func seedAdmin(ctx context.Context, st store.Store) (int64, error) {
	email := getEnv("SEED_ADMIN_EMAIL", "admin@maintdesk.local")

	if existing, err := st.GetUserByEmail(ctx, email); err == nil {
		log.Printf("Admin user %s already exists", email)
		return existing.ID, nil
	}

	password := getEnv("SEED_ADMIN_PASSWORD", "ChangeMe123")
	hash, err := auth.NewPasswordManager().HashPassword(password)
	if err != nil {
		return 0, err
	}

	user, err := st.CreateUser(ctx, email, hash, "System Administrator", "Service")
	if err != nil {
		return 0, err
	}
	log.Printf("Admin user %s created", email)
	return user.ID, nil
}

func seedTasks(ctx context.Context, st store.Store, adminID int64) error {
	today := time.Now().UTC()
	due := func(days int) string {
		return today.AddDate(0, 0, days).Format(models.DateLayout)
	}
	hours := func(h int) *int { return &h }

	tasks := []store.TaskInput{
		{
			Title:          "Monthly Generator Inspection",
			Description:    "Perform monthly inspection of backup generators including oil levels, battery condition, and operational testing.",
			DueDate:        due(3),
			Priority:       models.PriorityHigh,
			EquipmentID:    "GEN-001",
			Location:       "Building A - Basement",
			EstimatedHours: hours(4),
		},
		{
			Title:          "HVAC Filter Replacement",
			Description:    "Replace air filters in all HVAC units across the facility. Check for any unusual wear or damage.",
			DueDate:        due(10),
			Priority:       models.PriorityMedium,
			EquipmentID:    "HVAC-MAIN",
			Location:       "Rooftop Units 1-6",
			EstimatedHours: hours(6),
		},
		{
			Title:          "Fire Safety System Check",
			Description:    "Comprehensive inspection of fire detection systems, sprinklers, and emergency exits.",
			DueDate:        due(20),
			Priority:       models.PriorityHigh,
			EquipmentID:    "FIRE-SYS",
			Location:       "All Buildings",
			EstimatedHours: hours(8),
		},
		{
			Title:          "Elevator Maintenance",
			Description:    "Quarterly maintenance of all elevator systems including safety checks and mechanical inspections.",
			DueDate:        due(30),
			Priority:       models.PriorityMedium,
			EquipmentID:    "ELEV-001,ELEV-002",
			Location:       "Buildings A & B",
			EstimatedHours: hours(12),
		},
		{
			Title:          "UPS Battery Replacement",
			Description:    "Replace aging UPS batteries in data center and critical systems.",
			DueDate:        due(45),
			Priority:       models.PriorityHigh,
			EquipmentID:    "UPS-DC-001",
			Location:       "Data Center",
			EstimatedHours: hours(3),
		},
	}

	for _, input := range tasks {
		input.AssignedTo = &adminID
		input.CreatedBy = &adminID
		if _, err := st.CreateTask(ctx, input); err != nil {
			return err
		}
	}
	log.Printf("Seeded %d tasks", len(tasks))
	return nil
}

func seedKnowledge(ctx context.Context, st store.Store) error {
	entries := []store.KnowledgeInput{
		{
			Category:        "Generator Maintenance",
			Title:           "Generator Oil Change Procedure",
			Content:         "Step-by-step procedure for changing generator oil: 1. Turn off generator and wait for cool down. 2. Drain old oil completely. 3. Replace oil filter. 4. Add new oil as per manufacturer specifications. 5. Check oil level and run test cycle.",
			Tags:            "generator,oil,maintenance,safety",
			EquipmentType:   "Generator",
			DifficultyLevel: models.DifficultyMedium,
		},
		{
			Category:        "HVAC Maintenance",
			Title:           "Air Filter Selection Guide",
			Content:         "Proper air filter selection is crucial for HVAC efficiency. MERV ratings: 6-8 for residential, 9-12 for commercial, 13-16 for hospitals. Replace every 1-3 months depending on usage and environment. Always check airflow direction before installation.",
			Tags:            "hvac,filters,merv,airflow",
			EquipmentType:   "HVAC",
			DifficultyLevel: models.DifficultyEasy,
		},
		{
			Category:        "Fire Safety",
			Title:           "Fire Sprinkler System Testing",
			Content:         "Monthly visual inspection: Check for corrosion, damage, or obstructions. Annual testing: Test water flow, pressure, and alarm systems. Always coordinate with building occupants and security before testing. Document all findings.",
			Tags:            "fire,sprinkler,safety,testing",
			EquipmentType:   "Fire Safety",
			DifficultyLevel: models.DifficultyHard,
		},
		{
			Category:        "Elevator Maintenance",
			Title:           "Elevator Safety Checklist",
			Content:         "Daily checks: Door operation, emergency phone, lighting. Weekly: Lubrication points, cable inspection. Monthly: Emergency brake test, load testing. Annual: Full safety inspection by certified technician. Report any unusual noises immediately.",
			Tags:            "elevator,safety,inspection,certification",
			EquipmentType:   "Elevator",
			DifficultyLevel: models.DifficultyMedium,
		},
		{
			Category:        "Electrical Systems",
			Title:           "UPS Battery Maintenance",
			Content:         "Battery maintenance schedule: Monthly - voltage checks and visual inspection. Quarterly - load testing and temperature monitoring. Annually - full capacity test and replacement planning. Keep battery room well-ventilated and at optimal temperature (20-25C).",
			Tags:            "ups,battery,electrical,power",
			EquipmentType:   "UPS",
			DifficultyLevel: models.DifficultyMedium,
		},
	}

	for _, input := range entries {
		if _, err := st.CreateKnowledgeEntry(ctx, input); err != nil {
			return err
		}
	}
	log.Printf("Seeded %d knowledge base entries", len(entries))
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
