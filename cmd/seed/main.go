package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/lulabtechnology/saas-clinicas/internal/database"
	"github.com/lulabtechnology/saas-clinicas/internal/domain"
)

// Seeds a demo clinic for local development. Wipes existing data first, so
// never point this at anything but a dev database.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "clinicas.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	log.Println("Cleaning old data...")
	// child tables first to keep foreign keys happy
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM availability_rules")
	db.Exec("DELETE FROM staff_users")
	db.Exec("DELETE FROM professionals")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM tenants")

	tenant := domain.Tenant{
		Slug:     "clinica-demo",
		Name:     "Clínica Demo",
		Timezone: "America/Panama",
		IsActive: true,
	}
	if err := db.Create(&tenant).Error; err != nil {
		log.Fatalf("seed tenant: %v", err)
	}

	services := []domain.Service{
		{TenantID: tenant.ID, Name: "Consulta general", DurationMinutes: 30, PriceCents: 2500, IsActive: true},
		{TenantID: tenant.ID, Name: "Limpieza dental", DurationMinutes: 45, PriceCents: 4000, IsActive: true},
		{TenantID: tenant.ID, Name: "Evaluación completa", DurationMinutes: 60, PriceCents: 6000, IsActive: true},
	}
	if err := db.Create(&services).Error; err != nil {
		log.Fatalf("seed services: %v", err)
	}

	professionals := []domain.Professional{
		{TenantID: tenant.ID, FullName: "Dra. María Gómez", Specialty: "Odontología", IsActive: true},
		{TenantID: tenant.ID, FullName: "Dr. Carlos Ruiz", Specialty: "Medicina general", IsActive: true},
	}
	if err := db.Create(&professionals).Error; err != nil {
		log.Fatalf("seed professionals: %v", err)
	}

	// Monday through Friday, morning and afternoon blocks
	var rules []domain.AvailabilityRule
	for _, p := range professionals {
		for weekday := 1; weekday <= 5; weekday++ {
			rules = append(rules,
				domain.AvailabilityRule{
					TenantID:        tenant.ID,
					ProfessionalID:  p.ID,
					Weekday:         weekday,
					StartTime:       "09:00",
					EndTime:         "12:00",
					SlotSizeMinutes: 30,
				},
				domain.AvailabilityRule{
					TenantID:        tenant.ID,
					ProfessionalID:  p.ID,
					Weekday:         weekday,
					StartTime:       "14:00",
					EndTime:         "18:00",
					SlotSizeMinutes: 30,
				},
			)
		}
	}
	if err := db.Create(&rules).Error; err != nil {
		log.Fatalf("seed availability rules: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	admin := domain.StaffUser{
		TenantID:     tenant.ID,
		Email:        "admin@clinica-demo.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("seed staff user: %v", err)
	}

	log.Printf("Seeded tenant %q with %d services, %d professionals, %d rules",
		tenant.Slug, len(services), len(professionals), len(rules))
	log.Println("Staff login: admin@clinica-demo.com / admin123")
}
