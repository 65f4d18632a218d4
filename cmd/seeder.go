package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the role catalog and an admin account",
	Long:  `Seed the role catalog and a default administrator account for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"user_role_assignment", "user_role", "users", "site", "person", "company", "org_time_zone"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		roles := []struct {
			Name string
			Desc string
		}{
			{"ADMIN", "full administrator"},
			{"HR_MANAGER", "Can manage people and accounts"},
			{"EMPLOYEE", "Default role for directory members"},
		}

		roleIDs := make(map[string]uuid.UUID)
		for _, r := range roles {
			var id uuid.UUID
			row := db.Raw("SELECT id FROM user_role WHERE name = ?", r.Name).Row()
			if err := row.Scan(&id); err == nil {
				roleIDs[r.Name] = id
				continue
			}
			id = uuid.New()
			if err := db.Exec("INSERT INTO user_role (id, name, description) VALUES (?, ?, ?)", id, r.Name, r.Desc).Error; err != nil {
				log.Fatalf("failed to insert role %s: %v", r.Name, err)
			}
			roleIDs[r.Name] = id
			fmt.Println("Seeded role:", r.Name)
		}

		adminUsername := "admin"
		var adminID uuid.UUID
		row := db.Raw("SELECT id FROM users WHERE username = ? AND deleted_at IS NULL", adminUsername).Row()
		if err := row.Scan(&adminID); err != nil {
			hash, _ := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
			adminID = uuid.New()
			if err := db.Exec(`INSERT INTO users
				(id, username, password_hash, first_name, last_name, enabled, account_locked, account_expired, credentials_expired, is_active, created_at, created_by, version)
				VALUES (?, ?, ?, 'System', 'Administrator', true, false, false, false, true, now(), ?, 0)`,
				adminID, adminUsername, string(hash), uuid.Nil).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminUsername)
		} else {
			fmt.Println("admin user already exists; will ensure role assignment")
		}

		zones := []struct {
			ZoneID        string
			CountryCode   string
			DisplayName   string
			OffsetMinutes int
			Abbreviation  string
			Region        string
			ObservesDST   bool
			DisplayOrder  int
		}{
			{"UTC", "", "Coordinated Universal Time", 0, "UTC", "Etc", false, 1},
			{"Europe/London", "GB", "Greenwich Mean Time", 0, "GMT", "Europe", true, 2},
			{"America/New_York", "US", "Eastern Time", -300, "EST", "America", true, 3},
			{"Asia/Kolkata", "IN", "India Standard Time", 330, "IST", "Asia", false, 4},
			{"Asia/Singapore", "SG", "Singapore Time", 480, "SGT", "Asia", false, 5},
			{"Australia/Sydney", "AU", "Australian Eastern Time", 600, "AEST", "Australia", true, 6},
		}

		for _, z := range zones {
			var one int
			row := db.Raw("SELECT 1 FROM org_time_zone WHERE zone_id = ?", z.ZoneID).Row()
			if err := row.Scan(&one); err == nil {
				continue
			}
			if err := db.Exec(`INSERT INTO org_time_zone
				(zone_id, country_code, display_name, utc_offset_minutes, abbreviation, region, observes_dst, display_order, is_active)
				VALUES (?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?, true)`,
				z.ZoneID, z.CountryCode, z.DisplayName, z.OffsetMinutes, z.Abbreviation, z.Region, z.ObservesDST, z.DisplayOrder).Error; err != nil {
				log.Fatalf("failed to insert time zone %s: %v", z.ZoneID, err)
			}
			fmt.Println("Seeded time zone:", z.ZoneID)
		}

		var one int
		row = db.Raw("SELECT 1 FROM user_role_assignment WHERE user_id = ? AND role_id = ?", adminID, roleIDs["ADMIN"]).Row()
		if err := row.Scan(&one); err != nil {
			if err := db.Exec(`INSERT INTO user_role_assignment
				(id, user_id, role_id, assigned_at, expires_at, assigned_by)
				VALUES (?, ?, ?, now(), NULL, 'seeder')`,
				uuid.New(), adminID, roleIDs["ADMIN"]).Error; err != nil {
				log.Fatalf("failed to assign ADMIN role: %v", err)
			}
			fmt.Println("Assigned ADMIN role to admin user")
		}
	},
}
