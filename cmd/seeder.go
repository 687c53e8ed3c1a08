package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"time_entries", "campaign_tasks", "campaigns", "clients", "user_permissions", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		users := []struct {
			Email       string
			FirstName   string
			LastName    string
			Permissions []string
		}{
			{"ana@apontae.com.br", "Ana", "Souza", nil},
			{"bruno@apontae.com.br", "Bruno", "Lima", nil},
			{"marina@apontae.com.br", "Marina", "Costa", []string{"approve_time_entries", "manager"}},
			{"admin@apontae.com.br", "Equipe", "Admin", []string{"approve_time_entries", "manager", "admin"}},
		}

		for _, u := range users {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec(
					"INSERT INTO users (email, password_hash, first_name, last_name, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
					u.Email, string(hash), u.FirstName, u.LastName,
				).Error; err != nil {
					log.Fatalf("failed to insert user %s: %v", u.Email, err)
				}
				fmt.Println("Seeded user:", u.Email)
			}

			var userID int64
			if err := db.Raw("SELECT id FROM users WHERE email = ?", u.Email).Row().Scan(&userID); err != nil {
				log.Fatalf("failed to lookup user id for %s: %v", u.Email, err)
			}

			for _, perm := range u.Permissions {
				var has int
				if err := db.Raw("SELECT 1 FROM user_permissions WHERE user_id = ? AND name = ?", userID, perm).Row().Scan(&has); err == nil {
					continue
				}
				if err := db.Exec(
					"INSERT INTO user_permissions (user_id, name, created_at) VALUES (?, ?, now())",
					userID, perm,
				).Error; err != nil {
					log.Fatalf("failed to grant permission %s to %s: %v", perm, u.Email, err)
				}
			}
		}

		clients := []struct {
			CompanyName string
			TradeName   string
			Campaigns   map[string][]string
		}{
			{
				CompanyName: "Acme Publicidade Ltda",
				TradeName:   "Acme",
				Campaigns: map[string][]string{
					"Lançamento Verão": {"Planejamento de mídia", "Produção de peças", "Relatório semanal"},
					"Black Friday":     {"Gestão de tráfego", "Criação de banners"},
				},
			},
			{
				CompanyName: "Mercado Bonfim S.A.",
				TradeName:   "Bonfim",
				Campaigns: map[string][]string{
					"Institucional 2026": {"Redes sociais", "Atendimento ao cliente"},
				},
			},
		}

		for _, c := range clients {
			var clientID int64
			if err := db.Raw("SELECT id FROM clients WHERE company_name = ?", c.CompanyName).Row().Scan(&clientID); err != nil {
				if err := db.Exec(
					"INSERT INTO clients (company_name, trade_name, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())",
					c.CompanyName, c.TradeName,
				).Error; err != nil {
					log.Fatalf("failed to insert client %s: %v", c.CompanyName, err)
				}
				if err := db.Raw("SELECT id FROM clients WHERE company_name = ?", c.CompanyName).Row().Scan(&clientID); err != nil {
					log.Fatalf("client not found after insert %s: %v", c.CompanyName, err)
				}
				fmt.Println("Seeded client:", c.TradeName)
			}

			for campaignName, tasks := range c.Campaigns {
				var campaignID int64
				if err := db.Raw("SELECT id FROM campaigns WHERE client_id = ? AND name = ?", clientID, campaignName).Row().Scan(&campaignID); err != nil {
					if err := db.Exec(
						"INSERT INTO campaigns (client_id, name, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())",
						clientID, campaignName,
					).Error; err != nil {
						log.Fatalf("failed to insert campaign %s: %v", campaignName, err)
					}
					if err := db.Raw("SELECT id FROM campaigns WHERE client_id = ? AND name = ?", clientID, campaignName).Row().Scan(&campaignID); err != nil {
						log.Fatalf("campaign not found after insert %s: %v", campaignName, err)
					}
				}

				for _, task := range tasks {
					var has int
					if err := db.Raw("SELECT 1 FROM campaign_tasks WHERE campaign_id = ? AND description = ?", campaignID, task).Row().Scan(&has); err == nil {
						continue
					}
					if err := db.Exec(
						"INSERT INTO campaign_tasks (campaign_id, description, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())",
						campaignID, task,
					).Error; err != nil {
						log.Fatalf("failed to insert task %s: %v", task, err)
					}
				}
			}
		}

		fmt.Println("Catalog seeded successfully")
	},
}
