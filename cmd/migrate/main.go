package main

import (
	"log"

	"edumate-be/internal/config"
	"edumate-be/internal/model"
	"edumate-be/pkg/database"

	"gorm.io/gorm"
)

type step struct {
	name     string
	required bool
	run      func(db *gorm.DB) error
}

var steps = []step{
	{
		name: "pgcrypto extension",
		run: func(db *gorm.DB) error {
			// gen_random_uuid() lives in pgcrypto on Postgres < 13.
			return db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error
		},
	},
	{
		name:     "users and learner_state tables",
		required: true,
		run: func(db *gorm.DB) error {
			return db.AutoMigrate(&model.User{}, &model.LearnerStateEntry{})
		},
	},
	{
		name: "learner_state updated_at trigger",
		run: func(db *gorm.DB) error {
			return db.Transaction(func(tx *gorm.DB) error {
				for _, sql := range []string{
					`CREATE OR REPLACE FUNCTION touch_updated_at() RETURNS trigger LANGUAGE plpgsql AS $$
					BEGIN
					  NEW.updated_at = now();
					  RETURN NEW;
					END; $$`,
					`DROP TRIGGER IF EXISTS learner_state_touch ON learner_state`,
					`CREATE TRIGGER learner_state_touch BEFORE UPDATE ON learner_state
					 FOR EACH ROW EXECUTE FUNCTION touch_updated_at()`,
				} {
					if err := tx.Exec(sql).Error; err != nil {
						return err
					}
				}
				return nil
			})
		},
	},
}

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	for i, s := range steps {
		log.Printf("Step %d: %s...", i+1, s.name)
		if err := s.run(db); err != nil {
			if s.required {
				log.Fatalf("Error: %s failed: %v", s.name, err)
			}
			log.Printf("Warn: %s failed: %v. Continuing...", s.name, err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
