package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

const (
	PatientsTable = "patients"
	DoctorsTable  = "doctors"
	ReportsTable  = "medical_reports"
)

// Table returns the schema-qualified, quoted name of a clinic relation.
func Table(schema, name string) string {
	return pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(name)
}

// schemaStatements is the DDL for a clinic schema, in dependency order.
func schemaStatements(schema string) []string {
	patients := Table(schema, PatientsTable)
	doctors := Table(schema, DoctorsTable)
	reports := Table(schema, ReportsTable)

	return []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, pq.QuoteIdentifier(schema)),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL CHECK (name <> ''),
			phone_number TEXT,
			age INTEGER CHECK (age >= 0),
			gender TEXT
		)`, patients),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL CHECK (name <> ''),
			specialty TEXT NOT NULL CHECK (specialty <> '')
		)`, doctors),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			patient_id BIGINT NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
			doctor_id BIGINT REFERENCES %s (id) ON DELETE SET NULL,
			report_content TEXT NOT NULL
		)`, reports, patients, doctors),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS medical_reports_patient_id_idx ON %s (patient_id)`, reports),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS doctors_specialty_idx ON %s (specialty)`, doctors),
	}
}

// Provision ensures the schema and its three relations exist. Running it
// again on a provisioned schema changes nothing.
func Provision(ctx context.Context, db *sql.DB, schema string) error {
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, stmt := range schemaStatements(schema) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return Classify(fmt.Sprintf("provision schema %s", schema), err)
			}
		}
		return nil
	})
}

// Drop removes a provisioned schema and all of its data.
func Drop(ctx context.Context, db *sql.DB, schema string) error {
	query := fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", pq.QuoteIdentifier(schema))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return Classify(fmt.Sprintf("drop schema %s", schema), err)
	}
	return nil
}
