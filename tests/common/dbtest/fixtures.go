//go:build unit || e2e

package dbtest

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedReferenceData inserts the advisors, vehicles and customers that
// reservation tests book against.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		`INSERT INTO service_advisors (advisor_id, first_name, last_name, email, phone) VALUES
			('SA-001', 'Maria', 'Garcia', 'maria.garcia@dealership.example.com', '555-0201'),
			('SA-002', 'James', 'Lee', 'james.lee@dealership.example.com', NULL)
		 ON CONFLICT (advisor_id) DO NOTHING`,
		`INSERT INTO vehicles (vehicle_id, make, model, year, license_plate, current_odometer, current_fuel_level, status) VALUES
			('LV-001', 'Toyota', 'Camry', 2023, 'LOANER1', 12000, 'full', 'available'),
			('LV-002', 'Honda', 'CR-V', 2024, 'LOANER2', 4300, '3/4', 'available'),
			('LV-003', 'Ford', 'Escape', 2022, 'LOANER3', 28950, 'half', 'maintenance')
		 ON CONFLICT (vehicle_id) DO NOTHING`,
		`INSERT INTO customers (customer_id, first_name, last_name, date_of_birth, drivers_license_number, insurance_provider, phone, email) VALUES
			('CUST-1001', 'John', 'Smith', '1985-03-14', 'D1234567', 'State Farm', '555-0100', 'john.smith@example.com'),
			('CUST-1002', 'Alice', 'Nguyen', '1992-11-02', 'D7654321', 'Geico', '555-0101', 'alice.nguyen@example.com')
		 ON CONFLICT (customer_id) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ResetDB truncates mutable state and reseeds reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `TRUNCATE reservations, inspections, eligibility_verification, customers, vehicles, service_advisors`)
	if err != nil {
		return err
	}
	return SeedReferenceData(pool)
}
