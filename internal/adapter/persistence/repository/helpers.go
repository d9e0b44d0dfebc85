package repository

import "os"

// getenvDefault resolves the table name overrides (FORMULAS_TABLE,
// ESTIMATES_TABLE, COMPUTATION_INSTANCES_TABLE) used by the repositories.
func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
