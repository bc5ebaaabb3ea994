// Package constants defines global constants used throughout the recipes backend.
// It includes version information, table defaults and configuration keys.
package constants

var version = "0.0.0-development" // Updated by CI/CD pipeline at build time

// GetVersion returns the current version of the backend.
func GetVersion() *string {
	return &version
}

// ProjectName is the name of the application
const ProjectName = "recipes"

// CLIName is the name of the admin CLI binary
const CLIName = "recipectl"

// EnvPrefix is the prefix used for all environment variables read by the services
const EnvPrefix = "RECIPES"

// Environment represents the execution environment (e.g., CLI, Lambda).
type Environment string

// Environment types for logger configuration
const (
	Development Environment = "development"
	Production  Environment = "production"
	CLI         Environment = "cli"
)

// DefaultRecipesIndex is the global secondary index keyed by (userId, recipeId).
const DefaultRecipesIndex = "recipesGlobalSecondaryIndex"

// CounterRecordID is the primary key of the single counter record used to mint recipe IDs.
const CounterRecordID = 1

// DefaultAllowedOrigin is the CORS origin used when none is configured.
const DefaultAllowedOrigin = "*"
