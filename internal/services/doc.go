// Package services implements the business logic layer of the SJRPulse
// application. It provides a clean separation between HTTP handlers and the
// data processing pipeline, ensuring that business rules are centralized
// and testable.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//	4. Domain-focused methods that encapsulate business rules
//
// # Available Services
//
// The package provides these core services:
//
//	- DatasetService: Loads and caches the normalized journal dataset
//	- AnalyticsService: Computes area rankings and quartile groupings
//	- HealthService: Provides system health checks
//
// # Error Handling
//
// Services return domain-specific errors that handlers can transform:
//
//	- Not found errors for missing years or datasets
//	- Validation errors for invalid input
//	- Internal errors for unexpected failures
package services
