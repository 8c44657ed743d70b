package database

// DataStore defines the unified interface for all data operations needed by the services.
// This interface is composed of smaller, domain-specific interfaces following the
// Interface Segregation Principle. Consumers can depend on smaller interfaces
// (e.g., TaskRepository, UserRepository) for better testability and clearer dependencies.
// Both the SQLite Repository and the MongoDB store implement it.
type DataStore interface {
	UserRepository
	LabelRepository
	TaskRepository
}
