package trainer

// Trainer is a gym trainer as served by the gym API. The console lists
// trainers read-only; their records are managed elsewhere.
type Trainer struct {
	ID             int64
	Name           string
	Specialization string
	ContactNumber  string
}
