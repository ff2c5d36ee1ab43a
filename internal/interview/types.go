package interview

import "fmt"

// Speaker identifies who produced a conversation entry.
type Speaker string

const (
	SpeakerAI        Speaker = "AI"
	SpeakerCandidate Speaker = "Candidate"
)

// Entry is one line of the interview transcript. Entries are append-only;
// slice order is transcript order.
type Entry struct {
	Speaker   Speaker `json:"speaker"`
	Text      string  `json:"text"`
	Timestamp int64   `json:"timestamp"` // ms since epoch
}

// Role is the position the interview is conducted for.
type Role string

const (
	RoleFrontend  Role = "Frontend Developer"
	RoleBackend   Role = "Backend Developer"
	RoleFullStack Role = "Full Stack Developer"
	RoleDevOps    Role = "DevOps Engineer"
	RoleMobile    Role = "Mobile Developer"
	RoleData      Role = "Data Engineer"
)

// Roles lists every selectable role.
var Roles = []Role{RoleFrontend, RoleBackend, RoleFullStack, RoleDevOps, RoleMobile, RoleData}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Difficulty is the seniority level the questions are pitched at.
type Difficulty string

const (
	DifficultyJunior Difficulty = "Junior"
	DifficultyMid    Difficulty = "Mid Level"
	DifficultySenior Difficulty = "Senior"
)

// Difficulties lists every selectable difficulty.
var Difficulties = []Difficulty{DifficultyJunior, DifficultyMid, DifficultySenior}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// Duration bounds in minutes.
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 120
)

// Config is the interview setup. It is fixed at session start and immutable
// afterwards.
type Config struct {
	Role       Role       `json:"role"`
	Difficulty Difficulty `json:"difficulty"`
	Duration   int        `json:"duration"` // minutes
}

// DefaultConfig returns the configuration used when the caller leaves every
// field unset.
func DefaultConfig() Config {
	return Config{
		Role:       RoleFullStack,
		Difficulty: DifficultyMid,
		Duration:   30,
	}
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.Role == "" {
		c.Role = def.Role
	}
	if c.Difficulty == "" {
		c.Difficulty = def.Difficulty
	}
	if c.Duration == 0 {
		c.Duration = def.Duration
	}
}

// Validate checks that every set field is a legal value. Call after
// ApplyDefaults; zero values are rejected here.
func (c Config) Validate() error {
	if !c.Role.Valid() {
		return fmt.Errorf("unknown role %q", c.Role)
	}
	if !c.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", c.Difficulty)
	}
	if c.Duration < MinDurationMinutes || c.Duration > MaxDurationMinutes {
		return fmt.Errorf("duration %d out of range [%d,%d]", c.Duration, MinDurationMinutes, MaxDurationMinutes)
	}
	return nil
}

// Status is the lifecycle state of a session.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusPaused     Status = "paused"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)
