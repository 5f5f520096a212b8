package api

import (
	"time"

	"github.com/adrianowead/wead/pkg/person"
	"github.com/adrianowead/wead/pkg/store"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PersonRequest is the body accepted by create and update.
// On update, empty fields keep their stored value.
type PersonRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CountResponse is returned by the count endpoint
type CountResponse struct {
	Count int `json:"count"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port                   int
	Bind                   string
	BenchmarkIterations    int64         // Default for /benchmark without ?iterations
	BenchmarkWorkers       int           // Default for parallel runs, 0 = GOMAXPROCS
	BenchmarkMaxIterations int64         // Upper bound accepted by /benchmark
	StatsInterval          time.Duration // Period of the stats gauge refresh, 0 = 30s
	ShutdownTimeout        time.Duration // Grace period for in-flight requests, 0 = 10s
}

// IPersonStore defines the repository operations served over HTTP
type IPersonStore interface {
	Create(p *person.Person) (int64, error)
	FindByID(id int64) (*person.Person, bool, error)
	ListAll() ([]*person.Person, error)
	Update(p *person.Person) error
	Delete(id int64) error
	SearchByName(substr string) ([]*person.Person, error)
	Count() (int, error)
	ClearAll() error

	// Diagnostics
	Stats() (*store.Stats, error)
}
