// Package di provides dependency injection container
package di

import (
	"go.uber.org/zap"

	"github.com/adrianowead/wead/pkg/api" //nolint:depguard
	"github.com/adrianowead/wead/pkg/store"
)

// RepositoryFactory opens the repository used by commands
type RepositoryFactory interface {
	// OpenRepository binds a repository to the configured data file
	OpenRepository(config store.RepositoryConfig) (*store.Repository, error)
}

// DefaultRepositoryFactory opens file-backed repositories
type DefaultRepositoryFactory struct{}

// OpenRepository binds a repository to config.FilePath
func (DefaultRepositoryFactory) OpenRepository(config store.RepositoryConfig) (*store.Repository, error) {
	return store.NewRepository(config)
}

// Container holds all the dependencies for the application
type Container struct {
	repositoryFactory RepositoryFactory
	serverFactory     api.ServerFactory
	logger            *zap.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		repositoryFactory: DefaultRepositoryFactory{},
		serverFactory:     api.NewServerFactory(),
		logger:            zap.NewNop(),
	}
}

// GetRepositoryFactory returns the repository factory
func (c *Container) GetRepositoryFactory() RepositoryFactory {
	return c.repositoryFactory
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// GetLogger returns the application logger
func (c *Container) GetLogger() *zap.Logger {
	return c.logger
}

// SetRepositoryFactory allows overriding the repository factory (for testing)
func (c *Container) SetRepositoryFactory(factory RepositoryFactory) {
	c.repositoryFactory = factory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// SetLogger replaces the application logger
func (c *Container) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}
