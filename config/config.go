// Package config holds the shared configuration tree every service loads at
// boot. Values come from config files and environment variables through the
// configuration loader; the getters fill in defaults so a service can start
// from an empty file during development.
package config

import (
	"time"
)

// BaseConfig is the root of the configuration tree.
type BaseConfig struct {
	Name        string       `json:"name" yaml:"name"`
	Env         string       `json:"env" yaml:"env"`
	Auth        *Auth        `json:"auth" yaml:"auth"`
	Server      *Server      `json:"server" yaml:"server"`
	Persistence *Persistence `json:"persistence" yaml:"persistence"`
}

// Validate satisfies the configuration loader contract.
func (c *BaseConfig) Validate() error {
	return nil
}

// GetName returns the service name.
func (c *BaseConfig) GetName() string {
	if c.Name == "" {
		return "storefront"
	}
	return c.Name
}

// GetEnv returns the deployment environment name.
func (c *BaseConfig) GetEnv() string {
	if c.Env == "" {
		return "development"
	}
	return c.Env
}

// GetAuth returns the auth section, never nil.
func (c *BaseConfig) GetAuth() *Auth {
	if c.Auth == nil {
		c.Auth = &Auth{}
	}
	return c.Auth
}

// GetServer returns the server section, never nil.
func (c *BaseConfig) GetServer() *Server {
	if c.Server == nil {
		c.Server = &Server{}
	}
	return c.Server
}

// GetPersistence returns the persistence section, never nil.
func (c *BaseConfig) GetPersistence() *Persistence {
	if c.Persistence == nil {
		c.Persistence = &Persistence{}
	}
	return c.Persistence
}

// Auth configures token minting and the request guard. It satisfies the
// storefront auth Config interface.
type Auth struct {
	SigningKey      string   `json:"signing_key" yaml:"signing_key"`
	SigningMethod   string   `json:"signing_method" yaml:"signing_method"`
	ContextKey      string   `json:"context_key" yaml:"context_key"`
	TokenExpiration int      `json:"token_expiration" yaml:"token_expiration"`
	TokenLookup     string   `json:"token_lookup" yaml:"token_lookup"`
	AuthScheme      string   `json:"auth_scheme" yaml:"auth_scheme"`
	Issuer          string   `json:"issuer" yaml:"issuer"`
	Audience        []string `json:"audience" yaml:"audience"`
}

func (a *Auth) GetSigningKey() string {
	return a.SigningKey
}

func (a *Auth) GetSigningMethod() string {
	if a.SigningMethod == "" {
		return "HS256"
	}
	return a.SigningMethod
}

func (a *Auth) GetContextKey() string {
	if a.ContextKey == "" {
		return "user"
	}
	return a.ContextKey
}

// GetTokenExpiration is the token validity window in minutes.
func (a *Auth) GetTokenExpiration() int {
	if a.TokenExpiration == 0 {
		return 7
	}
	return a.TokenExpiration
}

func (a *Auth) GetTokenLookup() string {
	if a.TokenLookup == "" {
		return "header:Authorization"
	}
	return a.TokenLookup
}

func (a *Auth) GetAuthScheme() string {
	if a.AuthScheme == "" {
		return "Bearer"
	}
	return a.AuthScheme
}

func (a *Auth) GetIssuer() string {
	return a.Issuer
}

func (a *Auth) GetAudience() []string {
	return a.Audience
}

// Server configures the HTTP listener.
type Server struct {
	Addr string `json:"addr" yaml:"addr"`
}

func (s *Server) GetAddr() string {
	if s.Addr == "" {
		return ":8080"
	}
	return s.Addr
}

// Persistence configures the database connection.
type Persistence struct {
	Driver                string `json:"driver" yaml:"driver"`
	Server                string `json:"server" yaml:"server"`
	DSN                   string `json:"dsn" yaml:"dsn"`
	Debug                 bool   `json:"debug" yaml:"debug"`
	OtelIdentifier        string `json:"otel_identifier" yaml:"otel_identifier"`
	PingTimeoutExpression string `json:"ping_timeout" yaml:"ping_timeout"`
}

func (p *Persistence) GetDriver() string {
	if p.Driver == "" {
		return "sqlite"
	}
	return p.Driver
}

func (p *Persistence) GetDSN() string {
	if p.DSN == "" {
		return "file::memory:?cache=shared"
	}
	return p.DSN
}

func (p *Persistence) GetServer() string {
	return p.Server
}

func (p *Persistence) GetDebug() bool {
	return p.Debug
}

func (p *Persistence) GetOtelIdentifier() string {
	if p.OtelIdentifier == "" {
		return "storefront"
	}
	return p.OtelIdentifier
}

func (p *Persistence) GetPingTimeout() time.Duration {
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		return 5 * time.Second
	}
	return dur
}
