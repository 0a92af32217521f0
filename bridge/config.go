package bridge

import "fmt"

// ReuseScope selects how long a cached instance is handed back by Create.
type ReuseScope string

const (
	// ReuseScopeContext caches an instance until the next Destroy.
	ReuseScopeContext ReuseScope = "context"
	// ReuseScopeProcess caches an instance for the life of the Bridge,
	// re-attaching it to the context after each Destroy.
	ReuseScopeProcess ReuseScope = "process"
)

// validReuseScopes maps accepted scope strings; empty defaults to context.
var validReuseScopes = map[ReuseScope]bool{
	"":                true,
	ReuseScopeContext: true,
	ReuseScopeProcess: true,
}

// Config controls instance caching. The zero value constructs a new module
// on every Create.
type Config struct {
	ReuseInstance bool       `mapstructure:"reuse_instance" yaml:"reuse_instance"`
	ReuseScope    ReuseScope `mapstructure:"reuse_scope" yaml:"reuse_scope"`
}

// Validate rejects unknown reuse scopes.
func (c Config) Validate() error {
	if !validReuseScopes[c.ReuseScope] {
		return fmt.Errorf("unknown reuse scope %q (want %q or %q)", c.ReuseScope, ReuseScopeContext, ReuseScopeProcess)
	}
	return nil
}

func (c Config) scope() ReuseScope {
	if c.ReuseScope == "" {
		return ReuseScopeContext
	}
	return c.ReuseScope
}
