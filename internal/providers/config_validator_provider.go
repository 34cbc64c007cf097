package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"hnblocks/internal/structures"
)

// MinCacheSizeMB keeps the freecache per-entry limit (size/1024) above a
// compressed page of stories.
const MinCacheSizeMB = 16

type CnfValidator struct {
	conf *structures.Config
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return v.Errors
	}
	if c.conf.Cache.Enabled && c.conf.Cache.Size < MinCacheSizeMB {
		return fmt.Errorf("cache.size must be at least %d MB when the cache is enabled, got %d", MinCacheSizeMB, c.conf.Cache.Size)
	}
	return nil
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}
