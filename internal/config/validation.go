package config

import (
	"github.com/makeshared/sitewinder/internal/foundation/errors"
)

// Validate checks the settings that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Build.Workers < 1 {
		return errors.ValidationError("build.workers must be at least 1").
			WithContext("workers", c.Build.Workers).
			Build()
	}
	if c.Site.PageExtension == c.Site.TagExtension {
		return errors.ValidationError("page and tag templates need different extensions").
			WithContext("extension", c.Site.PageExtension).
			Build()
	}
	if c.Site.OutputExtension == c.Site.PageExtension || c.Site.OutputExtension == c.Site.TagExtension {
		return errors.ValidationError("output extension would overwrite templates").
			WithContext("extension", c.Site.OutputExtension).
			Build()
	}
	if c.Build.FailOnBrokenLinks && !c.Build.VerifyLinks {
		return errors.ValidationError("build.fail_on_broken_links requires build.verify_links").Build()
	}
	return nil
}

func wrapDomain(err error, domain string) error {
	return errors.WrapError(err, errors.CategoryConfig, "invalid configuration").
		WithContext("domain", domain).
		Build()
}
