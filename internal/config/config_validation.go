// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.App.PasswordHashAlgorithm {
	case "", "sha256", "argon2id":
	default:
		return fmt.Errorf("%w: unknown password hash algorithm %q", ErrInvalidAppConfigs, cfg.App.PasswordHashAlgorithm)
	}

	switch cfg.Storage.DB.Driver {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty HTTP address", ErrInvalidServerConfigs)
	}

	if err := cfg.Media.validate(); err != nil {
		return err
	}

	if cfg.Workers.HealthCheckInterval < 0 {
		return fmt.Errorf("%w: negative health check interval", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (m *Media) validate() error {
	if m.Namespace == "" {
		return fmt.Errorf("%w: empty namespace", ErrInvalidMediaConfigs)
	}

	switch m.Driver {
	case MediaDriverCloudinary:
		if m.Cloudinary.CloudName == "" || m.Cloudinary.APIKey == "" || m.Cloudinary.APISecret == "" {
			return fmt.Errorf("%w: cloudinary credentials are required", ErrInvalidMediaConfigs)
		}
	case MediaDriverS3:
		if m.S3.Bucket == "" {
			return fmt.Errorf("%w: s3 bucket is required", ErrInvalidMediaConfigs)
		}
	case MediaDriverLocal:
		if m.Local.Dir == "" {
			return fmt.Errorf("%w: local media directory is required", ErrInvalidMediaConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown media driver %q", ErrInvalidMediaConfigs, m.Driver)
	}

	return nil
}
