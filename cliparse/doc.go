// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

With cobra, bind the flags on the command and resolve them in RunE:

	cliparse.Bind(cmd.Flags(), &cfg)
	err := cliparse.Resolve(cmd.Flags(), &cfg)

# CLI Flags

	-p, --port           Server port (default 5000)
	-d, --database       Database URL or sqlite file (default pavilion.db)
	-t, --database-type  sqlite or postgres (inferred from the URL)
	--log-level          debug, info, warn or error
	--seed               YAML seed file
	--secure-cookies     Secure cookie flag for HTTPS deployments
	--session-ttl        Session lifetime (default 12h)
	--session-salt       Salt for hashed client IPs in logs
	--csrf-key           Hex encoded 32 byte CSRF key

# Environment Variables

Flags that are not given fall back to environment variables:

	PORT, DATABASE_URL, DATABASE_TYPE, LOG_LEVEL, SEED_PATH,
	SECURE_COOKIES, SESSION_TTL, SESSION_SALT, CSRF_KEY

A postgres:// or postgresql:// DATABASE_URL selects PostgreSQL; anything
else is treated as a SQLite file.
*/
package cliparse
