// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/pkg/errutil"
)

func TestNewMigrator_UnknownScheme(t *testing.T) {
	migrator, err := NewMigrator("bogus://localhost/cinegraph")
	require.Error(t, err)
	assert.Nil(t, migrator)
	errutil.AssertErrorCode(t, err, "MIGRATION_INIT_FAILED")
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	// Every up migration needs a matching down migration.
	ups, downs := 0, 0
	for _, entry := range entries {
		switch {
		case strings.HasSuffix(entry.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(entry.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs, "unbalanced up/down migrations")
	assert.Positive(t, ups)
}
