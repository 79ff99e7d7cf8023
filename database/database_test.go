package database

import (
	"testing"

	"github.com/Traorelacina/Glory-event/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMigrateAndEnsureAdmin(t *testing.T) {
	db, err := Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"admins", "produits", "commandes", "commande_produits", "contacts", "services", "portfolios"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	require.NoError(t, EnsureAdmin(db, "Admin", "admin@glory.test", "s3cret"))
	// second call must not duplicate or reset the account
	require.NoError(t, EnsureAdmin(db, "Other", "admin@glory.test", "changed"))

	var admins []models.Admin
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "Admin", admins[0].Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].PasswordHash), []byte("s3cret")))
}

func TestEnsureAdminSkipsWithoutCredentials(t *testing.T) {
	db, err := Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.NoError(t, EnsureAdmin(db, "Admin", "", ""))

	var count int64
	db.Model(&models.Admin{}).Count(&count)
	assert.Zero(t, count)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "")
	assert.Error(t, err)
}
