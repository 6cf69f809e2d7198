// Package testutil sobe um banco sqlite em memória com o schema da aplicação
// e oferece fixtures para os testes de casos de uso e handlers.
package testutil

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// NewDB abre um banco novo por teste. Uma única conexão mantém o :memory:
// vivo e serializa as transações, como o FOR UPDATE faria no postgres.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func CreateUser(t *testing.T, gdb *gorm.DB, role, email string) *models.User {
	t.Helper()

	u := models.NewUser(email, email, "hash", "", role)
	require.NoError(t, gdb.Create(&u).Error)
	return &u
}

// CreateBarber cria usuário e barbeiro com a agenda padrão; mutate ajusta a
// agenda antes de gravar.
func CreateBarber(t *testing.T, gdb *gorm.DB, name string, mutate func(*models.Barber)) *models.Barber {
	t.Helper()

	u := CreateUser(t, gdb, models.RoleBarber, fmt.Sprintf("%s@barber.test", name))
	u.Name = name
	require.NoError(t, gdb.Save(u).Error)

	b := models.NewBarber(u.ID, "corte")
	if mutate != nil {
		mutate(&b)
	}
	require.NoError(t, gdb.Create(&b).Error)

	b.User = *u
	return &b
}

func CreateService(t *testing.T, gdb *gorm.DB, name string) *models.Service {
	t.Helper()

	s := models.Service{Name: name, DurationMin: 30, Price: 40, Active: true}
	require.NoError(t, gdb.Create(&s).Error)
	return &s
}

func CreateSlot(t *testing.T, gdb *gorm.DB, barberID uint, at time.Time) *models.Slot {
	t.Helper()

	s := models.Slot{BarberID: barberID, DateTime: at, Status: "available"}
	require.NoError(t, gdb.Create(&s).Error)
	return &s
}

func Reload[T any](t *testing.T, gdb *gorm.DB, id uint) *T {
	t.Helper()

	var out T
	require.NoError(t, gdb.First(&out, id).Error)
	return &out
}
