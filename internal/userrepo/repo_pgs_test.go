package userrepo

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/go-woori/bank-ledger/internal/domain"
	"github.com/go-woori/bank-ledger/pkg/configpkg"
	"github.com/go-woori/bank-ledger/pkg/dbpkg"
	"github.com/go-woori/bank-ledger/pkg/randompkg"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
)

var testRepo *RepoPGS

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomUser(t *testing.T) domain.User {
	name := randompkg.Owner()

	user, err := testRepo.Create(context.Background(), name)
	require.NoError(t, err)
	require.NotEmpty(t, user)

	require.Equal(t, name, user.Name)
	require.NotZero(t, user.ID)
	require.NotZero(t, user.CreatedAt)

	return user
}

func TestCreate(t *testing.T) {
	createRandomUser(t)
}

func TestGet(t *testing.T) {
	user := createRandomUser(t)

	got, err := testRepo.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user, got)
}

func TestGetNotFound(t *testing.T) {
	_, err := testRepo.Get(context.Background(), -1)
	require.EqualError(t, err, domain.ErrUserNotFound.Error())
}
