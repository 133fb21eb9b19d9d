//go:build integration

// Package integration spins up real backends in containers and drives the
// perception service against them.  Run with:
//
//	go test -tags integration ./test/integration/...
package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

const (
	postgresImage = "postgres:16-alpine"
	redisImage    = "redis:7-alpine"

	testDBName   = "atomsense"
	testDBUser   = "atomsense"
	testDBSecret = "atomsense-test"
)

// startPostgres runs a disposable PostgreSQL container and returns a config
// pointing at it.  The container is removed when the test finishes.
func startPostgres(t *testing.T) *config.PostgresConfig {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       testDBName,
				"POSTGRES_USER":     testDBUser,
				"POSTGRES_PASSWORD": testDBSecret,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	return &config.PostgresConfig{
		Enabled:  true,
		Host:     host,
		Port:     port.Int(),
		User:     testDBUser,
		Password: testDBSecret,
		DBName:   testDBName,
		SSLMode:  "disable",
		MaxConns: 4,
	}
}

// startRedis runs a disposable Redis container.
func startRedis(t *testing.T) *config.RedisConfig {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	return &config.RedisConfig{
		Enabled:     true,
		Addr:        fmt.Sprintf("%s:%d", host, port.Int()),
		DialTimeout: 5 * time.Second,
		DefaultTTL:  time.Hour,
	}
}

// methanol builds CH3OH with implicit hydrogens stated on both heavy atoms.
func methanol(t *testing.T) *molecule.Molecule {
	t.Helper()
	mol := molecule.New()
	mol.Title = "methanol"

	c, err := molecule.NewAtom("C")
	if err != nil {
		t.Fatalf("new atom: %v", err)
	}
	c.SetImplicitHydrogens(3)
	o, err := molecule.NewAtom("O")
	if err != nil {
		t.Fatalf("new atom: %v", err)
	}
	o.SetImplicitHydrogens(1)

	mol.AddAtom(c)
	mol.AddAtom(o)
	if _, err := mol.AddBond(c, o, chem.OrderSingle); err != nil {
		t.Fatalf("add bond: %v", err)
	}
	return mol
}
