package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/pkg/config"
)

func TestLoadFs_Defaults(t *testing.T) {
	cfg, err := config.LoadFs(afero.NewMemMapFs())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "wwwroot", cfg.Storage.ImageDir)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "postgres://postgres:@localhost:5432/catalogo?sslmode=disable", cfg.DB.ConnectionString())
}

func TestLoadFs_ArchivoYEnv(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(wd, ".env"),
		[]byte("DB_DRIVER=memory\nHTTP_PORT=9090\nIMAGE_DIR=/tmp/imagens\n"), 0o644))

	t.Setenv("HTTP_PORT", "7070")

	cfg, err := config.LoadFs(fs)
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 7070, cfg.HTTP.Port, "las variables de entorno tienen prioridad")
	assert.Equal(t, "/tmp/imagens", cfg.Storage.ImageDir)
}

func TestLoadFs_DatabaseURLTienePrioridad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://u:p@db:5432/x?sslmode=require")
	cfg, err := config.LoadFs(afero.NewMemMapFs())
	require.NoError(t, err)
	assert.Equal(t, "postgresql://u:p@db:5432/x?sslmode=require", cfg.DB.ConnectionString())
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "h", Port: 5432, User: "u", Password: "p@ss:w/rd", DBName: "db", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%3Aw%2Frd@h:5432/db?sslmode=disable", c.DSN())
}

func TestLoadFs_Invalido(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"driver desconocido", map[string]string{"DB_DRIVER": "mysql"}},
		{"auth sin secret", map[string]string{"AUTH_ENABLED": "true"}},
		{"puerto inválido", map[string]string{"HTTP_PORT": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.LoadFs(afero.NewMemMapFs())
			assert.Error(t, err)
		})
	}
}
