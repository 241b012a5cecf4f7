package secrets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vaultServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Vault-Token") != "root" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		assert.Equal(t, "/v1/secret/data/healthfair", r.URL.Path)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_KVv2(t *testing.T) {
	srv := vaultServer(t, `{"data":{"data":{"DB_PASSWORD":"s3cret","REDIS_DB":2,"REDIS_ENABLED":true,"EMPTY":null}}}`)

	values, err := Fetch(context.Background(), VaultConfig{
		Addr: srv.URL, Token: "root", Mount: "secret", Path: "healthfair", KVVersion: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, "s3cret", values["DB_PASSWORD"])
	assert.Equal(t, "2", values["REDIS_DB"])
	assert.Equal(t, "true", values["REDIS_ENABLED"])
	assert.Equal(t, "", values["EMPTY"])
}

func TestFetch_Forbidden(t *testing.T) {
	srv := vaultServer(t, `{}`)

	_, err := Fetch(context.Background(), VaultConfig{
		Addr: srv.URL, Token: "wrong", Mount: "secret", Path: "healthfair", KVVersion: 2,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestApplyToEnv_KeepsExistingValues(t *testing.T) {
	srv := vaultServer(t, `{"data":{"data":{"HF_TEST_DB_PASSWORD":"from-vault","HF_TEST_DB_USER":"vault-user"}}}`)
	t.Setenv("HF_TEST_DB_USER", "local-user")
	t.Setenv("HF_TEST_DB_PASSWORD", "")

	result, err := ApplyToEnv(context.Background(), VaultConfig{
		Enabled: true, Addr: srv.URL, Token: "root", Mount: "secret", Path: "healthfair", KVVersion: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, VaultResult{Loaded: 1, Skipped: 1}, result)
	assert.Equal(t, "local-user", os.Getenv("HF_TEST_DB_USER"))
	assert.Equal(t, "from-vault", os.Getenv("HF_TEST_DB_PASSWORD"))
}

func TestApplyToEnv_Disabled(t *testing.T) {
	result, err := ApplyToEnv(context.Background(), VaultConfig{})
	require.NoError(t, err)
	assert.Zero(t, result)
}

func TestSecretURL(t *testing.T) {
	url, err := secretURL(VaultConfig{Addr: "http://vault:8200/", Mount: "/kv/", Path: "/app", KVVersion: 1})
	require.NoError(t, err)
	assert.Equal(t, "http://vault:8200/v1/kv/app", url)

	_, err = secretURL(VaultConfig{Addr: "http://vault:8200"})
	assert.Error(t, err)
}
