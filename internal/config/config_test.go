package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeEnv() map[string]string {
	return map[string]string{
		KeyBaseURL:    "https://api.example.edu/api/",
		KeySurveyURL:  "https://auth.example.edu/api",
		KeyAuthenKey:  "authen-key",
		KeyMainKey:    "main-secret",
		KeyAltKey:     "alt-secret",
		KeyLongKey:    "long-secret",
		KeySharedCode: "code-secret",
	}
}

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Complete(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(completeEnv()))
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.edu/api", cfg.BaseURL)
	assert.Equal(t, "https://auth.example.edu/api", cfg.SurveyURL)
	assert.Equal(t, "authen-key", cfg.AuthenKey)
	assert.Equal(t, "main-secret", cfg.Secrets.MainKey)
	assert.Equal(t, "code-secret", cfg.Secrets.SharedCode)
	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
}

func TestFromLookup_Missing(t *testing.T) {
	tests := []struct {
		name    string
		drop    []string
		wantErr []string
	}{
		{
			name:    "auth key",
			drop:    []string{KeyAuthenKey},
			wantErr: []string{KeyAuthenKey},
		},
		{
			name:    "base urls",
			drop:    []string{KeyBaseURL, KeySurveyURL},
			wantErr: []string{KeyBaseURL, KeySurveyURL},
		},
		{
			name:    "every secret",
			drop:    []string{KeyMainKey, KeyAltKey, KeyLongKey, KeySharedCode},
			wantErr: []string{KeyMainKey, KeyAltKey, KeyLongKey, KeySharedCode},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := completeEnv()
			for _, k := range tt.drop {
				delete(env, k)
			}
			cfg, err := FromLookup(lookupFrom(env))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, ErrMissingConfig)
			for _, k := range tt.wantErr {
				assert.Contains(t, err.Error(), k)
			}
		})
	}
}

func TestFromLookup_EmptyValueCountsAsMissing(t *testing.T) {
	env := completeEnv()
	env[KeyLongKey] = ""
	env[KeyBaseURL] = "   "
	_, err := FromLookup(lookupFrom(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyLongKey)
	assert.Contains(t, err.Error(), KeyBaseURL)
}

func TestFromLookup_SecretsKeptVerbatim(t *testing.T) {
	env := completeEnv()
	env[KeyMainKey] = " key-with-space "
	env[KeyLongKey] = "   "
	env[KeyAuthenKey] = "token\t"
	env[KeyTimezone] = " UTC "

	cfg, err := FromLookup(lookupFrom(env))
	require.NoError(t, err)
	assert.Equal(t, " key-with-space ", cfg.Secrets.MainKey)
	assert.Equal(t, "   ", cfg.Secrets.LongKey)
	assert.Equal(t, "token\t", cfg.AuthenKey)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoad_QuotedSecretKeepsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := ""
	for k, v := range completeEnv() {
		if k == KeyMainKey {
			v = `" key-with-space "`
		}
		content += k + "=" + v + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	for k := range completeEnv() {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, " key-with-space ", cfg.Secrets.MainKey)
}

func TestFromLookup_BadURL(t *testing.T) {
	env := completeEnv()
	env[KeyBaseURL] = "ftp://api.example.edu"
	_, err := FromLookup(lookupFrom(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an http(s) URL")
}

func TestFromLookup_Optional(t *testing.T) {
	env := completeEnv()
	env[KeyTimezone] = "Asia/Ho_Chi_Minh"
	env[KeyHTTPTimeout] = "5s"
	cfg, err := FromLookup(lookupFrom(env))
	require.NoError(t, err)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Timezone)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)

	env[KeyHTTPTimeout] = "soon"
	_, err = FromLookup(lookupFrom(env))
	assert.Error(t, err)
}

func TestConfig_StringHidesSecrets(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(completeEnv()))
	require.NoError(t, err)
	s := cfg.String()
	assert.NotContains(t, s, "authen-key")
	assert.NotContains(t, s, "main-secret")
	assert.NotContains(t, s, "code-secret")
	assert.Contains(t, s, "api.example.edu")
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := ""
	for k, v := range completeEnv() {
		content += k + "=" + v + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	for k := range completeEnv() {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "authen-key", cfg.AuthenKey)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := ""
	for k, v := range completeEnv() {
		content += k + "=" + v + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	for k := range completeEnv() {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv(KeyAuthenKey, "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AuthenKey)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load env file")
}
