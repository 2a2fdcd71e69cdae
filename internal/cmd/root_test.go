package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ofsconsole/internal/config"
)

func intPtr(n int) *int    { return &n }
func boolPtr(b bool) *bool { return &b }

func TestCLI_ApplySettingsPrecedence(t *testing.T) {
	tests := []struct {
		name        string
		cli         CLI
		settings    *config.Settings
		env         map[string]string
		wantAddress string
		wantTimeout int
		wantUser    string
	}{
		{
			name:        "defaults without settings",
			wantAddress: config.DefaultAddress,
		},
		{
			name: "settings fill unset flags",
			settings: &config.Settings{
				Address:            "10.0.0.1:7000",
				ReadTimeoutSeconds: intPtr(5),
				User:               "admin",
			},
			wantAddress: "10.0.0.1:7000",
			wantTimeout: 5,
			wantUser:    "admin",
		},
		{
			name: "flags win over settings",
			cli:  CLI{Address: "flag:1", ReadTimeout: 9, User: "bob"},
			settings: &config.Settings{
				Address:            "10.0.0.1:7000",
				ReadTimeoutSeconds: intPtr(5),
				User:               "admin",
			},
			wantAddress: "flag:1",
			wantTimeout: 9,
			wantUser:    "bob",
		},
		{
			name:        "explicit zero timeout from env wins over settings",
			settings:    &config.Settings{ReadTimeoutSeconds: intPtr(5)},
			env:         map[string]string{"OFS_READ_TIMEOUT": "0"},
			wantAddress: config.DefaultAddress,
			wantTimeout: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cli := tt.cli
			cli.MaxLogFiles = 1000
			cli.SetSettings(tt.settings)

			cli.applySettings()

			assert.Equal(t, tt.wantAddress, cli.Address)
			assert.Equal(t, tt.wantTimeout, cli.ReadTimeout)
			assert.Equal(t, tt.wantUser, cli.User)
		})
	}
}

func TestCLI_ApplySettingsDebugAndLogFiles(t *testing.T) {
	cli := CLI{MaxLogFiles: 1000}
	cli.SetSettings(&config.Settings{Debug: boolPtr(true), MaxLogFiles: intPtr(20)})

	cli.applySettings()

	assert.True(t, cli.Debug)
	assert.Equal(t, 20, cli.MaxLogFiles)
}

func TestCLI_ExplorerReadTimeout(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		cli := CLI{}
		assert.Equal(t, time.Duration(config.DefaultExplorerReadTimeoutSeconds)*time.Second, cli.explorerReadTimeout())
	})

	t.Run("setting", func(t *testing.T) {
		cli := CLI{}
		cli.SetSettings(&config.Settings{ExplorerReadTimeoutSeconds: intPtr(3)})
		assert.Equal(t, 3*time.Second, cli.explorerReadTimeout())
	})

	t.Run("flag wins", func(t *testing.T) {
		cli := CLI{ReadTimeout: 7}
		cli.SetSettings(&config.Settings{ExplorerReadTimeoutSeconds: intPtr(3)})
		assert.Equal(t, 7*time.Second, cli.explorerReadTimeout())
	})
}

func TestCLI_HasCredentials(t *testing.T) {
	assert.False(t, (&CLI{User: "admin"}).hasCredentials())
	assert.False(t, (&CLI{Password: "pw"}).hasCredentials())
	assert.True(t, (&CLI{User: "admin", Password: "pw"}).hasCredentials())
}

func TestServeSSHCmd_ListenAddress(t *testing.T) {
	tests := []struct {
		name     string
		cmd      ServeSSHCmd
		settings *config.Settings
		wantHost string
		wantPort int
	}{
		{"defaults", ServeSSHCmd{}, nil, config.DefaultSSHHost, config.DefaultSSHPort},
		{"settings", ServeSSHCmd{}, &config.Settings{SSHHost: "0.0.0.0", SSHPort: intPtr(2222)}, "0.0.0.0", 2222},
		{"flags", ServeSSHCmd{Host: "::1", Port: 4000}, &config.Settings{SSHHost: "0.0.0.0", SSHPort: intPtr(2222)}, "::1", 4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port := tt.cmd.listenAddress(tt.settings)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantPort, port)
		})
	}
}
